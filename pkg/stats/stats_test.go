package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/distrograph/distrograph/pkg/distros"
)

func testDataset() distros.Dataset {
	return distros.Dataset{
		{
			Name:   "slackware",
			Status: distros.StatusActive,
			Dates:  []string{"1993-07-17"},
		},
		{
			Name:        "ubuntu",
			Status:      distros.StatusActive,
			BasedOn:     "debian",
			Color:       "orange",
			Dates:       []string{"2004-10-20"},
			NameChanges: []distros.NameChange{{Name: "no-name-yet", Date: "2004-01-01"}},
		},
		{
			Name:    "corel",
			Status:  distros.StatusInactive,
			BasedOn: "debian, something",
			Color:   "blue",
			Dates:   []string{"1999-11-01", "2001-08-01"},
		},
		{
			Name:   "mystery",
			Status: distros.StatusInactive,
			Dates:  []string{"unknown"},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testDataset())

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Active)
	assert.Equal(t, 2, s.Inactive)
	assert.Equal(t, 2, s.WithColor)
	assert.Equal(t, 1, s.WithNameChanges)

	// The unparseable date is excluded, and only first dates count.
	assert.Equal(t, map[string]int{
		"1990s": 2,
		"2000s": 1,
	}, s.ByDecade)
	assert.Equal(t, []string{"1990s", "2000s"}, s.Decades())
}

func TestSummarizeEmptyDataset(t *testing.T) {
	s := Summarize(distros.Dataset{})
	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByDecade)
	assert.Empty(t, s.Decades())
}

func TestBaseCounts(t *testing.T) {
	counts := BaseCounts(testDataset())

	assert.Equal(t, map[string]int{
		"Independent": 2,
		"debian":      2,
	}, counts)
}

func TestTopBases(t *testing.T) {
	counts := map[string]int{
		"debian":      10,
		"Independent": 10,
		"arch":        3,
		"fedora":      5,
	}

	ranked := TopBases(counts, 3)
	assert.Equal(t, []BaseCount{
		{Base: "Independent", Count: 10},
		{Base: "debian", Count: 10},
		{Base: "fedora", Count: 5},
	}, ranked)

	// Non-positive n returns everything.
	assert.Len(t, TopBases(counts, 0), 4)
}
