package reconcile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distrograph/distrograph/pkg/archive"
	"github.com/distrograph/distrograph/pkg/distros"
)

func testIndex(t *testing.T, rows ...string) *archive.Index {
	t.Helper()
	idx := archive.NewIndex()
	require.NoError(t, idx.ReadFrom(strings.NewReader(strings.Join(rows, "\n")), "test"))
	return idx
}

func TestCombineEnhancesMatchingRecords(t *testing.T) {
	idx := testIndex(t,
		`N,Ubuntu,orange,Debian,2004.10.20,,ubuntu.png,https://www.ubuntu.com/download,Old Name,2005.1,https://example.com`,
	)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{
			Name:        "ubuntu",
			HumanName:   "Ubuntu",
			BasedOn:     "something else",
			Dates:       []string{"2004-01-01"},
			Status:      distros.StatusActive,
			Link:        "ubuntu.com",
			Description: "scraped description",
		},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)
	require.Len(t, result.Combined, 1)

	merged := result.Combined[0]
	assert.Equal(t, "orange", merged.Color)
	assert.Equal(t, "debian", merged.BasedOn)
	assert.Equal(t, []string{"2004-10-20"}, merged.Dates)
	// The longer archive link replaces the scraped one.
	assert.Equal(t, "https://www.ubuntu.com/download", merged.Link)
	// The archive row carries a link, not a description, so the scraped
	// description survives.
	assert.Equal(t, "scraped description", merged.Description)
	assert.Equal(t, EnhancedMarker, merged.Enhanced)
	assert.Len(t, merged.NameChanges, 1)

	assert.Equal(t, 1, result.Enhanced)
	assert.Equal(t, 0, result.Passthrough)
	assert.Equal(t, 0, result.ArchiveOnly)
}

func TestCombineArchiveEndDateWins(t *testing.T) {
	idx := testIndex(t, `N,Corel,blue,Debian,1999.11,2001.8,corel.png,Linux for the desktop`)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "Corel", Status: distros.StatusActive, EndDate: "2005-01-01"},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)

	merged := result.Combined[0]
	assert.Equal(t, "2001-08-01", merged.EndDate)
	assert.Equal(t, "Linux for the desktop", merged.Description)
}

func TestCombineIndependentParentDoesNotOverride(t *testing.T) {
	idx := testIndex(t, `N,Debian,red,,1993.8.16,,debian.png,https://www.debian.org`)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "debian", BasedOn: "scraped parent"},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)
	assert.Equal(t, "scraped parent", result.Combined[0].BasedOn)
}

func TestCombineShorterArchiveLinkLoses(t *testing.T) {
	idx := testIndex(t, `N,Foo,red,,1993,,foo.png,http://a.io`)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "foo", Link: "https://a-much-longer-link.example.com"},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)
	assert.Equal(t, "https://a-much-longer-link.example.com", result.Combined[0].Link)
}

func TestCombineEmptyArchiveDatesKeepScraped(t *testing.T) {
	idx := testIndex(t, `N,Foo,red,,,,foo.png,desc`)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "foo", Dates: []string{"1999-01-01"}},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)
	assert.Equal(t, []string{"1999-01-01"}, result.Combined[0].Dates)
}

func TestCombinePassthroughWithoutCounterpart(t *testing.T) {
	idx := testIndex(t, `N,Debian,red,,1993,,debian.png,desc`)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "slackware", HumanName: "Slackware", Status: distros.StatusActive},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)
	require.Len(t, result.Combined, 2)

	slack := result.Combined[0]
	assert.Empty(t, slack.Enhanced)
	assert.Empty(t, slack.Source)
	assert.Equal(t, "Slackware", slack.HumanName)

	// Debian follows as an archive-only record.
	debian := result.Combined[1]
	assert.Equal(t, "debian", debian.Name)
	assert.Equal(t, distros.SourceArchive, debian.Source)
	assert.Empty(t, debian.Enhanced)

	assert.Equal(t, 1, result.Passthrough)
	assert.Equal(t, 1, result.ArchiveOnly)
	assert.Equal(t, 0, result.Enhanced)
}

func TestCombineEmptyScrapedDataset(t *testing.T) {
	idx := testIndex(t,
		`N,Debian,red,,1993,,debian.png,desc`,
		`N,Ubuntu,orange,Debian,2004,,ubuntu.png,desc`,
	)
	c := New(WithIndex(idx))

	result, err := c.Combine(distros.Dataset{})
	require.NoError(t, err)
	require.Len(t, result.Combined, 2)

	// Archive load order is preserved.
	assert.Equal(t, "debian", result.Combined[0].Name)
	assert.Equal(t, "ubuntu", result.Combined[1].Name)
	for _, d := range result.Combined {
		assert.Equal(t, distros.SourceArchive, d.Source)
		assert.Empty(t, d.Enhanced)
	}
	assert.Equal(t, 2, result.ArchiveOnly)
	assert.Equal(t, 0, result.Enhanced)
}

func TestCombineCountsAddUp(t *testing.T) {
	idx := testIndex(t,
		`N,Debian,red,,1993,,debian.png,desc`,
		`N,Ubuntu,orange,Debian,2004,,ubuntu.png,desc`,
		`N,Corel,blue,Debian,1999,2001,corel.png,desc`,
	)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "ubuntu"},
		{Name: "slackware"},
	}

	result, err := c.Combine(scraped)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Enhanced)
	assert.Equal(t, 1, result.Passthrough)
	assert.Equal(t, 2, result.ArchiveOnly)
	assert.Equal(t, result.Total(), result.Enhanced+result.Passthrough+result.ArchiveOnly)

	counts := result.Counts()
	assert.Equal(t, result.Total(), counts.Total)
	assert.Equal(t, result.Enhanced, counts.Enhanced)
}

func TestCombineDoesNotMutateInput(t *testing.T) {
	idx := testIndex(t, `N,Ubuntu,orange,Debian,2004.10.20,,ubuntu.png,desc`)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "ubuntu", BasedOn: "original", Dates: []string{"2004-01-01"}},
	}

	_, err := c.Combine(scraped)
	require.NoError(t, err)

	assert.Equal(t, "original", scraped[0].BasedOn)
	assert.Equal(t, []string{"2004-01-01"}, scraped[0].Dates)
	assert.Empty(t, scraped[0].Enhanced)
	assert.Empty(t, scraped[0].Color)
}

func TestCombineDeterministic(t *testing.T) {
	idx := testIndex(t,
		`N,Debian,red,,1993,,debian.png,desc`,
		`N,Ubuntu,orange,Debian,2004,,ubuntu.png,desc`,
		`N,Corel,blue,Debian,1999,2001,corel.png,desc`,
	)
	c := New(WithIndex(idx))

	scraped := distros.Dataset{
		{Name: "ubuntu"},
		{Name: "slackware"},
	}

	first, err := c.Combine(scraped)
	require.NoError(t, err)
	second, err := c.Combine(scraped)
	require.NoError(t, err)

	assert.Equal(t, first.Combined, second.Combined)
}

func TestCombinerLazyLoadMissingArchive(t *testing.T) {
	c := New(WithArchivePath(filepath.Join(t.TempDir(), "missing.csv")))

	scraped := distros.Dataset{{Name: "debian", Status: distros.StatusActive}}
	result, err := c.Combine(scraped)
	require.NoError(t, err)

	// A missing archive degrades to a passthrough merge.
	require.Len(t, result.Combined, 1)
	assert.Equal(t, 1, result.Passthrough)
	assert.Equal(t, 0, result.Enhanced)
	assert.Equal(t, 0, result.ArchiveOnly)
}
