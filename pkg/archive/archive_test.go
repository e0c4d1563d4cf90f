package archive

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distrograph/distrograph/pkg/distros"
)

func readIndex(t *testing.T, data string) *Index {
	t.Helper()
	idx := NewIndex()
	require.NoError(t, idx.ReadFrom(strings.NewReader(data), "test"))
	return idx
}

func TestReadFromParsesNodeRows(t *testing.T) {
	data := strings.Join([]string{
		`// timeline data`,
		`N,Debian,#d70a53,,1993.8.16,,debian.png,https://www.debian.org`,
		`N,Ubuntu,orange,Debian,2004.10.20,,ubuntu.png,Popular desktop distribution`,
		`N,Corel,blue,Debian,1999.11,2001.8,corel.png,Linux for the desktop`,
	}, "\n")

	idx := readIndex(t, data)
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"debian", "ubuntu", "corel"}, idx.Keys())

	debian, ok := idx.Get("debian")
	require.True(t, ok)
	assert.Equal(t, "Debian", debian.DisplayName)
	assert.Equal(t, "#d70a53", debian.Color)
	assert.Equal(t, distros.Independent, debian.Parent)
	assert.Equal(t, "1993-08-16", debian.StartDate)
	assert.Empty(t, debian.EndDate)
	assert.Equal(t, []string{"1993-08-16"}, debian.Dates)
	assert.Equal(t, "https://www.debian.org", debian.Link)
	assert.Empty(t, debian.Description)
	assert.Equal(t, distros.StatusActive, debian.Status())

	ubuntu, ok := idx.Get("ubuntu")
	require.True(t, ok)
	assert.Equal(t, "debian", ubuntu.Parent)
	assert.Equal(t, "Popular desktop distribution", ubuntu.Description)
	assert.Empty(t, ubuntu.Link)

	corel, ok := idx.Get("corel")
	require.True(t, ok)
	assert.Equal(t, "1999-11-01", corel.StartDate)
	assert.Equal(t, "2001-08-01", corel.EndDate)
	assert.Equal(t, []string{"1999-11-01", "2001-08-01"}, corel.Dates)
	assert.Equal(t, distros.StatusInactive, corel.Status())
}

func TestReadFromSkipsNonNodeRows(t *testing.T) {
	data := strings.Join([]string{
		`// a comment`,
		`# another comment,with fields`,
		`,empty first field`,
		`C,Debian,Ubuntu,2004.10.20`,
		`short`,
		`N,Too,Few`,
		`N,Debian,red,,1993,,icon.png`,
	}, "\n")

	idx := readIndex(t, data)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, []string{"debian"}, idx.Keys())
}

func TestReadFromDuplicateKeysLastWins(t *testing.T) {
	data := strings.Join([]string{
		`N,Debian,red,,1993,,icon.png`,
		`N,Ubuntu,orange,Debian,2004,,icon.png`,
		`N,Debian,blue,,1994,,icon2.png`,
	}, "\n")

	idx := readIndex(t, data)
	assert.Equal(t, 2, idx.Len())
	// The duplicate keeps its original position but carries the later data.
	assert.Equal(t, []string{"debian", "ubuntu"}, idx.Keys())

	debian, ok := idx.Get("debian")
	require.True(t, ok)
	assert.Equal(t, "blue", debian.Color)
	assert.Equal(t, "1994-01-01", debian.StartDate)
}

func TestReadFromEqualStartAndEndDateCollapses(t *testing.T) {
	idx := readIndex(t, `N,Flash,red,,2000,2000,icon.png`)

	flash, ok := idx.Get("flash")
	require.True(t, ok)
	assert.Equal(t, []string{"2000-01-01"}, flash.Dates)
	assert.Equal(t, distros.StatusInactive, flash.Status())
}

func TestParseRenames(t *testing.T) {
	t.Run("full triples", func(t *testing.T) {
		idx := readIndex(t, `N,Xandros,blue,Debian,1999.11,,icon.png,desc,Corel,2001.10,https://example.com,Xandros,2002.5,https://example.org`)

		rec, ok := idx.Get("xandros")
		require.True(t, ok)
		assert.Equal(t, []distros.NameChange{
			{Name: "Corel", Date: "2001-10-01", URL: "https://example.com"},
			{Name: "Xandros", Date: "2002-05-01", URL: "https://example.org"},
		}, rec.NameChanges)
	})

	t.Run("missing name stops the scan", func(t *testing.T) {
		idx := readIndex(t, `N,Foo,blue,,1999,,icon.png,desc,First,2001.10,https://example.com,,2002.5,https://example.org`)

		rec, ok := idx.Get("foo")
		require.True(t, ok)
		assert.Equal(t, []distros.NameChange{
			{Name: "First", Date: "2001-10-01", URL: "https://example.com"},
		}, rec.NameChanges)
	})

	t.Run("unparseable date skips the triple but continues", func(t *testing.T) {
		idx := readIndex(t, `N,Foo,blue,,1999,,icon.png,desc,Broken,notadate,url,Good,2002.5,https://example.org`)

		rec, ok := idx.Get("foo")
		require.True(t, ok)
		assert.Equal(t, []distros.NameChange{
			{Name: "Good", Date: "2002-05-01", URL: "https://example.org"},
		}, rec.NameChanges)
	})

	t.Run("final triple may omit the url", func(t *testing.T) {
		idx := readIndex(t, `N,Foo,blue,,1999,,icon.png,desc,Renamed,2001.10`)

		rec, ok := idx.Get("foo")
		require.True(t, ok)
		assert.Equal(t, []distros.NameChange{
			{Name: "Renamed", Date: "2001-10-01"},
		}, rec.NameChanges)
	})
}

func TestRecordDistro(t *testing.T) {
	idx := readIndex(t, `N,Corel,blue,Debian,1999.11,2001.8,corel.png,Linux for the desktop,Xandros,2001.10,https://example.com`)

	rec, ok := idx.Get("corel")
	require.True(t, ok)

	d := rec.Distro()
	assert.Equal(t, "corel", d.Name)
	assert.Equal(t, "Corel", d.HumanName)
	assert.Equal(t, "blue", d.Color)
	assert.Equal(t, "debian", d.BasedOn)
	assert.Equal(t, []string{"1999-11-01", "2001-08-01"}, d.Dates)
	assert.Equal(t, "2001-08-01", d.EndDate)
	assert.Equal(t, distros.StatusInactive, d.Status)
	assert.Equal(t, "corel.png", d.Image)
	assert.Equal(t, "Linux for the desktop", d.Description)
	assert.Equal(t, distros.SourceArchive, d.Source)
	assert.Len(t, d.NameChanges, 1)

	// The conversion copies slices; mutating the copy must not touch the record.
	d.Dates[0] = "mutated"
	assert.Equal(t, "1999-11-01", rec.Dates[0])
}

func TestLoadMissingFileReturnsEmptyIndex(t *testing.T) {
	idx, err := Load(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
}
