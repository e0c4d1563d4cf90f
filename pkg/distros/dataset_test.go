package distros

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distrograph/distrograph/pkg/errors"
)

const sampleJSON = `[
  {
    "Name": "ubuntu",
    "Human Name": "Ubuntu",
    "Based on": "debian",
    "Dates": ["2004-10-20"],
    "Status": "Active",
    "Link": "https://www.ubuntu.com",
    "Name Changes": [{"name": "no-name-yet", "date": "2004-01-01"}]
  }
]`

func TestDecodeDataset(t *testing.T) {
	ds, err := DecodeDataset(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, ds, 1)

	d := ds[0]
	assert.Equal(t, "ubuntu", d.Name)
	assert.Equal(t, "Ubuntu", d.HumanName)
	assert.Equal(t, "debian", d.BasedOn)
	assert.Equal(t, StatusActive, d.Status)
	assert.Equal(t, []string{"2004-10-20"}, d.Dates)
	require.Len(t, d.NameChanges, 1)
	assert.Equal(t, "no-name-yet", d.NameChanges[0].Name)
}

func TestDecodeDatasetMalformed(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader(`{"not": "an array"`))
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ds := Dataset{
		{
			Name:      "corel",
			HumanName: "Corel",
			BasedOn:   "debian",
			EndDate:   "2001-08-01",
			Status:    StatusInactive,
			Source:    SourceArchive,
			Link:      "https://example.com/a?b=1&c=2",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ds.EncodeDataset(&buf))

	// HTML escaping stays off so URLs survive verbatim.
	assert.Contains(t, buf.String(), "b=1&c=2")

	decoded, err := DecodeDataset(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds, decoded)
}

func TestSaveAndLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	ds := Dataset{{Name: "debian", Status: StatusActive}}

	require.NoError(t, ds.SaveDataset(path))

	loaded, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, ds, loaded)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
