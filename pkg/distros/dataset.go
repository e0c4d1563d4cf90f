package distros

import (
	"encoding/json"
	"io"
	"os"

	"github.com/distrograph/distrograph/pkg/errors"
)

// Dataset is an ordered collection of distribution records. Order is
// significant: it is preserved through decoding, merging, and encoding.
type Dataset []Distro

// Keys returns the set of canonical keys present in the dataset.
func (ds Dataset) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(ds))
	for i := range ds {
		keys[ds[i].Key()] = struct{}{}
	}
	return keys
}

// Clone returns a deep copy of the dataset. Slices inside each record are
// copied so the clone can be modified without touching the original.
func (ds Dataset) Clone() Dataset {
	out := make(Dataset, len(ds))
	for i := range ds {
		out[i] = ds[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the record.
func (d Distro) Clone() Distro {
	out := d
	if d.Dates != nil {
		out.Dates = make([]string, len(d.Dates))
		copy(out.Dates, d.Dates)
	}
	if d.NameChanges != nil {
		out.NameChanges = make([]NameChange, len(d.NameChanges))
		copy(out.NameChanges, d.NameChanges)
	}
	return out
}

// DecodeDataset decodes a JSON dataset from r. A malformed dataset is fatal:
// no attempt is made to salvage a partial decode.
func DecodeDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return ds, nil
}

// LoadDataset reads and decodes a JSON dataset file.
func LoadDataset(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	var ds Dataset
	if err := json.NewDecoder(f).Decode(&ds); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return ds, nil
}

// EncodeDataset writes the dataset to w as indented JSON.
func (ds Dataset) EncodeDataset(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ds)
}

// SaveDataset writes the dataset to a JSON file.
func (ds Dataset) SaveDataset(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := ds.EncodeDataset(f); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
