// Package archive parses the historical distribution archive: a loosely
// typed, comma-delimited text table with variable-arity node rows carrying
// colors, precise founding and retirement dates, and rename-event triples.
//
// Parsing is deliberately forgiving below the row level: one malformed row
// is logged and skipped, never aborting the whole load. A missing archive
// file degrades to an empty index.
package archive

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/distrograph/distrograph/pkg/errors"
	"github.com/distrograph/distrograph/pkg/logging"
)

// Index is the full set of parsed archive records, keyed by canonical name.
// Load order is preserved; duplicate keys overwrite the earlier record while
// keeping its position (last-wins, by design of the source table). Once
// built, an Index is read-only and safe for concurrent reads.
type Index struct {
	records map[string]*Record
	order   []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{records: make(map[string]*Record)}
}

// Load reads and parses the archive table at path. A missing file is not an
// error: a warning is logged and an empty index returned, degrading any
// subsequent merge to a passthrough of the scraped dataset.
func Load(path string) (*Index, error) {
	idx := NewIndex()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warn().Str("path", path).Msg("Archive file not found, proceeding with empty index")
			return idx, nil
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	if err := idx.ReadFrom(f, path); err != nil {
		return nil, err
	}

	logging.Info().
		Str("path", path).
		Int("records", idx.Len()).
		Msg("Loaded archive index")
	return idx, nil
}

// ReadFrom parses archive rows from r into the index. The name argument is
// used only for error reporting.
func (idx *Index) ReadFrom(r io.Reader, name string) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows have variable arity
	reader.LazyQuotes = true

	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			// One unreadable row never aborts the load.
			logging.Warn().
				Err(err).
				Str("archive", name).
				Int("line", line).
				Msg("Skipping unreadable archive row")
			continue
		}
		idx.addRow(row, name, line)
	}
}

// addRow classifies and parses one physical row. Panics from a single row
// are recovered so a bad row cannot abort the load.
func (idx *Index) addRow(row []string, name string, line int) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn().
				Interface("panic", r).
				Str("archive", name).
				Int("line", line).
				Msg("Skipping archive row after parse failure")
		}
	}()

	if len(row) < 2 {
		return
	}
	first := row[0]
	if first == "" || strings.HasPrefix(first, "//") || strings.HasPrefix(first, "#") {
		return
	}
	// Only node rows belong to this engine; other tags describe graph
	// features handled elsewhere.
	if first != nodeTag || len(row) < minNodeFields {
		return
	}

	rec := parseNode(row)
	if rec.Key == "" {
		return
	}
	idx.put(rec)
}

// put inserts a record, overwriting any earlier record with the same key
// while keeping the original load-order position.
func (idx *Index) put(rec *Record) {
	if _, exists := idx.records[rec.Key]; !exists {
		idx.order = append(idx.order, rec.Key)
	}
	idx.records[rec.Key] = rec
}

// Get returns the record for a canonical key.
func (idx *Index) Get(key string) (*Record, bool) {
	rec, ok := idx.records[key]
	return rec, ok
}

// Len returns the number of records in the index.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Keys returns the record keys in load order.
func (idx *Index) Keys() []string {
	keys := make([]string, len(idx.order))
	copy(keys, idx.order)
	return keys
}

// Records returns the records in load order.
func (idx *Index) Records() []*Record {
	recs := make([]*Record, 0, len(idx.order))
	for _, key := range idx.order {
		recs = append(recs, idx.records[key])
	}
	return recs
}
