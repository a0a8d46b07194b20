package storage

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/ports"
	"JobAdsMiner/internal/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVStore persists tables as UTF-8 CSV files with a BOM under a base directory.
type CSVStore struct {
	dir string
}

var _ ports.TableStore = (*CSVStore)(nil)

// NewCSVStore resolves relative names against dir.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Path resolves a table name to its file path.
func (s *CSVStore) Path(name string) string {
	if filepath.IsAbs(name) || s.dir == "" {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Read loads a table; a missing file is reported as domain.ErrMissingInput.
func (s *CSVStore) Read(name string) (*table.Table, error) {
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, domain.ErrMissingInput)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return t, nil
}

// Write stores a table atomically: a temp file in the same directory is renamed into place.
func (s *CSVStore) Write(name string, t *table.Table) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*.csv")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := Encode(tmp, t); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp for %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// Stat reports size of a stored table; ok is false when it is absent.
func (s *CSVStore) Stat(name string) (size int64, ok bool) {
	info, err := os.Stat(s.Path(name))
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// Encode writes the BOM, header and rows.
func Encode(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(bw)
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads a CSV stream, tolerating an optional BOM and ragged rows.
func Decode(r io.Reader) (*table.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return table.FromRecords(records), nil
}
