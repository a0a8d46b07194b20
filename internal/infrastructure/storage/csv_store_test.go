package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

func TestCSVStoreWriteRead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewCSVStore(dir)

	src := table.New("skill", "n_ads", "note")
	if err := src.Append("Excel", "12", "شامل, کاما"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := src.Append("پایتون", "3", "line\nbreak"); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := store.Write("out/skills.csv", src); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "out", "skills.csv"))
	if err != nil {
		t.Fatalf("read raw: %v", err)
	}
	if !bytes.HasPrefix(raw, utf8BOM) {
		t.Fatalf("expected BOM prefix, got %q", raw[:3])
	}

	got, err := store.Read("out/skills.csv")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if got.Columns()[0] != "skill" {
		t.Fatalf("BOM leaked into header: %q", got.Columns()[0])
	}
	if got.Value(0, "note") != "شامل, کاما" || got.Value(1, "note") != "line\nbreak" {
		t.Fatalf("unexpected values: %q %q", got.Value(0, "note"), got.Value(1, "note"))
	}

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestCSVStoreReadMissing(t *testing.T) {
	t.Parallel()

	store := NewCSVStore(t.TempDir())
	_, err := store.Read("absent.csv")
	if !errors.Is(err, domain.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if _, ok := store.Stat("absent.csv"); ok {
		t.Fatalf("stat reported absent file as present")
	}
}

func TestDecodeRaggedRows(t *testing.T) {
	t.Parallel()

	tbl, err := Decode(bytes.NewReader([]byte("a,b,c\n1,2\n4,5,6,7\n")))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tbl.Value(0, "c") != "" || tbl.Value(1, "c") != "6" {
		t.Fatalf("unexpected ragged handling: %v %v", tbl.Row(0), tbl.Row(1))
	}
}
