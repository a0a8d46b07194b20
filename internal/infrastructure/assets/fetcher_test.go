package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchWritesFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "JobAdsMiner/1.0" {
			t.Errorf("unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "maps", "iran.png")
	if err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestFetchKeepsExistingFileOnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "iran.png")
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("write dest: %v", err)
	}
	if err := NewHTTPFetcher(srv.Client()).Fetch(context.Background(), srv.URL, dest); err == nil {
		t.Fatalf("expected error for 404")
	}
	got, _ := os.ReadFile(dest)
	if string(got) != "old" {
		t.Fatalf("existing file was modified: %q", got)
	}
}

func TestFetchHonorsContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewHTTPFetcher(nil).Fetch(ctx, srv.URL, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
