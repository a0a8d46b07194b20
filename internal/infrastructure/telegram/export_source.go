// Package telegram reads Telegram Desktop HTML chat exports.
package telegram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/ports"
)

const sniffLen = 2000

// ExportSource implements MessageSource over a directory of exported pages.
type ExportSource struct {
	dir    string
	logger *slog.Logger
}

var _ ports.MessageSource = (*ExportSource)(nil)

// NewExportSource reads message pages from dir.
func NewExportSource(dir string, log *slog.Logger) *ExportSource {
	return &ExportSource{dir: dir, logger: log}
}

// Groups parses every export page in file-name order.
func (s *ExportSource) Groups(ctx context.Context) ([]domain.MessageGroup, error) {
	var all []domain.MessageGroup
	err := s.each(ctx, func(groups []domain.MessageGroup, _ domain.SourceCoverage) {
		all = append(all, groups...)
	})
	return all, err
}

// Coverage reports message and group counts per export page.
func (s *ExportSource) Coverage(ctx context.Context) ([]domain.SourceCoverage, error) {
	var all []domain.SourceCoverage
	err := s.each(ctx, func(_ []domain.MessageGroup, c domain.SourceCoverage) {
		all = append(all, c)
	})
	return all, err
}

func (s *ExportSource) each(ctx context.Context, fn func([]domain.MessageGroup, domain.SourceCoverage)) error {
	files, err := FindMessageFiles(s.dir)
	if err != nil {
		return err
	}
	s.debug("export files found", "dir", s.dir, "count", len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open export %s: %w", path, err)
		}
		groups, coverage, err := ParseExport(f, filepath.Base(path))
		f.Close()
		if err != nil {
			return err
		}
		s.debug("export file parsed", "file", coverage.SourceFile, "groups", coverage.Groups)
		fn(groups, coverage)
	}
	return nil
}

// FindMessageFiles lists messages*.html, messages*.htm and extension-less
// messages* files that look like an HTML export, sorted by name.
func FindMessageFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("input dir %s: %w", dir, domain.ErrMissingInput)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasPrefix(name, "messages") {
			continue
		}
		path := filepath.Join(dir, name)
		switch filepath.Ext(name) {
		case ".html", ".htm":
			files = append(files, path)
		case "":
			if looksLikeExport(path) {
				files = append(files, path)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no message files in %s: %w", dir, domain.ErrMissingInput)
	}
	sort.Slice(files, func(i, j int) bool { return filepath.Base(files[i]) < filepath.Base(files[j]) })
	return files, nil
}

func looksLikeExport(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, _ := io.ReadFull(f, head)
	head = bytes.ToLower(head[:n])
	return bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("telegram"))
}

func (s *ExportSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
