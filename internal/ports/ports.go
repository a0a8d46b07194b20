package ports

import (
	"context"
	"io"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

// MessageSource yields grouped messages from an exported chat archive.
type MessageSource interface {
	Groups(ctx context.Context) ([]domain.MessageGroup, error)
	Coverage(ctx context.Context) ([]domain.SourceCoverage, error)
}

// TableStore persists stage artifacts.
type TableStore interface {
	Read(name string) (*table.Table, error)
	Write(name string, t *table.Table) error
	Stat(name string) (size int64, ok bool)
	Path(name string) string
}

// Visualizer renders aggregated tables as images.
type Visualizer interface {
	BarChart(w io.Writer, chart domain.BarChart) error
	CityMap(w io.Writer, m domain.CityMap) error
}

// AssetFetcher downloads optional static assets such as map backgrounds.
type AssetFetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}
