package usecase

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

const fileCityMap = "city_map.png"

type barFigure struct {
	source string
	label  string
	count  string
	file   string
	title  string
	xLabel string
}

// Charts renders bar charts of the main count tables and the city map.
// Count tables that do not exist yet are skipped.
func (m *Miner) Charts(ctx context.Context) error {
	if m.visualizer == nil {
		return fmt.Errorf("charts: no visualizer configured")
	}
	if err := os.MkdirAll(m.opts.FiguresDir, 0o755); err != nil {
		return fmt.Errorf("create figures dir: %w", err)
	}

	figures := []barFigure{
		{fileRoleCountsFa, dataset.ColJobRoleFa, colAdCountFa, "job_roles_top.png", "Top job roles", "ads"},
		{fileFamilyCountsFa, dataset.ColJobFamilyFa, colAdCountFa, "job_families.png", "Job families", "ads"},
		{fileSkillsCounts, colSkill, colNAds, "skills_top.png", "Top skills", "ads"},
		{fileCityCounts, dataset.ColCity, colNAds, "cities_top.png", "Top cities", "ads"},
		{fileProvinceCounts, dataset.ColProvince, colNAds, "provinces_top.png", "Top provinces", "ads"},
		{fileTehranNeighborCounts, dataset.ColTehranNeighbor, colNAds, "tehran_neighborhoods_top.png", "Tehran neighborhoods", "ads"},
	}
	for _, f := range figures {
		t, err := m.optional(f.source)
		if err != nil {
			return err
		}
		if t == nil {
			m.warn("chart input missing", "file", f.source)
			continue
		}
		chart := domain.BarChart{Title: f.title, XLabel: f.xLabel, Bars: topBars(t, f.label, f.count, m.opts.Charts.BarLimit)}
		if len(chart.Bars) == 0 {
			continue
		}
		if err := m.writeFigure(f.file, func(w io.Writer) error { return m.visualizer.BarChart(w, chart) }); err != nil {
			return err
		}
	}

	cities, err := m.optional(fileCityCounts)
	if err != nil {
		return err
	}
	if cities == nil {
		return nil
	}
	b := m.catalog.Geo.Bounds
	cityMap := domain.CityMap{
		Title:      "Job ads by city",
		Bounds:     domain.MapBounds{MinLon: b.MinLon, MaxLon: b.MaxLon, MinLat: b.MinLat, MaxLat: b.MaxLat},
		Points:     m.cityPoints(cities),
		Background: m.mapBackground(ctx),
	}
	return m.writeFigure(fileCityMap, func(w io.Writer) error { return m.visualizer.CityMap(w, cityMap) })
}

// topBars takes the first limit rows of a count table, skipping the unknown label.
func topBars(t *table.Table, labelCol, countCol string, limit int) []domain.Bar {
	var bars []domain.Bar
	for i := 0; i < t.Len(); i++ {
		label := t.Value(i, labelCol)
		n, ok := t.Int(i, countCol)
		if label == "" || label == domain.Unknown || !ok || n <= 0 {
			continue
		}
		bars = append(bars, domain.Bar{Label: label, Value: float64(n)})
		if limit > 0 && len(bars) == limit {
			break
		}
	}
	return bars
}

func (m *Miner) cityPoints(counts *table.Table) []domain.MapPoint {
	type coord struct{ lat, lon float64 }
	coords := make(map[string]coord)
	for _, c := range m.catalog.Geo.Cities {
		if _, ok := coords[c.City]; ok || (c.Lat == 0 && c.Lon == 0) {
			continue
		}
		coords[c.City] = coord{lat: c.Lat, lon: c.Lon}
	}

	var points []domain.MapPoint
	for _, bar := range topBars(counts, dataset.ColCity, colNAds, 0) {
		c, ok := coords[bar.Label]
		if !ok {
			continue
		}
		points = append(points, domain.MapPoint{Label: bar.Label, Lat: c.lat, Lon: c.lon, Value: bar.Value})
	}
	return points
}

// mapBackground loads the cached map image, downloading it first unless
// offline. Any failure yields nil and a warning.
func (m *Miner) mapBackground(ctx context.Context) image.Image {
	cfg := m.opts.Charts
	if cfg.MapFile == "" {
		return nil
	}
	path := cfg.MapFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.opts.FiguresDir, path)
	}

	if _, err := os.Stat(path); err != nil {
		if cfg.Offline || m.fetcher == nil || cfg.MapURL == "" {
			m.info("map background unavailable", "path", path, "offline", cfg.Offline)
			return nil
		}
		if err := m.fetcher.Fetch(ctx, cfg.MapURL, path); err != nil {
			m.warn("map background download failed", "url", cfg.MapURL, "error", err)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		m.warn("map background open failed", "path", path, "error", err)
		return nil
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		m.warn("map background decode failed", "path", path, "error", err)
		return nil
	}
	return img
}

// writeFigure renders into a temp file next to the target and renames it into place.
func (m *Miner) writeFigure(name string, render func(w io.Writer) error) error {
	path := filepath.Join(m.opts.FiguresDir, name)
	tmp, err := os.CreateTemp(m.opts.FiguresDir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	m.info("figure written", "path", path)
	return nil
}
