package usecase

import (
	"context"
	"fmt"

	"JobAdsMiner/internal/adparse"
	"JobAdsMiner/internal/dataset"
)

// Parse reads the export, extracts one record per message group and writes
// the de-duplicated ads table.
func (m *Miner) Parse(ctx context.Context) error {
	groups, err := m.source.Groups(ctx)
	if err != nil {
		return fmt.Errorf("load message groups: %w", err)
	}

	ads, err := parallelMap(ctx, m.opts.Workers, groups, adparse.Parse)
	if err != nil {
		return fmt.Errorf("parse ads: %w", err)
	}
	unique := adparse.Dedupe(ads)
	m.info("ads parsed", "groups", len(groups), "ads", len(unique), "duplicates", len(ads)-len(unique))

	return m.write(m.opts.Artifacts.Parsed, dataset.AdsTable(unique))
}
