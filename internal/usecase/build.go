package usecase

import (
	"context"
	"fmt"

	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/table"
)

// Build joins the skills, titles and locations tables into one enriched table.
func (m *Miner) Build(ctx context.Context) error {
	base, err := m.read(m.opts.Artifacts.Skills)
	if err != nil {
		return err
	}
	titles, err := m.read(m.opts.Artifacts.Titles)
	if err != nil {
		return err
	}
	locations, err := m.read(m.opts.Artifacts.Locations)
	if err != nil {
		return err
	}

	enriched, err := dataset.Join(base, titles, locations)
	if err != nil {
		return fmt.Errorf("build enriched: %w", err)
	}
	dataset.RenameRoleColumns(enriched)
	return m.write(m.opts.Artifacts.Enriched, enriched)
}

// rolesWithSkills reads the skills table and attaches the role columns from
// the titles table when they are not already present.
func (m *Miner) rolesWithSkills() (*table.Table, error) {
	ads, err := m.read(m.opts.Artifacts.Skills)
	if err != nil {
		return nil, err
	}
	if ads.Pick(dataset.RoleColumns...) != "" {
		return ads, nil
	}
	titles, err := m.read(m.opts.Artifacts.Titles)
	if err != nil {
		return nil, err
	}
	joined, err := dataset.Join(ads, titles)
	if err != nil {
		return nil, fmt.Errorf("attach roles: %w", err)
	}
	return joined, nil
}
