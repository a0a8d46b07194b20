package usecase

import (
	"context"
	"fmt"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
)

// Column names of the Persian count tables.
const (
	colAdCountFa     = "تعداد_آگهی"
	colRoleAdCountFa = "تعداد_آگهی_نقش"
	colNAds          = "n_ads"
)

// Output file names.
const (
	fileRoleCountsFa     = "job_role_counts_fa.csv"
	fileFamilyCountsFa   = "job_family_counts_fa.csv"
	fileTitleUnknown     = "job_title_unknown_samples.csv"
	fileTitleCleanCounts = "job_title_clean_counts.csv"
)

type titleTag struct {
	clean string
	class domain.JobClassification
}

// Titles cleans job titles, classifies every ad and writes role/family counts.
func (m *Miner) Titles(ctx context.Context) error {
	ads, err := m.read(m.opts.Artifacts.Parsed)
	if err != nil {
		return err
	}

	tags, err := parallelMap(ctx, m.opts.Workers, rowIndexes(ads.Len()), func(i int) titleTag {
		clean, class := m.jobs.ClassifyAd(ads.Value(i, dataset.ColJobTitle), ads.Value(i, dataset.ColTextRaw))
		return titleTag{clean: clean, class: class}
	})
	if err != nil {
		return fmt.Errorf("classify titles: %w", err)
	}

	clean := make([]string, len(tags))
	codes := make([]string, len(tags))
	families := make([]string, len(tags))
	roles := make([]string, len(tags))
	var unknown []string
	sentinel := m.jobs.Sentinel()
	for i, t := range tags {
		clean[i] = t.clean
		codes[i] = t.class.Code
		families[i] = t.class.Family
		roles[i] = t.class.Role
		if t.class.Code == sentinel.Code && t.clean != "" {
			unknown = append(unknown, t.clean)
		}
	}

	for _, col := range []struct {
		name   string
		values []string
	}{
		{dataset.ColJobTitleClean, clean},
		{dataset.ColJobCode, codes},
		{dataset.ColJobFamilyFa, families},
		{dataset.ColJobRoleFa, roles},
	} {
		if err := ads.SetColumn(col.name, col.values); err != nil {
			return fmt.Errorf("set titles: %w", err)
		}
	}

	if err := m.write(m.opts.Artifacts.Titles, ads); err != nil {
		return err
	}
	if err := m.write(fileRoleCountsFa, countsTable(dataset.ColJobRoleFa, colAdCountFa, aggregate.CountValues(roles))); err != nil {
		return err
	}
	if err := m.write(fileFamilyCountsFa, countsTable(dataset.ColJobFamilyFa, colAdCountFa, aggregate.CountValues(families))); err != nil {
		return err
	}
	samples := countsTable(dataset.ColJobTitleClean, colNAds, aggregate.CountValues(unknown))
	return m.write(fileTitleUnknown, samples.Head(m.opts.Thresholds.UnknownSamples))
}

// TitleCounts writes the most frequent cleaned titles.
func (m *Miner) TitleCounts(ctx context.Context) error {
	ads, err := m.read(m.opts.Artifacts.Titles)
	if err != nil {
		return err
	}
	if err := ads.Require(dataset.ColJobTitleClean); err != nil {
		return fmt.Errorf("title counts: %w", err)
	}

	var titles []string
	for _, v := range ads.Column(dataset.ColJobTitleClean) {
		if v != "" {
			titles = append(titles, v)
		}
	}
	counts := countsTable(dataset.ColJobTitleClean, colNAds, aggregate.CountValues(titles))
	return m.write(fileTitleCleanCounts, counts.Head(m.opts.Thresholds.TitleCountsTop))
}
