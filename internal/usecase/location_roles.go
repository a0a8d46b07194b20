package usecase

import (
	"context"
	"fmt"
	"sort"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

const (
	colJobRole   = "job_role"
	colNAdsTotal = "n_ads_total"

	fileProvinceTopRoles = "province_top_roles.csv"
	fileDistrictTopRoles = "tehran_district_top_roles.csv"
	fileNeighborTopRoles = "tehran_neighborhood_top_roles.csv"
)

type locationLevel struct {
	column     string
	tehranOnly bool
}

var locationLevels = []locationLevel{
	{column: dataset.ColProvince},
	{column: dataset.ColCity},
	{column: dataset.ColTehranDistrict, tehranOnly: true},
	{column: dataset.ColTehranNeighbor, tehranOnly: true},
}

// LocationRoles counts roles per province, city, Tehran district and
// neighborhood and writes the top roles of each place.
func (m *Miner) LocationRoles(ctx context.Context) error {
	locs, err := m.read(m.opts.Artifacts.Locations)
	if err != nil {
		return err
	}
	titles, err := m.read(m.opts.Artifacts.Titles)
	if err != nil {
		return err
	}
	if titles.Pick(dataset.RoleColumns...) == "" {
		return fmt.Errorf("location roles: column %q: %w", dataset.ColJobRoleFa, domain.ErrMissingColumn)
	}
	ads, err := dataset.Join(locs, titles)
	if err != nil {
		return fmt.Errorf("location roles: %w", err)
	}
	roleCol := ads.Pick(dataset.RoleColumns...)
	ids := dataset.AdIDs(ads)

	for _, level := range locationLevels {
		if !ads.Has(level.column) {
			continue
		}
		var pairs []aggregate.Triple
		for i := 0; i < ads.Len(); i++ {
			if level.tehranOnly && ads.Value(i, dataset.ColCity) != domain.Tehran {
				continue
			}
			place, role := ads.Value(i, level.column), ads.Value(i, roleCol)
			if place == "" || role == "" {
				continue
			}
			pairs = append(pairs, aggregate.Triple{AdID: ids[i], Group: place, Item: role})
		}
		rows := aggregate.GroupShares(pairs, nil)

		if err := m.write(level.column+"_role_counts.csv", locationRoleCounts(level.column, rows)); err != nil {
			return err
		}
		wide := aggregate.TopNWide(rows, m.opts.Thresholds.LocationTopN, aggregate.Wide{
			GroupColumn: level.column,
			TotalColumn: colNAdsTotal,
			ItemPrefix:  "role",
			Metrics:     []aggregate.Metric{aggregate.NMetric, aggregate.PctMetric},
		})
		if err := m.write(level.column+"_top_roles.csv", wide); err != nil {
			return err
		}
	}
	return nil
}

// locationRoleCounts lists (place, role) counts by count desc.
func locationRoleCounts(column string, rows []aggregate.Row) *table.Table {
	sorted := append([]aggregate.Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].NItems > sorted[j].NItems })

	t := table.New(column, colJobRole, colNAds)
	for _, r := range sorted {
		t.MustAppend(r.Group, r.Item, table.Itoa(r.NItems))
	}
	return t
}
