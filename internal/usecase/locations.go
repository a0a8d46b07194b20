package usecase

import (
	"context"
	"fmt"
	"strconv"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
	"JobAdsMiner/internal/textnorm"
)

const (
	fileProvinceCounts        = "province_counts.csv"
	fileCityCounts            = "city_counts.csv"
	fileCityMentions          = "city_mentions_counts.csv"
	fileProvinceMentions      = "province_mentions_counts.csv"
	fileCityMentionsAny       = "city_mentions_any_counts.csv"
	fileProvinceMentionsAny   = "province_mentions_any_counts.csv"
	fileTehranDistrictCounts  = "tehran_district_counts.csv"
	fileTehranNeighborCounts  = "tehran_neighborhood_counts.csv"
	fileLocationUnknown       = "location_unknown_samples.csv"
	fileTehranNeighborUnknown = "tehran_neighborhood_unknown_samples.csv"
)

// DistrictCountLabel is the label of a Tehran district in count tables.
func DistrictCountLabel(d int) string {
	return "منطقه " + strconv.Itoa(d)
}

type locationTag struct {
	source string
	tag    domain.GeoTag
}

// Locations resolves the primary place, Tehran district and neighborhood, and
// all city mentions of every ad.
func (m *Miner) Locations(ctx context.Context) error {
	ads, err := m.read(m.opts.Artifacts.Parsed)
	if err != nil {
		return err
	}
	if !ads.Has(dataset.ColLocation) && !ads.Has(dataset.ColTextRaw) {
		return fmt.Errorf("locations: column %q: %w", dataset.ColLocation, domain.ErrMissingColumn)
	}

	tags, err := parallelMap(ctx, m.opts.Workers, rowIndexes(ads.Len()), func(i int) locationTag {
		loc := ads.Value(i, dataset.ColLocation)
		return locationTag{
			source: textnorm.NormalizeLocation(loc),
			tag:    m.geo.Tag(loc, ads.Value(i, dataset.ColTextRaw)),
		}
	})
	if err != nil {
		return fmt.Errorf("tag locations: %w", err)
	}

	n := len(tags)
	cols := map[string][]string{}
	for _, c := range locationColumns {
		cols[c] = make([]string, n)
	}
	ids := dataset.AdIDs(ads)
	var (
		provinces, cities, districts, neighborhoods []string
		unknown, tehranUnknown                      []string
		cityMentions, provMentions                  []aggregate.Membership
		cityMentionsAny, provMentionsAny            []aggregate.Membership
	)
	for i, t := range tags {
		g := t.tag
		cityList, provList := splitPlaces(g.Mentions)
		cityAny, provAny := splitPlaces(g.MentionsAny)

		cols[dataset.ColLocSourceNorm][i] = t.source
		cols[dataset.ColProvince][i] = g.Province
		cols[dataset.ColCity][i] = g.City
		cols[dataset.ColTehranDistrict][i] = table.OptInt(g.District)
		cols[dataset.ColTehranNeighbor][i] = g.Neighborhood
		cols[dataset.ColCityMentions][i] = dataset.JoinList(cityList)
		cols[dataset.ColProvMentions][i] = dataset.JoinList(provList)
		cols[dataset.ColCityMentionsAny][i] = dataset.JoinList(cityAny)
		cols[dataset.ColProvMentionsAny][i] = dataset.JoinList(provAny)

		provinces = append(provinces, orUnknown(g.Province, domain.Unknown))
		cities = append(cities, orUnknown(g.City, domain.Unknown))
		cityMentions = appendMembers(cityMentions, ids[i], cityList)
		provMentions = appendMembers(provMentions, ids[i], provList)
		cityMentionsAny = appendMembers(cityMentionsAny, ids[i], cityAny)
		provMentionsAny = appendMembers(provMentionsAny, ids[i], provAny)

		if g.City == "" && t.source != "" {
			unknown = append(unknown, t.source)
		}
		if g.City != domain.Tehran {
			continue
		}
		district := domain.Unknown
		if g.District != nil {
			district = DistrictCountLabel(*g.District)
		}
		districts = append(districts, district)
		neighborhoods = append(neighborhoods, orUnknown(g.Neighborhood, domain.Unknown))
		if g.Neighborhood == "" && t.source != "" {
			tehranUnknown = append(tehranUnknown, t.source)
		}
	}

	for _, c := range locationColumns {
		if err := ads.SetColumn(c, cols[c]); err != nil {
			return fmt.Errorf("set locations: %w", err)
		}
	}

	samples := m.opts.Thresholds.UnknownSamples
	outputs := []struct {
		name string
		t    *table.Table
	}{
		{m.opts.Artifacts.Locations, ads},
		{fileProvinceCounts, countsTable(dataset.ColProvince, colNAds, aggregate.CountValues(provinces))},
		{fileCityCounts, countsTable(dataset.ColCity, colNAds, aggregate.CountValues(cities))},
		{fileCityMentions, countsTable(dataset.ColCity, colNAds, aggregate.CountDistinct(cityMentions))},
		{fileProvinceMentions, countsTable(dataset.ColProvince, colNAds, aggregate.CountDistinct(provMentions))},
		{fileCityMentionsAny, countsTable(dataset.ColCity, colNAds, aggregate.CountDistinct(cityMentionsAny))},
		{fileProvinceMentionsAny, countsTable(dataset.ColProvince, colNAds, aggregate.CountDistinct(provMentionsAny))},
		{fileTehranDistrictCounts, countsTable(dataset.ColTehranDistrict, colNAds, aggregate.CountValues(districts))},
		{fileTehranNeighborCounts, countsTable(dataset.ColTehranNeighbor, colNAds, aggregate.CountValues(neighborhoods))},
		{fileLocationUnknown, countsTable(dataset.ColLocSourceNorm, colNAds, aggregate.CountValues(unknown)).Head(samples)},
		{fileTehranNeighborUnknown, countsTable(dataset.ColLocSourceNorm, colNAds, aggregate.CountValues(tehranUnknown)).Head(samples)},
	}
	for _, o := range outputs {
		if err := m.write(o.name, o.t); err != nil {
			return err
		}
	}
	return nil
}

var locationColumns = []string{
	dataset.ColLocSourceNorm,
	dataset.ColProvince,
	dataset.ColCity,
	dataset.ColTehranDistrict,
	dataset.ColTehranNeighbor,
	dataset.ColCityMentions,
	dataset.ColProvMentions,
	dataset.ColCityMentionsAny,
	dataset.ColProvMentionsAny,
}

// splitPlaces returns the cities and the distinct provinces of a mention list.
func splitPlaces(places []domain.Place) (cities, provinces []string) {
	seen := make(map[string]struct{})
	for _, p := range places {
		cities = append(cities, p.City)
		if _, ok := seen[p.Province]; ok {
			continue
		}
		seen[p.Province] = struct{}{}
		provinces = append(provinces, p.Province)
	}
	return cities, provinces
}

func appendMembers(dst []aggregate.Membership, adID string, groups []string) []aggregate.Membership {
	for _, g := range groups {
		dst = append(dst, aggregate.Membership{AdID: adID, Group: g})
	}
	return dst
}
