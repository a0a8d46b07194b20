package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

const fileMasterReport = "master_report.csv"

var reportColumns = []string{"section", "subsection", "item", "rank", "n_ads", "pct", "lift", "value", "note"}

type reportRow struct {
	section, subsection, item string
	rank                      int
	n, pct, lift, value, note string
}

type report struct {
	rows     []reportRow
	totalAds int
}

// rankedSection lists the top rows of a count table.
type rankedSection struct {
	file, section    string
	item, count      string
	extras           []string
	all              bool
	positionalHeader bool
}

// wideSection unrolls a wide top-N table.
type wideSection struct {
	file, section string
	group, total  string
	prefix        string
	maxK          int
}

// Report assembles the long-form master report from the stage artifacts.
// Missing artifacts are listed in the manifest and otherwise skipped.
func (m *Miner) Report(ctx context.Context) error {
	rep := &report{}

	enriched, err := m.optional(m.opts.Artifacts.Enriched)
	if err != nil {
		return err
	}
	if enriched != nil {
		rep.totalAds = distinctAds(enriched)
		rep.add(reportRow{section: "meta", item: "total_ads", value: table.Itoa(rep.totalAds)})
	} else {
		rep.add(reportRow{section: "meta", item: "total_ads", note: "missing " + m.opts.Artifacts.Enriched})
	}

	for _, name := range m.manifest() {
		row := reportRow{section: "file_manifest", item: name, note: "missing"}
		if size, ok := m.store.Stat(name); ok {
			row.value, row.note = strconv.FormatInt(size, 10), ""
		}
		rep.add(row)
	}

	for _, c := range []struct{ file, section, subsection, item string }{
		{fileFamilyCatalog, "job_family_catalog", "", colFamilyFa},
		{fileRoleCatalog, "job_role_catalog", colFamilyFa, colRoleFa},
	} {
		t, err := m.optional(c.file)
		if err != nil {
			return err
		}
		rep.catalog(t, c.section, c.subsection, c.item)
	}

	top := m.opts.Thresholds.ReportTopN
	for _, s := range []rankedSection{
		{file: fileSkillsCounts, section: "skills", item: colSkill, count: colNAds, extras: []string{colCategory, colGroup, colParent}},
		{file: fileSkillGroupCounts, section: "skill_groups", item: colGroup, count: colNAds, all: true},
		{file: fileSkillCategoryCounts, section: "skill_categories", item: colCategory, count: colNAds, all: true},
		{file: fileCertificatesCounts, section: "certificates", item: colSkill, count: colNAds},
		{file: fileRoleCountsFa, section: "job_roles", positionalHeader: true},
		{file: fileFamilyCountsFa, section: "job_families", positionalHeader: true},
		{file: fileProvinceCounts, section: "provinces", item: dataset.ColProvince, count: colNAds},
		{file: fileCityCounts, section: "cities", item: dataset.ColCity, count: colNAds},
		{file: fileTehranNeighborCounts, section: "tehran_neighborhoods", item: dataset.ColTehranNeighbor, count: colNAds},
		{file: fileTehranDistrictCounts, section: "tehran_districts", item: dataset.ColTehranDistrict, count: colNAds},
		{file: fileTitleCleanCounts, section: "job_titles_raw", item: dataset.ColJobTitleClean, count: colNAds},
	} {
		t, err := m.optional(s.file)
		if err != nil {
			return err
		}
		limit := top
		if s.all {
			limit = 0
		}
		rep.ranked(t, s, limit)
	}

	for _, s := range []wideSection{
		{fileProvinceTopRoles, "province_top_roles", dataset.ColProvince, colNAdsTotal, "role", 10},
		{fileNeighborTopRoles, "tehran_neighborhood_top_roles", dataset.ColTehranNeighbor, colNAdsTotal, "role", 10},
		{fileDistrictTopRoles, "tehran_district_top_roles", dataset.ColTehranDistrict, colNAdsTotal, "role", 10},
		{fileRoleTopSkills, "role_top_skills", dataset.ColJobRoleFa, colRoleAdCountFa, colSkill, m.opts.Thresholds.TopN},
		{fileRoleTopSkillsLift, "role_top_skills_lift", dataset.ColJobRoleFa, colRoleAdCountFa, colSkill, m.opts.Thresholds.TopN},
	} {
		t, err := m.optional(s.file)
		if err != nil {
			return err
		}
		rep.wide(t, s)
	}

	roleSkill, err := m.optional(fileRoleSkillLiftCore)
	if err != nil {
		return err
	}
	if roleSkill == nil || roleSkill.Len() == 0 {
		if roleSkill, err = m.optional(fileRoleSkillCounts); err != nil {
			return err
		}
	}
	rep.roleSkill(roleSkill, 12, 25)

	for _, s := range []rankedSection{
		{file: fileRoleGroupCounts, section: "role_skill_groups", item: colGroup, count: colNAds, all: true,
			extras: []string{dataset.ColJobRole, "n_ads_role", "pct_of_role"}},
		{file: fileFamilyGroupCounts, section: "family_skill_groups", item: colGroup, count: colNAds, all: true,
			extras: []string{dataset.ColJobFamily, "n_ads_family", "pct_of_family"}},
	} {
		t, err := m.optional(s.file)
		if err != nil {
			return err
		}
		rep.ranked(t, s, 0)
	}

	if len(rep.rows) == 0 {
		return fmt.Errorf("master report: %w", domain.ErrEmptyResult)
	}
	out := table.New(reportColumns...)
	for _, r := range rep.rows {
		out.MustAppend(r.section, r.subsection, r.item, table.Itoa(r.rank), r.n, r.pct, r.lift, r.value, r.note)
	}
	return m.write(fileMasterReport, out)
}

// manifest lists the artifacts whose presence and size are reported.
func (m *Miner) manifest() []string {
	a := m.opts.Artifacts
	return []string{
		a.Parsed, a.Titles, a.Skills, a.Locations, a.Enriched,
		fileSkillsCounts, fileRoleCountsFa, fileFamilyCountsFa,
		fileProvinceCounts, fileCityCounts, fileTehranNeighborCounts, fileTehranDistrictCounts,
		fileRoleSkillCounts, fileRoleSkillLiftCore, fileRoleTopSkills, fileRoleTopSkillsLift,
		fileSkillGroupCounts, fileSkillCategoryCounts, fileRoleGroupCounts, fileFamilyGroupCounts,
		fileCertificatesCounts, fileCertificatesByRole, fileCertificatesTopRoles,
		fileProvinceTopRoles, fileNeighborTopRoles, fileDistrictTopRoles,
		fileFamilyCatalog, fileRoleCatalog,
	}
}

// optional reads an artifact, returning nil when it does not exist.
func (m *Miner) optional(name string) (*table.Table, error) {
	t, err := m.store.Read(name)
	if errors.Is(err, domain.ErrMissingInput) {
		m.debug("report input missing", "file", name)
		return nil, nil
	}
	return t, err
}

func distinctAds(t *table.Table) int {
	if !t.Has(dataset.ColAdKey) {
		return t.Len()
	}
	seen := make(map[string]struct{}, t.Len())
	for _, k := range t.Column(dataset.ColAdKey) {
		seen[k] = struct{}{}
	}
	return len(seen)
}

func (r *report) add(row reportRow) {
	r.rows = append(r.rows, row)
}

func (r *report) catalog(t *table.Table, section, subsectionCol, itemCol string) {
	if t == nil {
		return
	}
	for i := 0; i < t.Len(); i++ {
		extras := map[string]string{}
		for _, c := range t.Columns() {
			if c != subsectionCol && c != itemCol {
				extras[c] = t.Value(i, c)
			}
		}
		r.add(reportRow{
			section:    section,
			subsection: t.Value(i, subsectionCol),
			item:       t.Value(i, itemCol),
			note:       noteJSON(extras),
		})
	}
}

func (r *report) ranked(t *table.Table, s rankedSection, limit int) {
	if t == nil || t.Len() == 0 {
		return
	}
	item, count := s.item, s.count
	if s.positionalHeader {
		cols := t.Columns()
		if len(cols) < 2 {
			return
		}
		item, count = cols[0], cols[1]
	}
	if !t.Has(item) || !t.Has(count) {
		return
	}

	order := rowIndexes(t.Len())
	counts := make([]int, t.Len())
	for i := range counts {
		counts[i], _ = t.Int(i, count)
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	for rank, i := range order {
		row := reportRow{
			section: s.section,
			item:    t.Value(i, item),
			rank:    rank + 1,
			n:       table.Itoa(counts[i]),
		}
		if r.totalAds > 0 {
			row.pct = table.Float(round(float64(counts[i])/float64(r.totalAds), 6))
		}
		if len(s.extras) > 0 {
			extras := map[string]string{}
			for _, c := range s.extras {
				if t.Has(c) {
					extras[c] = t.Value(i, c)
				}
			}
			row.note = noteJSON(extras)
		}
		r.add(row)
	}
}

func (r *report) wide(t *table.Table, s wideSection) {
	if t == nil || !t.Has(s.group) {
		return
	}
	for i := 0; i < t.Len(); i++ {
		for k := 1; k <= s.maxK; k++ {
			suffix := "_" + strconv.Itoa(k)
			item := t.Value(i, s.prefix+suffix)
			if item == "" {
				continue
			}
			row := reportRow{
				section:    s.section,
				subsection: t.Value(i, s.group),
				item:       item,
				rank:       k,
				n:          t.Value(i, "n"+suffix),
				pct:        t.Value(i, "pct"+suffix),
				lift:       t.Value(i, "lift"+suffix),
				value:      t.Value(i, s.total),
			}
			if n, ok := t.Int(i, "n"+suffix); ok && row.pct == "" && r.totalAds > 0 {
				row.pct = table.Float(float64(n) / float64(r.totalAds))
			}
			r.add(row)
		}
	}
}

// roleSkill lists the pairs among the largest roles and the most common skills.
func (r *report) roleSkill(t *table.Table, topRoles, topSkills int) {
	if t == nil || t.Require(dataset.ColJobRoleFa, colSkill, colNAds, "pct_of_role", "lift", "n_ads_role", "n_ads_global") != nil {
		return
	}
	roleSize, skillSize := map[string]int{}, map[string]int{}
	for i := 0; i < t.Len(); i++ {
		roleSize[t.Value(i, dataset.ColJobRoleFa)], _ = t.Int(i, "n_ads_role")
		skillSize[t.Value(i, colSkill)], _ = t.Int(i, "n_ads_global")
	}
	keepRoles := topKeys(roleSize, topRoles)
	keepSkills := topKeys(skillSize, topSkills)

	type pair struct {
		row int
		pct float64
		n   int
	}
	var pairs []pair
	for i := 0; i < t.Len(); i++ {
		if !keepRoles[t.Value(i, dataset.ColJobRoleFa)] || !keepSkills[t.Value(i, colSkill)] {
			continue
		}
		pct, _ := strconv.ParseFloat(t.Value(i, "pct_of_role"), 64)
		n, _ := t.Int(i, colNAds)
		pairs = append(pairs, pair{row: i, pct: pct, n: n})
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		ra, rb := t.Value(pairs[a].row, dataset.ColJobRoleFa), t.Value(pairs[b].row, dataset.ColJobRoleFa)
		if ra != rb {
			return ra < rb
		}
		if pairs[a].pct != pairs[b].pct {
			return pairs[a].pct > pairs[b].pct
		}
		return pairs[a].n > pairs[b].n
	})

	for _, p := range pairs {
		i := p.row
		r.add(reportRow{
			section:    "role_skill",
			subsection: t.Value(i, dataset.ColJobRoleFa),
			item:       t.Value(i, colSkill),
			n:          t.Value(i, colNAds),
			pct:        t.Value(i, "pct_of_role"),
			lift:       t.Value(i, "lift"),
			value:      t.Value(i, "n_ads_role"),
			note: noteJSON(map[string]string{
				colGroup:       t.Value(i, colGroup),
				colCategory:    t.Value(i, colCategory),
				colParent:      t.Value(i, colParent),
				"n_ads_global": t.Value(i, "n_ads_global"),
			}),
		})
	}
}

// topKeys returns the n keys with the largest values, ties broken by key.
func topKeys(values map[string]int, n int) map[string]bool {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if values[keys[i]] != values[keys[j]] {
			return values[keys[i]] > values[keys[j]]
		}
		return keys[i] < keys[j]
	})
	out := make(map[string]bool, n)
	for i := 0; i < len(keys) && i < n; i++ {
		out[keys[i]] = true
	}
	return out
}

// noteJSON encodes extras with sorted keys; empty maps give "".
func noteJSON(extras map[string]string) string {
	if len(extras) == 0 {
		return ""
	}
	raw, err := json.Marshal(extras)
	if err != nil {
		return ""
	}
	return string(raw)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
