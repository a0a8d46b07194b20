package usecase

import (
	"context"
	"fmt"
	"sort"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
	"JobAdsMiner/internal/textnorm"
)

const (
	fileRoleSkillCounts   = "role_skill_counts.csv"
	fileRoleSkillLiftAll  = "role_skill_lift_all.csv"
	fileRoleSkillLiftCore = "role_skill_lift_core.csv"
	fileRoleTopSkills     = "role_top_skills.csv"
	fileRoleTopSkillsLift = "role_top_skills_lift.csv"
	fileMatrixLong        = "role_skill_all.csv"
	fileMatrixPct         = "role_skill_all_pivot.csv"
)

// coreGroups are the skill groups kept in the core lift table.
var coreGroups = map[string]bool{
	domain.GroupHard:        true,
	domain.GroupTool:        true,
	domain.GroupCertificate: true,
}

// RoleSkills computes role × skill prevalence and lift with minimum-support filters.
func (m *Miner) RoleSkills(ctx context.Context) error {
	ads, err := m.rolesWithSkills()
	if err != nil {
		return err
	}
	roleCol, skillsCol, err := m.roleSkillColumns(ads, dataset.SkillColumns...)
	if err != nil {
		return fmt.Errorf("role skills: %w", err)
	}

	in := roleSkillInput(ads, roleCol, skillsCol, "")
	th := m.opts.Thresholds
	rows, err := aggregate.Associate(in, aggregate.Thresholds{
		MinGroupAds:      th.MinRoleAds,
		MinItemAdsGlobal: th.MinSkillAdsGlobal,
		MinPairAds:       th.MinPairAds,
	})
	if err != nil {
		return fmt.Errorf("role skills: %w", err)
	}
	m.info("role skill pairs computed", "pairs", len(rows), "skills_column", skillsCol)

	byLift := append([]aggregate.Row(nil), rows...)
	aggregate.SortByLift(byLift)
	var core []aggregate.Row
	for _, r := range byLift {
		if meta, ok := m.skills.Meta(r.Item); ok && coreGroups[meta.Group] {
			core = append(core, r)
		}
	}

	topPct := aggregate.Wide{
		GroupColumn: dataset.ColJobRoleFa,
		TotalColumn: colRoleAdCountFa,
		ItemPrefix:  colSkill,
		Metrics:     []aggregate.Metric{aggregate.PctMetric, aggregate.NMetric},
	}
	topLift := topPct
	topLift.Metrics = []aggregate.Metric{aggregate.LiftMetric, aggregate.PctMetric, aggregate.NMetric}

	outputs := []struct {
		name string
		t    *table.Table
	}{
		{fileRoleSkillCounts, m.roleSkillTable(rows)},
		{fileRoleSkillLiftAll, m.roleSkillTable(byLift)},
		{fileRoleSkillLiftCore, m.roleSkillTable(core)},
		{fileRoleTopSkills, aggregate.TopNWide(rows, m.opts.Thresholds.TopN, topPct)},
		{fileRoleTopSkillsLift, aggregate.TopNWide(core, m.opts.Thresholds.TopN, topLift)},
	}
	for _, o := range outputs {
		if err := m.write(o.name, o.t); err != nil {
			return err
		}
	}
	return nil
}

// RoleSkillMatrix writes the unfiltered role × skill shares in long and pivot form.
func (m *Miner) RoleSkillMatrix(ctx context.Context) error {
	ads, err := m.read(m.opts.Artifacts.Enriched)
	if err != nil {
		return err
	}
	roleCol, skillsCol, err := m.roleSkillColumns(ads, dataset.ColSkills)
	if err != nil {
		return fmt.Errorf("role skill matrix: %w", err)
	}

	in := roleSkillInput(ads, roleCol, skillsCol, domain.Unknown)
	in.Memberships = nil
	rows, err := aggregate.Associate(in, aggregate.Thresholds{})
	if err != nil {
		return fmt.Errorf("role skill matrix: %w", err)
	}

	long := table.New(dataset.ColJobRoleFa, colSkill, colNAds, "n_ads_role", "pct_of_role", "n_ads_global", colGroup, colCategory, colParent)
	for _, r := range rows {
		meta, _ := m.skills.Meta(r.Item)
		long.MustAppend(r.Group, r.Item, table.Itoa(r.NItems), table.Itoa(r.NGroupTotal),
			table.Float(r.PctOfGroup), table.Itoa(r.NGlobal), meta.Group, meta.Category, meta.Parent)
	}
	if err := m.write(fileMatrixLong, long); err != nil {
		return err
	}
	return m.write(fileMatrixPct, pivotPct(rows))
}

// roleSkillColumns picks the role column and the skills column: the configured
// one when present, else the first of candidates.
func (m *Miner) roleSkillColumns(ads *table.Table, candidates ...string) (string, string, error) {
	roleCol := ads.Pick(dataset.RoleColumns...)
	if roleCol == "" {
		return "", "", fmt.Errorf("column %q: %w", dataset.ColJobRoleFa, domain.ErrMissingColumn)
	}
	skillsCol := ads.Pick(append([]string{m.opts.SkillsColumn}, candidates...)...)
	if skillsCol == "" {
		return "", "", fmt.Errorf("column %q: %w", candidates[0], domain.ErrMissingColumn)
	}
	return roleCol, skillsCol, nil
}

// roleSkillInput builds the association input with normalized roles. Empty
// roles are replaced by emptyRole, or dropped when emptyRole is "".
func roleSkillInput(ads *table.Table, roleCol, skillsCol, emptyRole string) aggregate.Input {
	ids := dataset.AdIDs(ads)
	var in aggregate.Input
	for i := 0; i < ads.Len(); i++ {
		role := textnorm.Normalize(ads.Value(i, roleCol))
		if role == "" {
			role = emptyRole
		}
		if role == "" {
			continue
		}
		in.Memberships = append(in.Memberships, aggregate.Membership{AdID: ids[i], Group: role})
		for _, s := range dataset.SplitList(ads.Value(i, skillsCol)) {
			in.Pairs = append(in.Pairs, aggregate.Triple{AdID: ids[i], Group: role, Item: s})
		}
	}
	return in
}

func (m *Miner) roleSkillTable(rows []aggregate.Row) *table.Table {
	t := table.New(dataset.ColJobRoleFa, colSkill, colNAds, "n_ads_role", "n_ads_global",
		"p_skill", "pct_of_role", "lift", "lift_log", colGroup, colCategory, colParent)
	for _, r := range rows {
		meta, _ := m.skills.Meta(r.Item)
		t.MustAppend(r.Group, r.Item, table.Itoa(r.NItems), table.Itoa(r.NGroupTotal), table.Itoa(r.NGlobal),
			table.Float(r.PGlobal), table.Float(r.PctOfGroup), table.Float(r.Lift), table.Float(r.LogLift),
			meta.Group, meta.Category, meta.Parent)
	}
	return t
}

// pivotPct lays pct_of_role out as roles × skills, both sorted, missing pairs as 0.
func pivotPct(rows []aggregate.Row) *table.Table {
	pct := make(map[[2]string]float64, len(rows))
	roleSet, skillSet := map[string]struct{}{}, map[string]struct{}{}
	for _, r := range rows {
		pct[[2]string{r.Group, r.Item}] = r.PctOfGroup
		roleSet[r.Group] = struct{}{}
		skillSet[r.Item] = struct{}{}
	}
	roles, skills := sortedKeys(roleSet), sortedKeys(skillSet)

	out := table.New(append([]string{dataset.ColJobRoleFa}, skills...)...)
	for _, role := range roles {
		values := []string{role}
		for _, s := range skills {
			values = append(values, table.Float(pct[[2]string{role, s}]))
		}
		out.MustAppend(values...)
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
