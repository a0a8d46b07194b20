package usecase

import (
	"context"
	"math"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/table"
)

const (
	fileRoleCatalog   = "job_role_catalog.csv"
	fileFamilyCatalog = "job_family_catalog.csv"
	fileSkillCatalog  = "skill_catalog.csv"
	fileCoverage      = "parse_coverage.csv"

	colFamilyFa = "family_fa"
	colRoleFa   = "role_fa"
)

// Catalogs exports the job taxonomy, the derived family list and the skill catalog.
func (m *Miner) Catalogs(ctx context.Context) error {
	roles := table.New("code", colFamilyFa, colRoleFa, "pattern")
	type family struct {
		name  string
		codes []string
	}
	var families []*family
	byName := make(map[string]*family)
	for _, r := range m.catalog.Jobs.Rules {
		roles.MustAppend(r.Code, r.Family, r.Role, r.Pattern)
		f, ok := byName[r.Family]
		if !ok {
			f = &family{name: r.Family}
			byName[r.Family] = f
			families = append(families, f)
		}
		f.codes = append(f.codes, r.Code)
	}

	fams := table.New(colFamilyFa, "n_roles", "codes")
	for _, f := range families {
		fams.MustAppend(f.name, table.Itoa(len(f.codes)), dataset.JoinList(f.codes))
	}

	skillsTable := table.New(colSkill, colGroup, colCategory, colParent, "pattern")
	for _, s := range m.catalog.Skills {
		skillsTable.MustAppend(s.Name, s.Group, s.Category, s.Parent, s.Pattern)
	}

	if err := m.write(fileRoleCatalog, roles); err != nil {
		return err
	}
	if err := m.write(fileFamilyCatalog, fams); err != nil {
		return err
	}
	return m.write(fileSkillCatalog, skillsTable)
}

// Audit compares message and group counts of every export file with the
// number of parsed ads attributed to it.
func (m *Miner) Audit(ctx context.Context) error {
	coverage, err := m.source.Coverage(ctx)
	if err != nil {
		return err
	}
	parsed, err := m.read(m.opts.Artifacts.Parsed)
	if err != nil {
		return err
	}
	if err := parsed.Require(dataset.ColSourceFile); err != nil {
		return err
	}
	perFile := make(map[string]int)
	for _, c := range aggregate.CountValues(parsed.Column(dataset.ColSourceFile)) {
		perFile[c.Value] = c.N
	}

	out := table.New("file", "html_default_messages", "html_joined_messages", "groups_from_html",
		"parsed_groups", "default_per_group", "parsed_minus_html_groups")
	var totalDefault, totalGroups, totalParsed int
	for _, c := range coverage {
		parsedGroups := perFile[c.SourceFile]
		perGroup := math.Round(float64(c.DefaultMessages)/float64(max(c.Groups, 1))*1e3) / 1e3
		out.MustAppend(c.SourceFile, table.Itoa(c.DefaultMessages), table.Itoa(c.JoinedMessages),
			table.Itoa(c.Groups), table.Itoa(parsedGroups), table.Float(perGroup), table.Itoa(parsedGroups-c.Groups))
		totalDefault += c.DefaultMessages
		totalGroups += c.Groups
		totalParsed += parsedGroups
	}
	m.info("parse coverage", "files", len(coverage), "default_messages", totalDefault,
		"html_groups", totalGroups, "parsed_groups", totalParsed)
	return m.write(fileCoverage, out)
}
