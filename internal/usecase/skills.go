package usecase

import (
	"context"
	"fmt"
	"sort"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/skills"
	"JobAdsMiner/internal/table"
)

const (
	fileSkillsCounts   = "skills_counts.csv"
	fileJobSkillCounts = "job_skill_counts.csv"

	colSkill    = "skill"
	colGroup    = "group"
	colCategory = "category"
	colParent   = "parent"
)

type skillTag struct {
	tags     domain.SkillTags
	minYears *int
	maxYears *int
}

// Skills tags every ad with the three skill views and parsed experience years.
func (m *Miner) Skills(ctx context.Context) error {
	ads, err := m.read(m.opts.Artifacts.Parsed)
	if err != nil {
		return err
	}
	textCol := ads.Pick(dataset.ColTextNorm, dataset.ColTextRaw)
	if textCol == "" {
		return fmt.Errorf("skills: column %q: %w", dataset.ColTextNorm, domain.ErrMissingColumn)
	}

	tags, err := parallelMap(ctx, m.opts.Workers, rowIndexes(ads.Len()), func(i int) skillTag {
		text := ads.Value(i, textCol)
		minY, maxY := skills.ParseExperience(ads.Value(i, dataset.ColExperience) + " " + text)
		return skillTag{tags: m.skills.Tags(text), minYears: minY, maxYears: maxY}
	})
	if err != nil {
		return fmt.Errorf("extract skills: %w", err)
	}

	n := len(tags)
	minYears, maxYears := make([]string, n), make([]string, n)
	exclusive, fine, rollup := make([]string, n), make([]string, n), make([]string, n)
	for i, t := range tags {
		minYears[i] = table.OptInt(t.minYears)
		maxYears[i] = table.OptInt(t.maxYears)
		exclusive[i] = dataset.JoinList(t.tags.Exclusive)
		fine[i] = dataset.JoinList(t.tags.Fine)
		rollup[i] = dataset.JoinList(t.tags.Rollup)
	}
	for _, col := range []struct {
		name   string
		values []string
	}{
		{dataset.ColExpMinYears, minYears},
		{dataset.ColExpMaxYears, maxYears},
		{dataset.ColSkills, exclusive},
		{dataset.ColSkillsFine, fine},
		{dataset.ColSkillsParents, rollup},
	} {
		if err := ads.SetColumn(col.name, col.values); err != nil {
			return fmt.Errorf("set skills: %w", err)
		}
	}

	if err := m.write(m.opts.Artifacts.Skills, ads); err != nil {
		return err
	}
	if err := m.write(fileSkillsCounts, m.skillCounts(tags)); err != nil {
		return err
	}
	return m.write(fileJobSkillCounts, jobSkillCounts(ads, tags))
}

// skillCounts counts ads per skill over the exclusive view. Every catalog
// skill is listed, including those with no ads.
func (m *Miner) skillCounts(tags []skillTag) *table.Table {
	counts := make(map[string]int)
	for _, t := range tags {
		for _, s := range t.tags.Exclusive {
			counts[s]++
		}
	}
	names := m.skills.Names()
	sort.SliceStable(names, func(i, j int) bool { return counts[names[i]] > counts[names[j]] })

	out := table.New(colSkill, colNAds, colCategory, colGroup, colParent)
	for _, name := range names {
		meta, _ := m.skills.Meta(name)
		out.MustAppend(name, table.Itoa(counts[name]), meta.Category, meta.Group, meta.Parent)
	}
	return out
}

// jobSkillCounts counts ads per (normalized title, skill); ads without a title are skipped.
func jobSkillCounts(ads *table.Table, tags []skillTag) *table.Table {
	ids := dataset.AdIDs(ads)
	var pairs []aggregate.Triple
	for i, t := range tags {
		title := ads.Value(i, dataset.ColJobTitleNorm)
		if title == "" {
			continue
		}
		for _, s := range t.tags.Exclusive {
			pairs = append(pairs, aggregate.Triple{AdID: ids[i], Group: title, Item: s})
		}
	}

	out := table.New(dataset.ColJobTitleNorm, colSkill, colNAds)
	for _, r := range aggregate.GroupShares(pairs, nil) {
		out.MustAppend(r.Group, r.Item, table.Itoa(r.NItems))
	}
	return out
}
