package usecase

import (
	"context"
	"fmt"

	"JobAdsMiner/internal/aggregate"
	"JobAdsMiner/internal/dataset"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

const (
	fileSkillGroupCounts     = "skill_group_counts.csv"
	fileSkillCategoryCounts  = "skill_category_counts.csv"
	fileRoleGroupCounts      = "role_skill_group_counts.csv"
	fileRoleCategoryCounts   = "role_skill_category_counts.csv"
	fileFamilyGroupCounts    = "family_skill_group_counts.csv"
	fileFamilyCategoryCounts = "family_skill_category_counts.csv"
	fileCertificatesCounts   = "certificates_counts.csv"
	fileCertificatesByRole   = "certificates_by_role.csv"
	fileCertificatesTopRoles = "certificates_top_roles.csv"
	certificateCategory      = "capital_market"
	unknownSkillClass        = "unknown"
)

// skillHit is one (ad, skill) observation with the ad's role and family.
type skillHit struct {
	ad, role, family       string
	skill, group, category string
}

// SkillGroups aggregates skills by catalog group and category, overall and per
// role and family, plus capital-market certificate tables.
func (m *Miner) SkillGroups(ctx context.Context) error {
	ads, err := m.read(m.opts.Artifacts.Enriched)
	if err != nil {
		return err
	}
	skillsCol := ads.Pick(m.opts.SkillsColumn, dataset.ColSkills)
	if skillsCol == "" {
		return fmt.Errorf("skill groups: column %q: %w", dataset.ColSkills, domain.ErrMissingColumn)
	}
	roleCol := ads.Pick(dataset.RoleColumns...)
	familyCol := ads.Pick(dataset.FamilyColumns...)

	hits := m.skillHits(ads, skillsCol, roleCol, familyCol)
	if len(hits) == 0 {
		return fmt.Errorf("skill groups: no skills found in %s: %w", skillsCol, domain.ErrEmptyResult)
	}

	var groups, categories []aggregate.Membership
	var roleGroup, roleCategory, familyGroup, familyCategory []aggregate.Triple
	var certs []skillHit
	for _, h := range hits {
		groups = append(groups, aggregate.Membership{AdID: h.ad, Group: h.group})
		categories = append(categories, aggregate.Membership{AdID: h.ad, Group: h.category})
		if h.role != "" {
			roleGroup = append(roleGroup, aggregate.Triple{AdID: h.ad, Group: h.role, Item: h.group})
			roleCategory = append(roleCategory, aggregate.Triple{AdID: h.ad, Group: h.role, Item: h.category})
		}
		if h.family != "" {
			familyGroup = append(familyGroup, aggregate.Triple{AdID: h.ad, Group: h.family, Item: h.group})
			familyCategory = append(familyCategory, aggregate.Triple{AdID: h.ad, Group: h.family, Item: h.category})
		}
		if h.group == domain.GroupCertificate && h.category == certificateCategory {
			certs = append(certs, h)
		}
	}

	type output struct {
		name string
		t    *table.Table
	}
	outputs := []output{
		{fileSkillGroupCounts, countsTable(colGroup, colNAds, aggregate.CountDistinct(groups))},
		{fileSkillCategoryCounts, countsTable(colCategory, colNAds, aggregate.CountDistinct(categories))},
	}
	if roleCol != "" {
		outputs = append(outputs,
			output{fileRoleGroupCounts, sharesTable(roleCol, colGroup, "n_ads_role", "pct_of_role", aggregate.GroupShares(roleGroup, nil))},
			output{fileRoleCategoryCounts, sharesTable(roleCol, colCategory, "n_ads_role", "pct_of_role", aggregate.GroupShares(roleCategory, nil))},
		)
	}
	if familyCol != "" {
		outputs = append(outputs,
			output{fileFamilyGroupCounts, sharesTable(familyCol, colGroup, "n_ads_family", "pct_of_family", aggregate.GroupShares(familyGroup, nil))},
			output{fileFamilyCategoryCounts, sharesTable(familyCol, colCategory, "n_ads_family", "pct_of_family", aggregate.GroupShares(familyCategory, nil))},
		)
	}

	if len(certs) > 0 {
		var certMembers []aggregate.Membership
		var byRole, topRoles []aggregate.Triple
		for _, h := range certs {
			certMembers = append(certMembers, aggregate.Membership{AdID: h.ad, Group: h.skill})
			if h.role != "" {
				byRole = append(byRole, aggregate.Triple{AdID: h.ad, Group: h.role, Item: h.skill})
				topRoles = append(topRoles, aggregate.Triple{AdID: h.ad, Group: h.skill, Item: h.role})
			}
		}
		outputs = append(outputs, output{fileCertificatesCounts, countsTable(colSkill, colNAds, aggregate.CountDistinct(certMembers))})
		if roleCol != "" {
			var roleMembers []aggregate.Membership
			for _, h := range hits {
				if h.role != "" {
					roleMembers = append(roleMembers, aggregate.Membership{AdID: h.ad, Group: h.role})
				}
			}
			outputs = append(outputs,
				output{fileCertificatesByRole, sharesTable(roleCol, colSkill, "n_ads_role", "pct_of_role", aggregate.GroupShares(byRole, roleMembers))},
				output{fileCertificatesTopRoles, sharesTable(colSkill, roleCol, "n_ads_cert", "pct_of_cert", aggregate.GroupShares(topRoles, nil))},
			)
		}
	} else {
		m.info("no capital-market certificates found")
	}

	for _, o := range outputs {
		if err := m.write(o.name, o.t); err != nil {
			return err
		}
	}
	return nil
}

func (m *Miner) skillHits(ads *table.Table, skillsCol, roleCol, familyCol string) []skillHit {
	ids := dataset.AdIDs(ads)
	var hits []skillHit
	for i := 0; i < ads.Len(); i++ {
		seen := make(map[string]struct{})
		for _, s := range dataset.SplitList(ads.Value(i, skillsCol)) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			h := skillHit{
				ad:       ids[i],
				role:     ads.Value(i, roleCol),
				family:   ads.Value(i, familyCol),
				skill:    s,
				group:    unknownSkillClass,
				category: unknownSkillClass,
			}
			if meta, ok := m.skills.Meta(s); ok {
				h.group = orUnknown(meta.Group, unknownSkillClass)
				h.category = orUnknown(meta.Category, unknownSkillClass)
			}
			hits = append(hits, h)
		}
	}
	return hits
}

// sharesTable renders GroupShares rows as group, item, n_ads, total, pct.
func sharesTable(groupCol, itemCol, totalCol, pctCol string, rows []aggregate.Row) *table.Table {
	t := table.New(groupCol, itemCol, colNAds, totalCol, pctCol)
	for _, r := range rows {
		t.MustAppend(r.Group, r.Item, table.Itoa(r.NItems), table.Itoa(r.NGroupTotal), table.Float(r.PctOfGroup))
	}
	return t
}
