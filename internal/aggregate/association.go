// Package aggregate turns per-ad tags into counts, shares and lift tables.
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"JobAdsMiner/internal/domain"
)

const eps = 1e-12

// Triple is one (ad, group, item) observation, e.g. an ad of a role requiring a skill.
type Triple struct {
	AdID  string
	Group string
	Item  string
}

// Membership places an ad in a group regardless of its items.
type Membership struct {
	AdID  string
	Group string
}

// Input is the long-form association input. Memberships may be empty, in which
// case group membership is derived from Pairs only.
type Input struct {
	Pairs       []Triple
	Memberships []Membership
}

// Thresholds are minimum-support filters; values <= 1 disable a filter.
type Thresholds struct {
	MinGroupAds      int
	MinItemAdsGlobal int
	MinPairAds       int
}

// Row is one group × item association.
type Row struct {
	Group       string
	Item        string
	NItems      int
	NGroupTotal int
	PctOfGroup  float64
	NGlobal     int
	PGlobal     float64
	Lift        float64
	LogLift     float64
}

type pairKey struct{ group, item string }

// Associate computes group totals, global item prevalence and per-pair metrics.
// Pair filtering runs last so it never changes group totals or global probabilities.
func Associate(in Input, th Thresholds) ([]Row, error) {
	members := make(map[Membership]struct{})
	for _, m := range in.Memberships {
		if m.Group != "" {
			members[m] = struct{}{}
		}
	}
	for _, p := range in.Pairs {
		if p.Group != "" {
			members[Membership{AdID: p.AdID, Group: p.Group}] = struct{}{}
		}
	}

	groupTotals := make(map[string]int)
	for m := range members {
		groupTotals[m.Group]++
	}
	if th.MinGroupAds > 1 {
		for g, n := range groupTotals {
			if n < th.MinGroupAds {
				delete(groupTotals, g)
			}
		}
	}
	if len(groupTotals) == 0 {
		return nil, fmt.Errorf("associate groups: %w", domain.ErrEmptyResult)
	}

	ads := make(map[string]struct{})
	for m := range members {
		if _, ok := groupTotals[m.Group]; ok {
			ads[m.AdID] = struct{}{}
		}
	}
	totalAds := float64(len(ads))

	triples := make(map[Triple]struct{})
	for _, p := range in.Pairs {
		if p.Item == "" {
			continue
		}
		if _, ok := groupTotals[p.Group]; ok {
			triples[p] = struct{}{}
		}
	}

	type adItem struct{ ad, item string }
	seen := make(map[adItem]struct{})
	global := make(map[string]int)
	for t := range triples {
		k := adItem{t.AdID, t.Item}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		global[t.Item]++
	}
	if th.MinItemAdsGlobal > 1 {
		for item, n := range global {
			if n < th.MinItemAdsGlobal {
				delete(global, item)
			}
		}
	}

	pairs := make(map[pairKey]int)
	for t := range triples {
		if _, ok := global[t.Item]; ok {
			pairs[pairKey{t.Group, t.Item}]++
		}
	}

	rows := make([]Row, 0, len(pairs))
	for k, n := range pairs {
		if th.MinPairAds > 1 && n < th.MinPairAds {
			continue
		}
		rows = append(rows, metrics(k, n, groupTotals[k.group], global[k.item], totalAds))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("associate pairs: %w", domain.ErrEmptyResult)
	}
	SortByPct(rows)
	return rows, nil
}

func metrics(k pairKey, n, nGroup, nGlobal int, totalAds float64) Row {
	conditional := float64(n) / math.Max(float64(nGroup), 1)
	pGlobal := float64(nGlobal) / math.Max(totalAds, eps)
	lift := Round4(conditional / math.Max(pGlobal, eps))
	logLift := 0.0
	if lift > 0 {
		logLift = Round4(math.Log(lift))
	}
	return Row{
		Group:       k.group,
		Item:        k.item,
		NItems:      n,
		NGroupTotal: nGroup,
		PctOfGroup:  Round4(conditional),
		NGlobal:     nGlobal,
		PGlobal:     pGlobal,
		Lift:        lift,
		LogLift:     logLift,
	}
}

// Round4 rounds to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// SortByPct orders by group asc, pct desc, count desc, item asc.
func SortByPct(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.PctOfGroup != b.PctOfGroup {
			return a.PctOfGroup > b.PctOfGroup
		}
		if a.NItems != b.NItems {
			return a.NItems > b.NItems
		}
		return a.Item < b.Item
	})
}

// SortByLift orders by group asc, lift desc, pct desc, count desc, item asc.
func SortByLift(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Lift != b.Lift {
			return a.Lift > b.Lift
		}
		if a.PctOfGroup != b.PctOfGroup {
			return a.PctOfGroup > b.PctOfGroup
		}
		if a.NItems != b.NItems {
			return a.NItems > b.NItems
		}
		return a.Item < b.Item
	})
}
