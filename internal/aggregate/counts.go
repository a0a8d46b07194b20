package aggregate

import (
	"fmt"
	"sort"

	"JobAdsMiner/internal/table"
)

// Count is one value with its frequency.
type Count struct {
	Value string
	N     int
}

// CountValues counts occurrences, ordered by count desc then value asc.
func CountValues(values []string) []Count {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	return sortCounts(counts)
}

// CountDistinct counts distinct ads per group.
func CountDistinct(members []Membership) []Count {
	seen := make(map[Membership]struct{}, len(members))
	counts := make(map[string]int)
	for _, m := range members {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		counts[m.Group]++
	}
	return sortCounts(counts)
}

func sortCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// GroupShares counts distinct ads per (group, item) and their share of the
// group's distinct ads, taken from members plus the pairs themselves.
// Rows are ordered by group asc, count desc, item asc.
func GroupShares(pairs []Triple, members []Membership) []Row {
	totals := make(map[string]map[string]struct{})
	add := func(group, ad string) {
		if totals[group] == nil {
			totals[group] = make(map[string]struct{})
		}
		totals[group][ad] = struct{}{}
	}
	for _, m := range members {
		add(m.Group, m.AdID)
	}
	triples := make(map[Triple]struct{})
	for _, p := range pairs {
		add(p.Group, p.AdID)
		triples[p] = struct{}{}
	}
	counts := make(map[pairKey]int)
	for t := range triples {
		counts[pairKey{t.Group, t.Item}]++
	}
	rows := make([]Row, 0, len(counts))
	for k, n := range counts {
		total := len(totals[k.group])
		rows = append(rows, Row{
			Group:       k.group,
			Item:        k.item,
			NItems:      n,
			NGroupTotal: total,
			PctOfGroup:  Round4(float64(n) / float64(max(total, 1))),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.NItems != b.NItems {
			return a.NItems > b.NItems
		}
		return a.Item < b.Item
	})
	return rows
}

// Metric is one per-rank column family of a wide table, e.g. pct_1, pct_2.
type Metric struct {
	Prefix string
	Value  func(Row) string
}

// Wide describes the layout of a TopNWide table.
type Wide struct {
	GroupColumn string
	TotalColumn string
	ItemPrefix  string
	Metrics     []Metric
}

// Common metric columns.
var (
	PctMetric  = Metric{Prefix: "pct", Value: func(r Row) string { return table.Float(r.PctOfGroup) }}
	LiftMetric = Metric{Prefix: "lift", Value: func(r Row) string { return table.Float(r.Lift) }}
	NMetric    = Metric{Prefix: "n", Value: func(r Row) string { return table.Itoa(r.NItems) }}
)

// TopNWide keeps the first n rows of every group, in their existing order, and
// lays them out one group per line. Groups are ordered by total desc, then name.
func TopNWide(rows []Row, n int, layout Wide) *table.Table {
	type group struct {
		name  string
		total int
		rows  []Row
	}
	var groups []*group
	byName := make(map[string]*group)
	width := 0
	for _, r := range rows {
		g, ok := byName[r.Group]
		if !ok {
			g = &group{name: r.Group, total: r.NGroupTotal}
			byName[r.Group] = g
			groups = append(groups, g)
		}
		if len(g.rows) < n {
			g.rows = append(g.rows, r)
			width = max(width, len(g.rows))
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].total != groups[j].total {
			return groups[i].total > groups[j].total
		}
		return groups[i].name < groups[j].name
	})

	columns := []string{layout.GroupColumn, layout.TotalColumn}
	for i := 1; i <= width; i++ {
		columns = append(columns, fmt.Sprintf("%s_%d", layout.ItemPrefix, i))
		for _, m := range layout.Metrics {
			columns = append(columns, fmt.Sprintf("%s_%d", m.Prefix, i))
		}
	}
	out := table.New(columns...)
	for _, g := range groups {
		values := []string{g.name, table.Itoa(g.total)}
		for _, r := range g.rows {
			values = append(values, r.Item)
			for _, m := range layout.Metrics {
				values = append(values, m.Value(r))
			}
		}
		out.MustAppend(values...)
	}
	return out
}
