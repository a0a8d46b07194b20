// Package dataset holds the column contracts shared by the stages and joins
// per-stage tag tables back onto the parsed ads by their composite key.
package dataset

import (
	"fmt"
	"strings"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

// AdKey renders the composite key of one row.
func AdKey(t *table.Table, row int) string {
	parts := make([]string, len(KeyColumns))
	for i, c := range KeyColumns {
		parts[i] = t.Value(row, c)
	}
	return domain.JoinKey(parts...)
}

// AdIDs returns a stable per-row ad identifier: the ad_id column when present,
// else the composite key, else the row number.
func AdIDs(t *table.Table) []string {
	out := make([]string, t.Len())
	for i := range out {
		switch {
		case t.Has(ColAdID) && t.Value(i, ColAdID) != "":
			out[i] = t.Value(i, ColAdID)
		case t.Require(KeyColumns...) == nil:
			out[i] = AdKey(t, i)
		default:
			out[i] = fmt.Sprintf("row-%d", i)
		}
	}
	return out
}

// Join left-joins tag tables onto base by ad key. Each tag table is
// de-duplicated keep-first and contributes only columns not yet present.
// Base rows keep their order and count.
func Join(base *table.Table, tags ...*table.Table) (*table.Table, error) {
	if err := base.Require(KeyColumns...); err != nil {
		return nil, fmt.Errorf("join base: %w", err)
	}
	out := table.FromRecords(base.Records())
	keys := make([]string, out.Len())
	for i := range keys {
		keys[i] = AdKey(out, i)
	}
	if err := out.SetColumn(ColAdKey, keys); err != nil {
		return nil, fmt.Errorf("join base: %w", err)
	}

	for n, tag := range tags {
		if err := tag.Require(KeyColumns...); err != nil {
			return nil, fmt.Errorf("join table %d: %w", n+1, err)
		}
		first := make(map[string]int, tag.Len())
		for i := 0; i < tag.Len(); i++ {
			k := AdKey(tag, i)
			if _, seen := first[k]; !seen {
				first[k] = i
			}
		}
		for _, c := range tag.Columns() {
			if out.Has(c) || c == ColAdKey {
				continue
			}
			values := make([]string, out.Len())
			for i, k := range keys {
				if row, ok := first[k]; ok {
					values[i] = tag.Value(row, c)
				}
			}
			if err := out.SetColumn(c, values); err != nil {
				return nil, fmt.Errorf("join column %q: %w", c, err)
			}
		}
	}
	return out, nil
}

// RenameRoleColumns maps the Persian family and role columns to their ASCII
// names when the ASCII name is not already taken.
func RenameRoleColumns(t *table.Table) {
	t.Rename(ColJobFamilyFa, ColJobFamily)
	t.Rename(ColJobRoleFa, ColJobRole)
}

// SplitList parses a list cell, dropping empty entries.
func SplitList(cell string) []string {
	var out []string
	for _, v := range strings.Split(cell, ListSep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// JoinList renders a list cell.
func JoinList(values []string) string {
	return strings.Join(values, ListSep)
}
