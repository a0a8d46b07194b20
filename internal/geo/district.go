package geo

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/textnorm"
)

// districtWords resolves spelled-out district numbers such as "منطقه دوازده"
// or "ناحیه بیست و یک".
type districtWords struct {
	re     *regexp.Regexp
	values map[string]int
}

func newDistrictWords(words []catalog.DistrictWord) (*districtWords, error) {
	dw := &districtWords{values: map[string]int{}}

	forms := map[string]struct{}{}
	for _, w := range words {
		norm := textnorm.Normalize(w.Word)
		if norm == "" {
			continue
		}
		key := compact(norm)
		if prev, ok := dw.values[key]; ok && prev != w.N {
			return nil, fmt.Errorf("district word %q maps to both %d and %d", w.Word, prev, w.N)
		}
		dw.values[key] = w.N
		forms[norm] = struct{}{}
	}
	if len(forms) == 0 {
		return dw, nil
	}

	ordered := make([]string, 0, len(forms))
	for f := range forms {
		ordered = append(ordered, f)
	}
	// longest first so "دوازدهم" wins over "دوازده" and "دو"
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(compact(ordered[i])), utf8.RuneCountInString(compact(ordered[j]))
		if li != lj {
			return li > lj
		}
		return ordered[i] < ordered[j]
	})

	alts := make([]string, len(ordered))
	for i, f := range ordered {
		tokens := strings.Fields(f)
		for k := range tokens {
			tokens[k] = regexp.QuoteMeta(tokens[k])
		}
		alts[i] = strings.Join(tokens, `\s*`)
	}

	pattern := `(?:منطقه|ناحیه)\s*(?:شماره\s*)?(` + strings.Join(alts, "|") + `)(?:$|[^\p{L}\p{M}])`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile district words: %w", err)
	}
	dw.re = re
	return dw, nil
}

func (d *districtWords) find(text string) (int, bool) {
	if d == nil || d.re == nil {
		return 0, false
	}
	m := d.re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, ok := d.values[compact(m[1])]
	if !ok || n < 1 || n > 22 {
		return 0, false
	}
	return n, true
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
