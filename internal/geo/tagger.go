// Package geo detects provinces, cities and Tehran districts/neighborhoods in ad text.
package geo

import (
	"fmt"
	"regexp"
	"strconv"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/textnorm"
)

var districtNumber = regexp.MustCompile(`(?:منطقه|ناحیه)\s*([0-9]{1,2})(?:$|[^0-9])`)

type placeRule struct {
	re    *regexp.Regexp
	place domain.Place
}

type labelRule struct {
	re    *regexp.Regexp
	label string
}

// Tagger applies the gazetteer. It is immutable after New and safe for concurrent use.
type Tagger struct {
	cities        []placeRule
	provinces     []labelRule
	zones         []labelRule
	neighborhoods []labelRule
	districts     *districtWords
}

// New compiles the gazetteer.
func New(g catalog.Geo) (*Tagger, error) {
	t := &Tagger{}

	for _, c := range g.Cities {
		re, err := catalog.Compile(c.Pattern, c.Strict)
		if err != nil {
			return nil, fmt.Errorf("compile city %s: %w", c.City, err)
		}
		t.cities = append(t.cities, placeRule{re: re, place: domain.Place{Province: c.Province, City: c.City}})
	}

	for _, p := range g.Provinces {
		re, err := catalog.Compile(regexp.QuoteMeta(textnorm.Normalize(p)), true)
		if err != nil {
			return nil, fmt.Errorf("compile province %s: %w", p, err)
		}
		t.provinces = append(t.provinces, labelRule{re: re, label: p})
	}

	for _, z := range g.Tehran.Zones {
		re, err := catalog.Compile(z.Pattern, false)
		if err != nil {
			return nil, fmt.Errorf("compile zone %s: %w", z.Label, err)
		}
		t.zones = append(t.zones, labelRule{re: re, label: z.Label})
	}

	for _, n := range g.Tehran.Neighborhoods {
		re, err := catalog.Compile(n.Pattern, n.Strict)
		if err != nil {
			return nil, fmt.Errorf("compile neighborhood %s: %w", n.Name, err)
		}
		t.neighborhoods = append(t.neighborhoods, labelRule{re: re, label: n.Name})
	}

	dw, err := newDistrictWords(g.Tehran.DistrictWords)
	if err != nil {
		return nil, err
	}
	t.districts = dw

	return t, nil
}

// Tag resolves the primary location and mentions from the location field, and
// the recall-oriented mentions from location plus the raw ad text.
func (t *Tagger) Tag(location, rawText string) domain.GeoTag {
	loc := textnorm.NormalizeLocation(location)
	anyText := textnorm.NormalizeLocation(location + " " + rawText)

	var tag domain.GeoTag
	tag.Province, tag.City = t.primary(loc)
	tag.Mentions = t.mentions(loc)
	tag.MentionsAny = t.mentions(anyText)

	if tag.City == domain.Tehran {
		tag.District = t.district(loc)
		tag.Neighborhood = t.neighborhood(loc)
	}
	return tag
}

// DetectPrimary returns the first gazetteer match, falling back to a bare province name.
func (t *Tagger) DetectPrimary(text string) (province, city string) {
	return t.primary(textnorm.NormalizeLocation(text))
}

// DetectAllMentions returns every matching (province, city), de-duplicated in first-seen order.
func (t *Tagger) DetectAllMentions(text string) []domain.Place {
	return t.mentions(textnorm.NormalizeLocation(text))
}

// DetectTehranDistrict returns the district number 1..22, or nil.
func (t *Tagger) DetectTehranDistrict(text string) *int {
	return t.district(textnorm.NormalizeLocation(text))
}

// DetectTehranNeighborhood returns a named neighborhood, a compass zone,
// a label synthesized from the district, or "".
func (t *Tagger) DetectTehranNeighborhood(text string) string {
	return t.neighborhood(textnorm.NormalizeLocation(text))
}

func (t *Tagger) primary(text string) (string, string) {
	for _, r := range t.cities {
		if r.re.MatchString(text) {
			return r.place.Province, r.place.City
		}
	}
	for _, p := range t.provinces {
		if p.re.MatchString(text) {
			return p.label, ""
		}
	}
	return "", ""
}

func (t *Tagger) mentions(text string) []domain.Place {
	var out []domain.Place
	seen := map[domain.Place]struct{}{}
	for _, r := range t.cities {
		if !r.re.MatchString(text) {
			continue
		}
		if _, ok := seen[r.place]; ok {
			continue
		}
		seen[r.place] = struct{}{}
		out = append(out, r.place)
	}
	return out
}

func (t *Tagger) district(text string) *int {
	if m := districtNumber.FindStringSubmatch(text); m != nil {
		if d, err := strconv.Atoi(m[1]); err == nil && d >= 1 && d <= 22 {
			return &d
		}
	}
	if d, ok := t.districts.find(text); ok {
		return &d
	}
	return nil
}

func (t *Tagger) neighborhood(text string) string {
	for _, n := range t.neighborhoods {
		if n.re.MatchString(text) {
			return n.label
		}
	}
	for _, z := range t.zones {
		if z.re.MatchString(text) {
			return z.label
		}
	}
	if d := t.district(text); d != nil {
		return DistrictLabel(*d)
	}
	return ""
}

// DistrictLabel is the synthesized neighborhood label for a district number.
func DistrictLabel(d int) string {
	return "تهران-منطقه-" + strconv.Itoa(d)
}
