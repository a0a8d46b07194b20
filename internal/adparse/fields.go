// Package adparse extracts structured fields from the free text of a job post.
package adparse

import (
	"regexp"
	"strings"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/textnorm"
)

var (
	titleQuote = regexp.MustCompile(`[«"]\s*([^»"]+?)\s*[»"]`)
	titleDash  = regexp.MustCompile(`[-_–—]+`)
)

// Field label lists, most specific first.
var (
	CompanyKeys    = []string{"نام شرکت", "شرکت", "نام‌شرکت", "فعالیت"}
	LocationKeys   = []string{"شهرستان و محدوده مکانی", "شهرستان", "شهر", "محل فعالیت"}
	EducationKeys  = []string{"مدرک تحصیلی", "تحصیلات"}
	ExperienceKeys = []string{"سابقه فعالیت", "سابقه کار", "سابقه کاری", "سابقه"}
)

// keyField matches "label[:] value" and captures the rest of the line.
type keyField struct {
	res []*regexp.Regexp
}

func newKeyField(keys []string) keyField {
	f := keyField{res: make([]*regexp.Regexp, len(keys))}
	for i, k := range keys {
		f.res[i] = regexp.MustCompile(regexp.QuoteMeta(k) + `\s*[:：]?\s*(.+)`)
	}
	return f
}

// find returns the first line of the value after the first key present.
func (f keyField) find(text string) string {
	for _, re := range f.res {
		if m := re.FindStringSubmatch(text); m != nil {
			v := strings.TrimSpace(m[1])
			if i := strings.IndexByte(v, '\n'); i >= 0 {
				v = v[:i]
			}
			return strings.TrimSpace(v)
		}
	}
	return ""
}

var (
	companyField    = newKeyField(CompanyKeys)
	locationField   = newKeyField(LocationKeys)
	educationField  = newKeyField(EducationKeys)
	experienceField = newKeyField(ExperienceKeys)
)

// Parse turns a message group into an ad record.
func Parse(g domain.MessageGroup) domain.AdRecord {
	raw := g.Text
	ad := domain.AdRecord{
		Key: domain.AdKey{
			SourceFile: g.SourceFile,
			MessageIDs: strings.Join(g.MessageIDs, ","),
			GroupIndex: g.GroupIndex,
			DateTitle:  g.DateTitle,
		},
		FromName:       g.FromName,
		RawText:        raw,
		NormalizedText: textnorm.Normalize(raw),
		Company:        companyField.find(raw),
		RawLocation:    locationField.find(raw),
		RawEducation:   educationField.find(raw),
		RawExperience:  experienceField.find(raw),
	}
	if m := titleQuote.FindStringSubmatch(raw); m != nil {
		ad.RawJobTitle = strings.TrimSpace(m[1])
	}
	ad.JobTitleNorm = NormalizeTitle(ad.RawJobTitle)
	return ad
}

// NormalizeTitle normalizes a title and replaces dash and underscore runs with a space.
func NormalizeTitle(title string) string {
	return textnorm.CollapseSpaces(titleDash.ReplaceAllString(textnorm.Normalize(title), " "))
}

type dedupeKey struct {
	messageIDs, dateTitle, title, company string
}

// Dedupe drops repeated posts with the same ids, date, title and company, keeping the first.
func Dedupe(ads []domain.AdRecord) []domain.AdRecord {
	seen := make(map[dedupeKey]struct{}, len(ads))
	out := make([]domain.AdRecord, 0, len(ads))
	for _, ad := range ads {
		k := dedupeKey{ad.Key.MessageIDs, ad.Key.DateTitle, ad.RawJobTitle, ad.Company}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, ad)
	}
	return out
}
