// Package jobtitle cleans extracted job titles and maps ads to a standardized role.
package jobtitle

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/textnorm"
)

var (
	quotedTitle = regexp.MustCompile(`[«"]([^«»"]{2,80})[»"]`)
	titleHint   = regexp.MustCompile(`(کارشناس|مدیر|مسئول|کارمند|تحلیل(?:گر)?|حسابدار|معامله(?:\s*گر|گر)|سرپرست|کارآموز|مشاور)`)
)

// placeholders are title fragments left by list markers in the source posts.
var placeholders = map[string]struct{}{"الف": {}, "ا": {}, "ب": {}}

type rule struct {
	re             *regexp.Regexp
	classification domain.JobClassification
}

// Classifier assigns exactly one classification per ad, first match wins.
type Classifier struct {
	rules    []rule
	sentinel domain.JobClassification
}

// New compiles the ordered job taxonomy.
func New(jobs catalog.Jobs) (*Classifier, error) {
	c := &Classifier{
		sentinel: domain.JobClassification{
			Code:   jobs.Sentinel.Code,
			Family: jobs.Sentinel.Family,
			Role:   jobs.Sentinel.Role,
		},
	}
	for _, r := range jobs.Rules {
		re, err := catalog.Compile(r.Pattern, false)
		if err != nil {
			return nil, fmt.Errorf("compile job rule %s: %w", r.Code, err)
		}
		c.rules = append(c.rules, rule{
			re:             re,
			classification: domain.JobClassification{Code: r.Code, Family: r.Family, Role: r.Role},
		})
	}
	return c, nil
}

// Sentinel is the classification used when no rule matches.
func (c *Classifier) Sentinel() domain.JobClassification {
	return c.sentinel
}

// CleanTitle normalizes a raw title, replacing too-short or placeholder titles
// with a quoted title found in the ad text when one exists.
func (c *Classifier) CleanTitle(rawTitle, rawText string) string {
	title := textnorm.Normalize(rawTitle)
	if !needsRecovery(title) {
		return title
	}
	if quoted := QuotedTitle(rawText); quoted != "" {
		return quoted
	}
	return title
}

// Classify returns the first matching rule for the normalized text, or the sentinel.
func (c *Classifier) Classify(text string) domain.JobClassification {
	t := textnorm.Normalize(text)
	for _, r := range c.rules {
		if r.re.MatchString(t) {
			return r.classification
		}
	}
	return c.sentinel
}

// ClassifyAd cleans the title and classifies title plus raw text.
func (c *Classifier) ClassifyAd(rawTitle, rawText string) (string, domain.JobClassification) {
	clean := c.CleanTitle(rawTitle, rawText)
	return clean, c.Classify(clean + " " + rawText)
}

// QuotedTitle extracts a quoted candidate from text, preferring one that contains
// a job-title hint word.
func QuotedTitle(rawText string) string {
	t := textnorm.Normalize(rawText)
	matches := quotedTitle.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return ""
	}
	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, textnorm.Normalize(m[1]))
	}
	for _, c := range candidates {
		if titleHint.MatchString(c) {
			return c
		}
	}
	return candidates[0]
}

func needsRecovery(title string) bool {
	if utf8.RuneCountInString(title) < 3 {
		return true
	}
	_, ok := placeholders[title]
	return ok
}
