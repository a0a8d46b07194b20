// Package skills matches the skill catalog against ad text and derives the
// exclusive, fine and parent-rollup views from one raw match vector.
package skills

import (
	"fmt"
	"regexp"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/textnorm"
)

type compiledSkill struct {
	meta catalog.Skill
	re   *regexp.Regexp
}

// Extractor holds the compiled catalog and the parent/children index.
type Extractor struct {
	skills   []compiledSkill
	index    map[string]int
	parents  []string
	children map[string][]int
}

// Match is the raw per-skill vector, in catalog order.
type Match struct {
	ex  *Extractor
	hit []bool
}

// New compiles the catalog and indexes parents in first-appearance order.
func New(catalogSkills []catalog.Skill) (*Extractor, error) {
	e := &Extractor{
		index:    make(map[string]int, len(catalogSkills)),
		children: make(map[string][]int),
	}
	for i, s := range catalogSkills {
		re, err := catalog.Compile(s.Pattern, false)
		if err != nil {
			return nil, fmt.Errorf("compile skill %s: %w", s.Name, err)
		}
		if _, dup := e.index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate skill %s", s.Name)
		}
		e.skills = append(e.skills, compiledSkill{meta: s, re: re})
		e.index[s.Name] = i
	}
	for i, s := range catalogSkills {
		if s.Parent == "" {
			continue
		}
		if _, ok := e.index[s.Parent]; !ok {
			return nil, fmt.Errorf("skill %s: unknown parent %s", s.Name, s.Parent)
		}
		if _, seen := e.children[s.Parent]; !seen {
			e.parents = append(e.parents, s.Parent)
		}
		e.children[s.Parent] = append(e.children[s.Parent], i)
	}
	return e, nil
}

// Names lists skills in catalog order.
func (e *Extractor) Names() []string {
	out := make([]string, len(e.skills))
	for i, s := range e.skills {
		out[i] = s.meta.Name
	}
	return out
}

// Meta returns catalog metadata for a skill.
func (e *Extractor) Meta(name string) (catalog.Skill, bool) {
	i, ok := e.index[name]
	if !ok {
		return catalog.Skill{}, false
	}
	return e.skills[i].meta, true
}

// Match evaluates every pattern independently against the normalized text.
func (e *Extractor) Match(text string) Match {
	t := textnorm.Normalize(text)
	hit := make([]bool, len(e.skills))
	for i, s := range e.skills {
		hit[i] = s.re.MatchString(t)
	}
	return Match{ex: e, hit: hit}
}

// Extract returns the exclusive view.
func (e *Extractor) Extract(text string) []string {
	return e.Match(text).Exclusive()
}

// ExtractFine returns matched child skills that survive suppression.
func (e *Extractor) ExtractFine(text string) []string {
	return e.Match(text).Fine()
}

// ExtractParentsRollup returns the inclusive parent view.
func (e *Extractor) ExtractParentsRollup(text string) []string {
	return e.Match(text).Rollup()
}

// Tags computes all three views from a single match.
func (e *Extractor) Tags(text string) domain.SkillTags {
	m := e.Match(text)
	return domain.SkillTags{
		Exclusive: m.Exclusive(),
		Fine:      m.Fine(),
		Rollup:    m.Rollup(),
	}
}

// Has reports the raw match for a skill.
func (m Match) Has(name string) bool {
	i, ok := m.ex.index[name]
	return ok && m.hit[i]
}

// Raw lists every matched skill before suppression.
func (m Match) Raw() []string {
	var out []string
	for i, ok := range m.hit {
		if ok {
			out = append(out, m.ex.skills[i].meta.Name)
		}
	}
	return out
}

// Exclusive lists matched skills, dropping parents when any child matched.
func (m Match) Exclusive() []string {
	var out []string
	for i, ok := range m.hit {
		if ok && !m.anyChild(m.ex.skills[i].meta.Name) {
			out = append(out, m.ex.skills[i].meta.Name)
		}
	}
	return out
}

// Fine lists child skills present in the exclusive view.
func (m Match) Fine() []string {
	var out []string
	for i, ok := range m.hit {
		s := m.ex.skills[i].meta
		if ok && s.Parent != "" && !m.anyChild(s.Name) {
			out = append(out, s.Name)
		}
	}
	return out
}

// Rollup lists parents that matched themselves or through a child.
func (m Match) Rollup() []string {
	var out []string
	for _, p := range m.ex.parents {
		if m.hit[m.ex.index[p]] || m.anyChild(p) {
			out = append(out, p)
		}
	}
	return out
}

func (m Match) anyChild(parent string) bool {
	for _, c := range m.ex.children[parent] {
		if m.hit[c] {
			return true
		}
	}
	return false
}
