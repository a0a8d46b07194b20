// Package catalog loads the job taxonomy, skill catalog and location gazetteer.
//
// Catalogs are YAML documents embedded in the binary; a directory with files of the
// same names can replace them at startup. A loaded Catalog is read-only.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	jobsFile   = "jobs.yaml"
	skillsFile = "skills.yaml"
	geoFile    = "geo.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// JobRule maps a pattern to a standardized (family, role).
type JobRule struct {
	Code    string `yaml:"code"`
	Family  string `yaml:"family_fa"`
	Role    string `yaml:"role_fa"`
	Pattern string `yaml:"pattern"`
}

// Jobs is the ordered job taxonomy.
type Jobs struct {
	Sentinel JobRule   `yaml:"sentinel"`
	Rules    []JobRule `yaml:"rules"`
}

// Skill is one skill pattern with its metadata.
type Skill struct {
	Name     string `yaml:"skill"`
	Group    string `yaml:"group"`
	Category string `yaml:"category"`
	Parent   string `yaml:"parent"`
	Pattern  string `yaml:"pattern"`
}

// City is one gazetteer entry.
type City struct {
	City     string  `yaml:"city"`
	Province string  `yaml:"province"`
	Pattern  string  `yaml:"pattern"`
	Strict   bool    `yaml:"strict"`
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
}

// DistrictWord maps a spelled-out number to a Tehran district.
type DistrictWord struct {
	Word string `yaml:"word"`
	N    int    `yaml:"n"`
}

// Zone is a compass-direction area of Tehran.
type Zone struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

// Neighborhood is a named Tehran neighborhood.
type Neighborhood struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Strict  bool   `yaml:"strict"`
}

// Bounds is the map extent used for city markers.
type Bounds struct {
	MinLon float64 `yaml:"minLon"`
	MaxLon float64 `yaml:"maxLon"`
	MinLat float64 `yaml:"minLat"`
	MaxLat float64 `yaml:"maxLat"`
}

// Tehran holds district and neighborhood resolution data.
type Tehran struct {
	DistrictWords []DistrictWord `yaml:"districtWords"`
	Zones         []Zone         `yaml:"zones"`
	Neighborhoods []Neighborhood `yaml:"neighborhoods"`
}

// Geo is the location gazetteer.
type Geo struct {
	Bounds    Bounds   `yaml:"bounds"`
	Provinces []string `yaml:"provinces"`
	Cities    []City   `yaml:"cities"`
	Tehran    Tehran   `yaml:"tehran"`
}

// Catalog bundles every static rule table.
type Catalog struct {
	Jobs   Jobs
	Skills []Skill
	Geo    Geo
}

// Load reads catalogs from dir, or the embedded copies when dir is empty.
// Files missing from dir fall back to the embedded version.
func Load(dir string) (*Catalog, error) {
	base, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded catalogs: %w", err)
	}
	if dir == "" {
		return LoadFS(base)
	}
	return LoadFS(overlayFS{primary: os.DirFS(dir), fallback: base})
}

// Default returns the embedded catalogs.
func Default() (*Catalog, error) {
	return Load("")
}

// LoadFS parses and validates the three catalog documents from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var (
		c      Catalog
		skills struct {
			Skills []Skill `yaml:"skills"`
		}
	)

	if err := decode(fsys, jobsFile, &c.Jobs); err != nil {
		return nil, err
	}
	if err := decode(fsys, skillsFile, &skills); err != nil {
		return nil, err
	}
	if err := decode(fsys, geoFile, &c.Geo); err != nil {
		return nil, err
	}
	c.Skills = skills.Skills

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks references and compiles every pattern once.
func (c *Catalog) Validate() error {
	if len(c.Jobs.Rules) == 0 {
		return errors.New("job catalog: no rules")
	}
	if c.Jobs.Sentinel.Code == "" {
		return errors.New("job catalog: sentinel code is empty")
	}
	codes := map[string]struct{}{}
	for _, r := range c.Jobs.Rules {
		if _, dup := codes[r.Code]; dup {
			return fmt.Errorf("job catalog: duplicate code %s", r.Code)
		}
		codes[r.Code] = struct{}{}
		if _, err := Compile(r.Pattern, false); err != nil {
			return fmt.Errorf("job catalog: rule %s: %w", r.Code, err)
		}
	}

	names := map[string]struct{}{}
	for _, s := range c.Skills {
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("skill catalog: duplicate skill %s", s.Name)
		}
		names[s.Name] = struct{}{}
		if !validGroup(s.Group) {
			return fmt.Errorf("skill catalog: skill %s has unknown group %q", s.Name, s.Group)
		}
		if _, err := Compile(s.Pattern, false); err != nil {
			return fmt.Errorf("skill catalog: skill %s: %w", s.Name, err)
		}
	}
	for _, s := range c.Skills {
		if s.Parent == "" {
			continue
		}
		if _, ok := names[s.Parent]; !ok {
			return fmt.Errorf("skill catalog: skill %s references unknown parent %s", s.Name, s.Parent)
		}
	}

	provinces := map[string]struct{}{}
	for _, p := range c.Geo.Provinces {
		provinces[p] = struct{}{}
	}
	for _, city := range c.Geo.Cities {
		if _, ok := provinces[city.Province]; !ok {
			return fmt.Errorf("gazetteer: city %s references unknown province %s", city.City, city.Province)
		}
		if _, err := Compile(city.Pattern, city.Strict); err != nil {
			return fmt.Errorf("gazetteer: city %s: %w", city.City, err)
		}
	}
	for _, w := range c.Geo.Tehran.DistrictWords {
		if w.N < 1 || w.N > 22 {
			return fmt.Errorf("gazetteer: district word %s maps to %d", w.Word, w.N)
		}
	}
	for _, z := range c.Geo.Tehran.Zones {
		if _, err := Compile(z.Pattern, false); err != nil {
			return fmt.Errorf("gazetteer: zone %s: %w", z.Label, err)
		}
	}
	for _, n := range c.Geo.Tehran.Neighborhoods {
		if _, err := Compile(n.Pattern, n.Strict); err != nil {
			return fmt.Errorf("gazetteer: neighborhood %s: %w", n.Name, err)
		}
	}
	return nil
}

// Compile builds a case-insensitive matcher. Strict patterns must be bounded by
// non-letters (or the text edges) on both sides.
func Compile(pattern string, strict bool) (*regexp.Regexp, error) {
	if strict {
		pattern = `(?:^|[^\p{L}\p{M}\p{N}_])(?:` + pattern + `)(?:$|[^\p{L}\p{M}\p{N}_])`
	}
	return regexp.Compile("(?i)" + pattern)
}

func validGroup(g string) bool {
	switch g {
	case "hard", "soft", "tool", "domain", "certificate":
		return true
	}
	return false
}

func decode(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return nil
}

type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return o.fallback.Open(name)
	}
	return nil, err
}
