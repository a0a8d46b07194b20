package domain

// Place is a (province, city) pair from the gazetteer.
type Place struct {
	Province string
	City     string
}

// GeoTag is the location classification of one ad.
// District and Neighborhood are set only when City is Tehran.
type GeoTag struct {
	Province     string
	City         string
	District     *int
	Neighborhood string
	Mentions     []Place
	MentionsAny  []Place
}

// JobClassification is the single (family, role) assigned to an ad.
type JobClassification struct {
	Code   string
	Family string
	Role   string
}

// Experience holds parsed years of required experience.
type Experience struct {
	MinYears *int
	MaxYears *int
}

// SkillTags are the three views of the skills found in one ad.
type SkillTags struct {
	Exclusive []string
	Fine      []string
	Rollup    []string
}

// Skill groups.
const (
	GroupHard        = "hard"
	GroupSoft        = "soft"
	GroupTool        = "tool"
	GroupDomain      = "domain"
	GroupCertificate = "certificate"
)

// Tehran is the canonical city and province name for Tehran.
const Tehran = "تهران"

// Unknown is the label used in count tables for missing categories.
const Unknown = "نامشخص"
