package dataset

// Columns of the parsed ads table.
const (
	ColSourceFile   = "source_file"
	ColGroupIndex   = "group_index"
	ColMessageIDs   = "message_ids"
	ColDateTitle    = "date_title"
	ColAdID         = "ad_id"
	ColFromName     = "from_name"
	ColJobTitle     = "job_title"
	ColJobTitleNorm = "job_title_norm"
	ColCompany      = "company"
	ColLocation     = "location"
	ColEducation    = "education"
	ColExperience   = "experience"
	ColTextRaw      = "text_raw"
	ColTextNorm     = "text_norm"
)

// Columns added by the tagging stages.
const (
	ColJobTitleClean = "job_title_clean"
	ColJobCode       = "job_code"
	ColJobFamilyFa   = "خانواده_شغلی"
	ColJobRoleFa     = "عنوان_شغل_استاندارد"

	ColExpMinYears     = "exp_min_years"
	ColExpMaxYears     = "exp_max_years"
	ColSkills          = "skills_extracted"
	ColSkillsFine      = "skills_extracted_fine"
	ColSkillsParents   = "skills_extracted_parents"
	ColLocSourceNorm   = "loc_source_norm"
	ColProvince        = "province"
	ColCity            = "city"
	ColTehranDistrict  = "tehran_district"
	ColTehranNeighbor  = "tehran_neighborhood"
	ColCityMentions    = "city_mentions"
	ColProvMentions    = "province_mentions"
	ColCityMentionsAny = "city_mentions_any"
	ColProvMentionsAny = "province_mentions_any"

	ColJobFamily = "job_family_fa"
	ColJobRole   = "job_role_fa"
	ColAdKey     = "_ad_key"
)

// KeyColumns identify an ad across stage outputs.
var KeyColumns = []string{ColSourceFile, ColMessageIDs, ColGroupIndex, ColDateTitle}

// ParsedColumns is the header of the parse stage output.
var ParsedColumns = []string{
	ColSourceFile, ColGroupIndex, ColMessageIDs, ColDateTitle, ColAdID, ColFromName,
	ColJobTitle, ColCompany, ColLocation, ColEducation, ColExperience,
	ColTextRaw, ColTextNorm, ColJobTitleNorm,
}

// RoleColumns are accepted names for the standardized role, in preference order.
var RoleColumns = []string{ColJobRoleFa, ColJobRole, "job_role", "job_title_std", "role_std"}

// FamilyColumns are accepted names for the job family.
var FamilyColumns = []string{ColJobFamilyFa, ColJobFamily}

// SkillColumns are accepted skill list columns, in preference order.
var SkillColumns = []string{ColSkillsFine, ColSkills, ColSkillsParents}

// ListSep separates values inside list cells.
const ListSep = "|"
