package dataset

import (
	"strconv"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

// AdsTable renders parsed ads with ParsedColumns.
func AdsTable(ads []domain.AdRecord) *table.Table {
	t := table.New(ParsedColumns...)
	for _, ad := range ads {
		t.AppendMap(map[string]string{
			ColSourceFile:   ad.Key.SourceFile,
			ColGroupIndex:   strconv.Itoa(ad.Key.GroupIndex),
			ColMessageIDs:   ad.Key.MessageIDs,
			ColDateTitle:    ad.Key.DateTitle,
			ColAdID:         ad.Key.ID().String(),
			ColFromName:     ad.FromName,
			ColJobTitle:     ad.RawJobTitle,
			ColCompany:      ad.Company,
			ColLocation:     ad.RawLocation,
			ColEducation:    ad.RawEducation,
			ColExperience:   ad.RawExperience,
			ColTextRaw:      ad.RawText,
			ColTextNorm:     ad.NormalizedText,
			ColJobTitleNorm: ad.JobTitleNorm,
		})
	}
	return t
}
