package adparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"JobAdsMiner/internal/domain"
)

func TestParseFields(t *testing.T) {
	t.Parallel()

	g := domain.MessageGroup{
		SourceFile: "messages.html",
		GroupIndex: 3,
		MessageIDs: []string{"message10", "message11"},
		DateTitle:  "12.05.2024 10:15:00",
		FromName:   "کانال",
		Text: "استخدام « کارشناس_حسابداری - ارشد »\n" +
			"نام شرکت: آلفا\n" +
			"شهرستان و محدوده مکانی : تهران، ونک\n" +
			"مدرک تحصیلی：کارشناسی\n" +
			"سابقه کار ۲ تا ۳ سال\n" +
			"فعالیت در حوزه بورس",
	}
	ad := Parse(g)

	assert.Equal(t, domain.AdKey{
		SourceFile: "messages.html",
		MessageIDs: "message10,message11",
		GroupIndex: 3,
		DateTitle:  "12.05.2024 10:15:00",
	}, ad.Key)
	assert.Equal(t, "کارشناس_حسابداری - ارشد", ad.RawJobTitle)
	assert.Equal(t, "کارشناس حسابداری ارشد", ad.JobTitleNorm)
	assert.Equal(t, "آلفا", ad.Company)
	assert.Equal(t, "تهران، ونک", ad.RawLocation)
	assert.Equal(t, "کارشناسی", ad.RawEducation)
	assert.Equal(t, "۲ تا ۳ سال", ad.RawExperience)
	assert.Contains(t, ad.NormalizedText, "سابقه کار 2 تا 3 سال")
}

func TestParseMissingFields(t *testing.T) {
	t.Parallel()

	ad := Parse(domain.MessageGroup{SourceFile: "messages.html", Text: "متن بدون فیلد"})
	assert.Empty(t, ad.RawJobTitle)
	assert.Empty(t, ad.JobTitleNorm)
	assert.Empty(t, ad.Company)
	assert.Empty(t, ad.RawLocation)
	assert.Empty(t, ad.Key.MessageIDs)
}

func TestParseFieldOnNextLine(t *testing.T) {
	t.Parallel()

	ad := Parse(domain.MessageGroup{Text: "شهر:\nاصفهان\nشرح"})
	assert.Equal(t, "اصفهان", ad.RawLocation)
}

func TestDedupeKeepsFirst(t *testing.T) {
	t.Parallel()

	a := domain.AdRecord{Key: domain.AdKey{SourceFile: "a.html", MessageIDs: "1", DateTitle: "d"}, RawJobTitle: "t", Company: "c"}
	b := a
	b.Key.SourceFile = "b.html"
	c := a
	c.Company = "other"

	got := Dedupe([]domain.AdRecord{a, b, c})
	assert.Equal(t, []domain.AdRecord{a, c}, got)
}
