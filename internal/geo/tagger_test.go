package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/domain"
)

func newTestTagger(t *testing.T) *Tagger {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	tagger, err := New(c.Geo)
	require.NoError(t, err)
	return tagger
}

func TestTagTehranDistrictSample(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	tag := tagger.Tag("شغل در تهران منطقه ۵", "")
	assert.Equal(t, "تهران", tag.Province)
	assert.Equal(t, "تهران", tag.City)
	require.NotNil(t, tag.District)
	assert.Equal(t, 5, *tag.District)
	assert.Equal(t, "تهران-منطقه-5", tag.Neighborhood)
}

func TestDetectPrimaryOrder(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	cases := []struct {
		text, province, city string
	}{
		{"دفتر مرکزی تهران و شعبه مشهد", "تهران", "تهران"},
		{"Karaj office", "البرز", "کرج"},
		{"کرمانشاه، خیابان مدرس", "کرمانشاه", "کرمانشاه"},
		{"شهر کرمان", "کرمان", "کرمان"},
		{"بندر عباس", "هرمزگان", "بندرعباس"},
		{"استان مازندران", "مازندران", ""},
		{"رقم حقوق توافقی", "", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		province, city := tagger.DetectPrimary(tc.text)
		assert.Equal(t, tc.province, province, "province for %q", tc.text)
		assert.Equal(t, tc.city, city, "city for %q", tc.text)
	}
}

func TestDetectAllMentions(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	got := tagger.DetectAllMentions("شعبه اصفهان، تهران و Isfahan و شیراز")
	assert.Equal(t, []domain.Place{
		{Province: "تهران", City: "تهران"},
		{Province: "اصفهان", City: "اصفهان"},
		{Province: "فارس", City: "شیراز"},
	}, got)
	assert.Empty(t, tagger.DetectAllMentions("دورکاری"))
}

func TestDetectTehranDistrictWords(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	cases := map[string]int{
		"تهران منطقه 22":          22,
		"تهران، ناحیه ۳":          3,
		"منطقه دوازده":            12,
		"منطقه دوازدهم":           12,
		"منطقه شماره دو":          2,
		"منطقه دوم شهرداری":       2,
		"منطقه يک":                1,
		"منطقه بیست و یک":         21,
		"منطقه بیست\u200cویک":        21,
		"منطقه بیستودو":           22,
		"ناحیه بیست":              20,
		"منطقه 30 یا منطقه پنجم":  5,
	}
	for text, want := range cases {
		got := tagger.DetectTehranDistrict(text)
		if assert.NotNil(t, got, "district for %q", text) {
			assert.Equal(t, want, *got, "district for %q", text)
		}
	}

	assert.Nil(t, tagger.DetectTehranDistrict("منطقه نهایی"))
	assert.Nil(t, tagger.DetectTehranDistrict("منطقه 45"))
	assert.Nil(t, tagger.DetectTehranDistrict("تهران"))
}

func TestDetectTehranDistrictRejectsLongNumbers(t *testing.T) {
	t.Parallel()

	tagger := newTestTagger(t)
	assert.Nil(t, tagger.DetectTehranDistrict("تهران منطقه 123"))

	got := tagger.DetectTehranDistrict("تهران منطقه 12، خیابان ولیعصر")
	if assert.NotNil(t, got) {
		assert.Equal(t, 12, *got)
	}

	tag := tagger.Tag("تهران منطقه 123", "")
	assert.Nil(t, tag.District)
	assert.NotEqual(t, "تهران-منطقه-12", tag.Neighborhood)
}

func TestDetectTehranNeighborhood(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	assert.Equal(t, "ونک", tagger.DetectTehranNeighborhood("تهران، میدان ونک"))
	assert.Equal(t, "تهران-شمال", tagger.DetectTehranNeighborhood("شمال تهران"))
	assert.Equal(t, "تهران-منطقه-7", tagger.DetectTehranNeighborhood("تهران منطقه هفت"))
	assert.Equal(t, "", tagger.DetectTehranNeighborhood("تهران"))
}

func TestReyRequiresWordBoundary(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	assert.Equal(t, "شهرری", tagger.DetectTehranNeighborhood("تهران، شهرری"))
	assert.Equal(t, "شهرری", tagger.DetectTehranNeighborhood("تهران (شهر ری)"))
	assert.NotEqual(t, "شهرری", tagger.DetectTehranNeighborhood("سپرده گذاری شهرستان تهران"))
}

func TestStrictNeighborhoodInsideWord(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	assert.Equal(t, "", tagger.DetectTehranNeighborhood("تهران عناوین شغلی"))
	assert.Equal(t, "اوین", tagger.DetectTehranNeighborhood("تهران اوین"))
}

func TestTagNonTehranHasNoDistrict(t *testing.T) {
	t.Parallel()
	tagger := newTestTagger(t)

	tag := tagger.Tag("اصفهان منطقه 3", "همکاری در تهران")
	assert.Equal(t, "اصفهان", tag.City)
	assert.Nil(t, tag.District)
	assert.Empty(t, tag.Neighborhood)
	assert.Equal(t, []domain.Place{{Province: "اصفهان", City: "اصفهان"}}, tag.Mentions)
	assert.Equal(t, []domain.Place{
		{Province: "تهران", City: "تهران"},
		{Province: "اصفهان", City: "اصفهان"},
	}, tag.MentionsAny)
}

func TestNewRejectsConflictingDistrictWords(t *testing.T) {
	t.Parallel()

	_, err := New(catalog.Geo{Tehran: catalog.Tehran{DistrictWords: []catalog.DistrictWord{
		{Word: "یک", N: 1},
		{Word: "يک", N: 2},
	}}})
	require.Error(t, err)
}
