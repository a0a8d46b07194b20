package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobAdsMiner/internal/catalog"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	e, err := New(c.Skills)
	require.NoError(t, err)
	return e
}

func TestExtractSuppressesParent(t *testing.T) {
	t.Parallel()
	e := newTestExtractor(t)

	m := e.Match("پایتون و اکسل و Pivot Table")
	assert.Equal(t, []string{"Python", "Excel", "Excel_PivotTable"}, m.Raw())
	assert.Equal(t, []string{"Python", "Excel_PivotTable"}, m.Exclusive())
	assert.Equal(t, []string{"Excel_PivotTable"}, m.Fine())
	assert.Contains(t, m.Rollup(), "Excel")
}

func TestExtractParentWithoutChildren(t *testing.T) {
	t.Parallel()
	e := newTestExtractor(t)

	assert.Equal(t, []string{"Capital_Market_Domain"}, e.Extract("آشنایی با بازار سرمایه"))
	assert.Empty(t, e.ExtractFine("آشنایی با بازار سرمایه"))
	assert.Equal(t, []string{"Capital_Market_Domain"}, e.ExtractParentsRollup("آشنایی با بازار سرمایه"))
}

func TestNestedParents(t *testing.T) {
	t.Parallel()
	e := newTestExtractor(t)

	m := e.Match("بازارگردانی و تأمین سرمایه")
	assert.Equal(t, []string{"Capital_Market_Domain", "CM_Investment_Banking", "CM_Market_Making"}, m.Raw())
	assert.Equal(t, []string{"CM_Market_Making"}, m.Exclusive())
	assert.Equal(t, []string{"CM_Market_Making"}, m.Fine())
	assert.Equal(t, []string{"Capital_Market_Domain", "CM_Investment_Banking"}, m.Rollup())
}

func TestViewsAreConsistent(t *testing.T) {
	t.Parallel()
	e := newTestExtractor(t)

	texts := []string{
		"",
		"مسلط به power bi و dax",
		"حسابداری مالیاتی و حقوق و دستمزد",
		"معامله گر بورس انرژی با تحلیل تکنیکال",
		"آشنایی با اکسل، VBA و SQL",
	}
	for _, text := range texts {
		m := e.Match(text)
		tags := e.Tags(text)
		assert.Equal(t, m.Exclusive(), tags.Exclusive, text)
		assert.Equal(t, m.Fine(), tags.Fine, text)
		assert.Equal(t, m.Rollup(), tags.Rollup, text)

		exclusive := make(map[string]bool)
		for _, s := range tags.Exclusive {
			exclusive[s] = true
		}
		for _, s := range tags.Exclusive {
			for _, p := range tags.Rollup {
				if s == p {
					for _, c := range e.children[p] {
						assert.False(t, m.hit[c], "%s: parent %s kept with matched child", text, p)
					}
				}
			}
		}
		for _, s := range tags.Fine {
			meta, ok := e.Meta(s)
			require.True(t, ok)
			assert.NotEmpty(t, meta.Parent)
			assert.True(t, exclusive[s], "%s: fine skill %s missing from exclusive view", text, s)
		}
		for _, s := range m.Raw() {
			meta, _ := e.Meta(s)
			if meta.Parent != "" {
				assert.Contains(t, tags.Rollup, meta.Parent, text)
			}
		}
	}
}

func TestNewRejectsUnknownParent(t *testing.T) {
	t.Parallel()

	_, err := New([]catalog.Skill{{Name: "Child", Group: "hard", Parent: "Missing", Pattern: "x"}})
	require.Error(t, err)
}

func TestParseExperience(t *testing.T) {
	t.Parallel()

	ptr := func(n int) *int { return &n }
	cases := []struct {
		text     string
		min, max *int
	}{
		{"بدون سابقه، ۳ سال", ptr(0), ptr(0)},
		{"Junior developer", ptr(0), ptr(0)},
		{"۲ تا ۵ سال سابقه", ptr(2), ptr(5)},
		{"3-4 سال", ptr(3), ptr(4)},
		{"حداقل ۳ سال سابقه", ptr(3), nil},
		{"MIN 2 سال", ptr(2), nil},
		{"5 سال سابقه مرتبط", ptr(5), nil},
		{"سابقه مرتبط", nil, nil},
	}
	for _, tc := range cases {
		gotMin, gotMax := ParseExperience(tc.text)
		assert.Equal(t, tc.min, gotMin, tc.text)
		assert.Equal(t, tc.max, gotMax, tc.text)
	}
}
