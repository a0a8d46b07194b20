package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "arabic letters", in: "كارشناس مالي", want: "کارشناس مالی"},
		{name: "teh marbuta and heh goal", in: "شركة ۀ", want: "شرکه ه"},
		{name: "hamza forms", in: "مؤسسه إدارة أمور", want: "موسسه اداره امور"},
		{name: "persian digits", in: "منطقه ۵", want: "منطقه 5"},
		{name: "arabic digits", in: "٢٠ سال", want: "20 سال"},
		{name: "zwnj", in: "معامله\u200cگر", want: "معامله گر"},
		{name: "entities", in: "A &amp; B&nbsp;&lt;C&gt;", want: "A & B <C>"},
		{name: "whitespace", in: "  a \n\t b  ", want: "a b"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"&amp;lt;b&amp;gt;",
		"&#1610;&#1603;",
		"&#۶۰;",
		"كارشناس\u200cارشد ۱۲  سال",
		"\u00a0 «معامله\u200cگر»\u00a0\u200c",
		"&amp;amp;amp;amp;",
		"&" + strings.Repeat("amp;", 10) + "lt;",
		strings.Repeat("&amp;", 40) + "#1610;",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeUnescapesDeepNesting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<", Normalize("&"+strings.Repeat("amp;", 10)+"lt;"))
}

func TestNormalizeLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "تهران منطقه 3", NormalizeLocation(`«تهران» "منطقه ۳"`))
}
