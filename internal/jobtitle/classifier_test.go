package jobtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobAdsMiner/internal/catalog"
	"JobAdsMiner/internal/domain"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	cl, err := New(c.Jobs)
	require.NoError(t, err)
	return cl
}

func TestClassifyOrder(t *testing.T) {
	t.Parallel()
	cl := newTestClassifier(t)

	cases := map[string]string{
		"استخدام معامله گر بورس انرژی":    "trader_energy",
		"معامله‌گر بورس کالا":             "trader_commodity",
		"کارشناس پذیرش مشتری سجام":        "customer_admission",
		"مدیر سبد اختصاصی":                "portfolio_manager",
		"استخدام حسابدار":                 "accountant_general",
		"مدیر عملیاتی":                    "operations_manager",
		"سرپرست واحد":                     "manager_general",
		"مدیر فروش":                       "sales",
		"كارشناس حسابرسي داخلي":           "internal_audit",
	}
	for text, want := range cases {
		assert.Equal(t, want, cl.Classify(text).Code, "classify %q", text)
	}
}

func TestClassifySentinel(t *testing.T) {
	t.Parallel()
	cl := newTestClassifier(t)

	got := cl.Classify("")
	assert.Equal(t, domain.JobClassification{Code: "other", Family: "سایر", Role: "سایر"}, got)
	assert.Equal(t, got, cl.Classify("نیروی خدماتی"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()
	cl := newTestClassifier(t)

	first := cl.Classify("مدیر سبد و معامله گر اوراق")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, cl.Classify("مدیر سبد و معامله گر اوراق"))
	}
	assert.Equal(t, "trader_securities", first.Code)
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()
	cl := newTestClassifier(t)

	assert.Equal(t, "کارشناس مالی", cl.CleanTitle("كارشناس  مالی", "متن"))
	assert.Equal(t, "کارشناس حسابداری",
		cl.CleanTitle("الف", `شرکت «آلفا» به یک «کارشناس حسابداری» نیازمند است`))
	assert.Equal(t, "آلفا", cl.CleanTitle("ب", `شرکت «آلفا» نیازمند است`))
	assert.Equal(t, "ab", cl.CleanTitle("ab", "بدون عنوان"))
}

func TestClassifyAdUsesCleanTitle(t *testing.T) {
	t.Parallel()
	cl := newTestClassifier(t)

	clean, got := cl.ClassifyAd("ا", `آگهی: «تحصیلدار» جهت شرکت`)
	assert.Equal(t, "تحصیلدار", clean)
	assert.Equal(t, "cashier_runner", got.Code)
}
