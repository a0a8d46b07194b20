package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountValues(t *testing.T) {
	t.Parallel()

	got := CountValues([]string{"تهران", "اصفهان", "تهران", "شیراز", "اصفهان", "تهران"})
	assert.Equal(t, []Count{{"تهران", 3}, {"اصفهان", 2}, {"شیراز", 1}}, got)
	assert.Empty(t, CountValues(nil))
}

func TestCountDistinct(t *testing.T) {
	t.Parallel()

	got := CountDistinct([]Membership{{"a", "Python"}, {"a", "Python"}, {"b", "Python"}, {"a", "SQL"}})
	assert.Equal(t, []Count{{"Python", 2}, {"SQL", 1}}, got)
}

func TestGroupShares(t *testing.T) {
	t.Parallel()

	rows := GroupShares([]Triple{
		{"1", "تهران", "حسابدار"},
		{"2", "تهران", "حسابدار"},
		{"3", "تهران", "معامله‌گر"},
		{"3", "تهران", "معامله‌گر"},
		{"4", "شیراز", "حسابدار"},
	}, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, Row{Group: "تهران", Item: "حسابدار", NItems: 2, NGroupTotal: 3, PctOfGroup: 0.6667}, rows[0])
	assert.Equal(t, "معامله‌گر", rows[1].Item)
	assert.Equal(t, 1.0, rows[2].PctOfGroup)

	widened := GroupShares([]Triple{{"1", "حسابدار", "CIMA"}}, []Membership{{"1", "حسابدار"}, {"2", "حسابدار"}})
	require.Len(t, widened, 1)
	assert.Equal(t, 2, widened[0].NGroupTotal)
	assert.Equal(t, 0.5, widened[0].PctOfGroup)
}

func TestTopNWide(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Group: "a", Item: "x", NItems: 3, NGroupTotal: 4, PctOfGroup: 0.75},
		{Group: "a", Item: "y", NItems: 1, NGroupTotal: 4, PctOfGroup: 0.25},
		{Group: "a", Item: "z", NItems: 1, NGroupTotal: 4, PctOfGroup: 0.25},
		{Group: "b", Item: "x", NItems: 9, NGroupTotal: 10, PctOfGroup: 0.9},
	}
	out := TopNWide(rows, 2, Wide{
		GroupColumn: "role",
		TotalColumn: "n_ads_role",
		ItemPrefix:  "skill",
		Metrics:     []Metric{PctMetric, NMetric},
	})

	assert.Equal(t, []string{"role", "n_ads_role", "skill_1", "pct_1", "n_1", "skill_2", "pct_2", "n_2"}, out.Columns())
	require.Equal(t, 2, out.Len())
	assert.Equal(t, []string{"b", "10", "x", "0.9", "9", "", "", ""}, out.Row(0))
	assert.Equal(t, []string{"a", "4", "x", "0.75", "3", "y", "0.25", "1"}, out.Row(1))
}
