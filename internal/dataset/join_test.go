package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JobAdsMiner/internal/domain"
	"JobAdsMiner/internal/table"
)

func keyed(extra ...string) *table.Table {
	return table.New(append(append([]string{}, KeyColumns...), extra...)...)
}

func TestJoinKeepsBaseRows(t *testing.T) {
	t.Parallel()

	base := keyed(ColTextRaw)
	require.NoError(t, base.Append("a.html", "1", "0", "d1", "متن یک"))
	require.NoError(t, base.Append("a.html", "2", "1", "d2", "متن دو"))
	require.NoError(t, base.Append("b.html", "3", "0", "d3", "متن سه"))

	jobs := keyed(ColJobCode, ColTextRaw)
	require.NoError(t, jobs.Append("a.html", "2", "1", "d2", "accountant_general", "ignored"))
	require.NoError(t, jobs.Append("a.html", "2", "1", "d2", "sales", "ignored"))
	require.NoError(t, jobs.Append("a.html", "1", "0", "d1", "developer", "ignored"))

	locs := keyed(ColCity, ColJobCode)
	require.NoError(t, locs.Append("b.html", "3", "0", "d3", "تهران", "sales"))

	out, err := Join(base, jobs, locs)
	require.NoError(t, err)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, append(append([]string{}, KeyColumns...), ColTextRaw, ColAdKey, ColJobCode, ColCity), out.Columns())
	assert.Equal(t, []string{"developer", "accountant_general", ""}, out.Column(ColJobCode))
	assert.Equal(t, []string{"", "", "تهران"}, out.Column(ColCity))
	assert.Equal(t, []string{"متن یک", "متن دو", "متن سه"}, out.Column(ColTextRaw))
	assert.Equal(t, "a.html|1|0|d1", out.Value(0, ColAdKey))
}

func TestJoinMissingKeyColumn(t *testing.T) {
	t.Parallel()

	base := table.New(ColSourceFile, ColMessageIDs, ColGroupIndex)
	_, err := Join(base)
	require.ErrorIs(t, err, domain.ErrMissingColumn)

	_, err = Join(keyed(), table.New(ColSourceFile))
	require.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestRenameRoleColumns(t *testing.T) {
	t.Parallel()

	tbl := table.New(ColJobFamilyFa, ColJobRoleFa, ColJobRole)
	RenameRoleColumns(tbl)
	assert.Equal(t, []string{ColJobFamily, ColJobRoleFa, ColJobRole}, tbl.Columns())
}

func TestAdIDs(t *testing.T) {
	t.Parallel()

	withID := keyed(ColAdID)
	require.NoError(t, withID.Append("a.html", "1", "0", "d1", "uuid-1"))
	require.NoError(t, withID.Append("a.html", "2", "1", "d2", ""))
	assert.Equal(t, []string{"uuid-1", "a.html|2|1|d2"}, AdIDs(withID))

	bare := table.New(ColTextRaw)
	require.NoError(t, bare.Append("x"))
	assert.Equal(t, []string{"row-0"}, AdIDs(bare))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Python", "SQL"}, SplitList(" Python | |SQL"))
	assert.Empty(t, SplitList(""))
	assert.Equal(t, "Python|SQL", JoinList([]string{"Python", "SQL"}))
}

func TestAdsTable(t *testing.T) {
	t.Parallel()

	ad := domain.AdRecord{
		Key:         domain.AdKey{SourceFile: "messages.html", MessageIDs: "m1,m2", GroupIndex: 4, DateTitle: "d"},
		RawJobTitle: "حسابدار",
		RawText:     "متن",
	}
	tbl := AdsTable([]domain.AdRecord{ad})

	require.Equal(t, ParsedColumns, tbl.Columns())
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "messages.html|m1,m2|4|d", AdKey(tbl, 0))
	assert.Equal(t, ad.Key.ID().String(), tbl.Value(0, ColAdID))
	assert.Equal(t, "حسابدار", tbl.Value(0, ColJobTitle))
}
