package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	t.Parallel()

	c, err := Default()
	require.NoError(t, err)

	require.NotEmpty(t, c.Jobs.Rules)
	assert.Equal(t, "trader_energy", c.Jobs.Rules[0].Code)
	assert.Equal(t, "manager_general", c.Jobs.Rules[len(c.Jobs.Rules)-1].Code)
	assert.Equal(t, "other", c.Jobs.Sentinel.Code)

	assert.Len(t, c.Geo.Provinces, 31)
	assert.Len(t, c.Geo.Cities, 31)
	assert.Equal(t, "تهران", c.Geo.Cities[0].City)
	assert.NotEmpty(t, c.Geo.Tehran.Neighborhoods)

	parents := map[string]string{}
	for _, s := range c.Skills {
		parents[s.Name] = s.Parent
	}
	assert.Equal(t, "Excel", parents["Excel_PivotTable"])
	assert.Equal(t, "CM_Investment_Banking", parents["CM_Market_Making"])
}

func TestCompileStrict(t *testing.T) {
	t.Parallel()

	re, err := Compile(`\bqom\b|قم`, true)
	require.NoError(t, err)

	assert.True(t, re.MatchString("دفتر قم"))
	assert.True(t, re.MatchString("QOM office"))
	assert.False(t, re.MatchString("رقم حقوق"))

	loose, err := Compile(`قم`, false)
	require.NoError(t, err)
	assert.True(t, loose.MatchString("رقم حقوق"))
}

func TestValidateRejectsUnknownParent(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		jobsFile: {Data: []byte("sentinel: {code: other}\nrules:\n  - {code: a, pattern: 'x'}\n")},
		skillsFile: {Data: []byte("skills:\n  - {skill: Child, group: hard, category: c, parent: Ghost, pattern: 'y'}\n")},
		geoFile:    {Data: []byte("provinces: []\n")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestValidateRejectsBadPattern(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		jobsFile:   {Data: []byte("sentinel: {code: other}\nrules:\n  - {code: a, pattern: '(?<!x)y'}\n")},
		skillsFile: {Data: []byte("skills: []\n")},
		geoFile:    {Data: []byte("provinces: []\n")},
	}
	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule a")
}

func TestLoadDirOverridesJobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, jobsFile, "sentinel: {code: other, family_fa: x, role_fa: x}\nrules:\n  - {code: only, family_fa: f, role_fa: r, pattern: 'z'}\n")

	c, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, c.Jobs.Rules, 1)
	assert.Equal(t, "only", c.Jobs.Rules[0].Code)
	assert.NotEmpty(t, c.Skills, "skills fall back to the embedded catalog")
}
