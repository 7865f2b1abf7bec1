package InputParameters

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupEntry(t *testing.T) {
	ge, err := ParseGroupEntry(" left ventricle , inner ,outer")
	require.NoError(t, err)
	assert.Equal(t, "left ventricle", ge.Name)
	assert.Equal(t, []string{"inner", "outer"}, ge.Surfaces)
	assert.Equal(t, "left ventricle,inner,outer", ge.String())

	ge, err = ParseGroupEntry("apex")
	require.NoError(t, err)
	assert.Empty(t, ge.Surfaces)

	ge, err = ParseGroupEntry("apex,, ")
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, ge.Surfaces, "empty tokens are kept for validation")

	ge, err = ParseGroupEntry("lv,")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, ge.Surfaces)

	// Surfaces are passed through for the caller to validate
	ge, err = ParseGroupEntry("apex,Inner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Inner"}, ge.Surfaces)

	_, err = ParseGroupEntry(" ,inner")
	assert.Error(t, err)
}

func TestParseGroupEntries(t *testing.T) {
	entries, err := ParseGroupEntries([]string{"lv,inner", "", "rv,outer,inner"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "rv", entries[1].Name)
	assert.Equal(t, []string{"outer", "inner"}, entries[1].Surfaces)

	_, err = ParseGroupEntries([]string{"lv,inner", ",outer"})
	assert.Error(t, err)
}

func TestGroupsConfig(t *testing.T) {
	var gc GroupsConfig
	require.NoError(t, gc.Parse([]byte(`{"groups": ["lv,inner", "rv,outer"]}`)))
	assert.Equal(t, []string{"lv,inner", "rv,outer"}, gc.Groups)

	var fromYAML GroupsConfig
	require.NoError(t, fromYAML.Parse([]byte("groups:\n- lv,inner\n- rv,outer\n")))
	assert.Equal(t, gc.Groups, fromYAML.Groups)

	entries, err := gc.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	var buf bytes.Buffer
	gc.Print(&buf)
	assert.Contains(t, buf.String(), "\"rv,outer\"")

	assert.Error(t, gc.Parse([]byte(`{"groups": "lv,inner"`)))
}

func TestReadLocation(t *testing.T) {
	dir := t.TempDir()
	gc, err := ReadLocation(dir)
	require.NoError(t, err)
	assert.Empty(t, gc.Groups, "a location without groups.config is not an error")

	require.NoError(t, os.WriteFile(filepath.Join(dir, GroupsConfigFile), []byte(`{"groups": ["lv,inner"]}`), 0644))
	gc, err = ReadLocation(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"lv,inner"}, gc.Groups)

	_, err = ReadGroupsConfig(filepath.Join(dir, "missing.config"))
	assert.Error(t, err)
}
