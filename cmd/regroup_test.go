package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/scaffoldgroup/logging"
	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/mesh/readers"
	"github.com/notargets/scaffoldgroup/regroup"
)

func writeBottomCube(t *testing.T, dir, name string) string {
	t.Helper()
	cube, err := mesh.NewLayeredCube(2, 2, 2)
	require.NoError(t, err)
	_, err = cube.LayerGroup("bottom_group", 0)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, readers.WriteMeshFile(cube.Region, path))
	return path
}

func TestRunRegroup(t *testing.T) {
	dir := t.TempDir()
	input := writeBottomCube(t, dir, "cube.msh")
	metricsFile := filepath.Join(dir, "regroup.prom")

	var out bytes.Buffer
	result, err := runRegroup(&RegroupParameters{
		Input:       input,
		Groups:      []string{"bottom_group, inner", "missing,outer"},
		MetricsFile: metricsFile,
	}, logging.NewNop(), &out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cube_regrouped.msh"), result.OutputPath)
	assert.Contains(t, out.String(), "20 -> 4")
	assert.Contains(t, out.String(), "warning: GroupNotFound")
	assert.FileExists(t, result.OutputPath)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `scaffoldgroup_runs_total{outcome="ok"} 1`)
}

func TestRunRegroup_Failures(t *testing.T) {
	dir := t.TempDir()
	input := writeBottomCube(t, dir, "cube.yaml")

	_, err := runRegroup(&RegroupParameters{}, logging.NewNop(), &bytes.Buffer{})
	assert.Error(t, err, "input is required")

	_, err = runRegroup(&RegroupParameters{Input: input, Groups: []string{"bottom_group,inner"}, Mode: "swap"},
		logging.NewNop(), &bytes.Buffer{})
	assert.Error(t, err)

	metricsFile := filepath.Join(dir, "failed.prom")
	_, err = runRegroup(&RegroupParameters{
		Input:       input,
		Groups:      []string{"bottom_group,middle"},
		MetricsFile: metricsFile,
	}, logging.NewNop(), &bytes.Buffer{})
	var kwErr *regroup.InvalidSurfaceKeywordError
	require.True(t, errors.As(err, &kwErr))
	assert.NoFileExists(t, regroup.OutputPath(input))
	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err, "metrics are written for failed runs too")
	assert.Contains(t, string(data), `outcome="invalid_keyword"`)
}

func TestResolveEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "groups.config"), []byte(`{"groups": ["from_location,inner"]}`), 0644))
	explicit := filepath.Join(dir, "explicit.json")
	require.NoError(t, os.WriteFile(explicit, []byte(`{"groups": ["from_file,outer"]}`), 0644))

	first := func(rp *RegroupParameters) string {
		entries, err := rp.resolveEntries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		return entries[0].Name
	}
	assert.Equal(t, "from_flag", first(&RegroupParameters{
		Groups: []string{"from_flag,inner"}, GroupsConfig: explicit, ConfigGroups: []string{"from_config,inner"}, Location: dir,
	}))
	assert.Equal(t, "from_file", first(&RegroupParameters{
		GroupsConfig: explicit, ConfigGroups: []string{"from_config,inner"}, Location: dir,
	}))
	assert.Equal(t, "from_config", first(&RegroupParameters{ConfigGroups: []string{"from_config,inner"}, Location: dir}))
	assert.Equal(t, "from_location", first(&RegroupParameters{Location: dir}))

	entries, err := (&RegroupParameters{Location: t.TempDir()}).resolveEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = (&RegroupParameters{GroupsConfig: filepath.Join(dir, "none.json")}).resolveEntries()
	assert.Error(t, err)
}

func TestPrintInspection(t *testing.T) {
	dir := t.TempDir()
	input := writeBottomCube(t, dir, "cube.json")
	r, err := regroup.Load(regroup.FileLibrary{}, input, regroup.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printInspection(r, &out))
	text := out.String()
	assert.Contains(t, text, "[36]\t\t= 2D elements")
	assert.Contains(t, text, "\"coordinates\"\t= Coordinate field")
	assert.Regexp(t, `Inner surface\s+4 faces  area 1\n`, text)
	assert.Regexp(t, `Interior\s+12 faces`, text)
	assert.Contains(t, text, "bottom_group             2D:20 3D:4 (inner 4, outer 0)")
}
