package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/scaffoldgroup/InputParameters"
	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/mesh/readers"
	"github.com/notargets/scaffoldgroup/regroup"
)

func TestCollector_ObservesRun(t *testing.T) {
	cube, err := mesh.NewLayeredCube(2, 2, 2)
	require.NoError(t, err)
	_, err = cube.LayerGroup("bottom_group", 0)
	require.NoError(t, err)
	dir := t.TempDir()
	input := filepath.Join(dir, "cube.yaml")
	require.NoError(t, readers.WriteMeshFile(cube.Region, input))

	c := NewCollector()
	entries := []InputParameters.GroupEntry{
		{Name: "bottom_group", Surfaces: []string{"inner"}},
		{Name: "nonexistent_group", Surfaces: []string{"outer"}},
	}
	start := time.Now()
	_, err = regroup.Run(regroup.FileLibrary{}, input, entries, regroup.Options{Observer: c})
	c.ObserveRun(time.Since(start), err)
	require.NoError(t, err)

	assert.Equal(t, 16.0, testutil.ToFloat64(c.removed.WithLabelValues("bottom_group")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.faceGroup.WithLabelValues("bottom_group")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.warnings.WithLabelValues("GroupNotFound")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))

	out := filepath.Join(dir, "regroup.prom")
	require.NoError(t, c.WriteTextfile(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `scaffoldgroup_face_group_elements{group="bottom_group"} 4`)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "load_error", Outcome(&regroup.LoadError{Path: "x", Err: os.ErrNotExist}))
	assert.Equal(t, "invalid_keyword", Outcome(&regroup.InvalidSurfaceKeywordError{Group: "g", Keyword: "k"}))
	assert.Equal(t, "save_error", Outcome(&regroup.SaveError{Path: "x", Err: os.ErrPermission}))
	assert.Equal(t, "error", Outcome(errors.New("other")))
}
