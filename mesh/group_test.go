package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/scaffoldgroup/utils"
)

func TestMeshGroup_RemoveElementsConditional(t *testing.T) {
	cube, err := NewLayeredCube(2, 2, 2)
	require.NoError(t, err)
	g, err := cube.LayerGroup("bottom", 0)
	require.NoError(t, err)
	faces, ok := g.GetMeshGroup(2)
	require.True(t, ok)
	// 4 hexes: 4 bottom, 4 top, 12 unique side faces
	require.Equal(t, 20, faces.Size())

	var events []ChangeEvent
	cube.Fieldmodule().AddListener(func(ev ChangeEvent) { events = append(events, ev) })

	fm := cube.Fieldmodule()
	inner := fm.CreateAnd(fm.CreateIsExterior(), fm.CreateIsOnFace(utils.FaceTypeXI3_0))
	before := faces.ElementIDs()
	removed := faces.RemoveElementsConditional(fm.CreateNot(inner))
	assert.Equal(t, 16, removed)
	assert.Equal(t, 4, faces.Size())
	for _, id := range faces.ElementIDs() {
		assert.Contains(t, before, id, "membership only shrinks")
	}
	require.Len(t, events, 1, "one notification per conditional removal")
	assert.Equal(t, []string{"bottom"}, events[0].Groups)
	assert.Equal(t, 16, events[0].Removed)

	assert.Equal(t, 0, faces.RemoveElementsConditional(fm.CreateNot(inner)))
	assert.Equal(t, 4, faces.Size())
}

func TestMeshGroup_AddAndRemove(t *testing.T) {
	cube, err := NewLayeredCube(1, 1, 1)
	require.NoError(t, err)
	g := cube.CreateGroup("all")
	faces, err := g.CreateMeshGroup(2)
	require.NoError(t, err)
	assert.Equal(t, 6, faces.AddElementsConditional(cube.Fieldmodule().CreateConstant(true)))
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, 0, faces.AddElementsConditional(cube.Fieldmodule().CreateConstant(true)))

	hex := cube.Hex(0, 0, 0)
	assert.Error(t, faces.AddElement(hex), "a 3D element cannot join the 2D subgroup")
	assert.False(t, faces.ContainsElement(hex))

	first := faces.Elements()[0]
	assert.True(t, faces.RemoveElement(first))
	assert.False(t, faces.RemoveElement(first))
	require.NoError(t, faces.AddElement(first))
	require.NoError(t, faces.AddElement(first))
	assert.Equal(t, 6, faces.Size())
	assert.Equal(t, 6, faces.RemoveAllElements())
	assert.Equal(t, 0, faces.Size())
}

func TestChangeScope(t *testing.T) {
	cube, err := NewLayeredCube(1, 1, 1)
	require.NoError(t, err)
	fm := cube.Fieldmodule()
	notified := 0
	var last ChangeEvent
	fm.AddListener(func(ev ChangeEvent) {
		notified++
		last = ev
	})
	faces, err := cube.CreateGroup("g").CreateMeshGroup(2)
	require.NoError(t, err)

	outer := fm.BeginChange()
	inner := fm.BeginChange()
	for _, f := range cube.FindMeshByDimension(2).Elements() {
		require.NoError(t, faces.AddElement(f))
	}
	faces.RemoveElement(cube.FindMeshByDimension(2).Elements()[0])
	inner.End()
	assert.Equal(t, 0, notified, "nested scope defers to the outermost")
	outer.End()
	outer.End()
	assert.Equal(t, 1, notified)
	assert.Equal(t, 6, last.Added)
	assert.Equal(t, 1, last.Removed)
	assert.True(t, last.Changed())

	// An empty scope still reports once
	fm.BeginChange().End()
	assert.Equal(t, 2, notified)
	assert.False(t, last.Changed())
}
