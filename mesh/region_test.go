package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/scaffoldgroup/utils"
)

func TestRegion_AddElement(t *testing.T) {
	r := NewRegion("test")
	for id := 1; id <= 4; id++ {
		require.NoError(t, r.AddNode(id))
	}
	assert.Error(t, r.AddNode(1), "duplicate node must be rejected")

	e, err := r.AddElement(10, utils.Tet, []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3, e.Dimension())
	assert.Equal(t, 3, r.HighestDimension())

	_, err = r.AddElement(10, utils.Triangle, []int{1, 2, 3})
	assert.Error(t, err, "element IDs are unique across dimensions")
	_, err = r.AddElement(11, utils.Triangle, []int{1, 2})
	assert.Error(t, err, "wrong node count")
	_, err = r.AddElement(12, utils.Triangle, []int{1, 2, 99})
	assert.Error(t, err, "undefined node")
	_, err = r.AddElement(13, utils.Unknown, nil)
	assert.Error(t, err)

	found, ok := r.FindElementByID(10)
	require.True(t, ok)
	assert.Same(t, e, found)
	assert.Equal(t, 11, r.NextElementID())
	assert.Nil(t, r.FindMeshByDimension(0))
	assert.Nil(t, r.FindMeshByDimension(4))
}

func TestRegion_Groups(t *testing.T) {
	r := NewRegion("test")
	g := r.CreateGroup("lv")
	assert.Same(t, g, r.CreateGroup("lv"), "CreateGroup is find-or-create")
	r.CreateGroup("apex")
	assert.Equal(t, []string{"apex", "lv"}, r.GroupNames())
	_, ok := r.FindGroup("rv")
	assert.False(t, ok)

	_, ok = g.GetMeshGroup(2)
	assert.False(t, ok)
	mg, err := g.CreateMeshGroup(2)
	require.NoError(t, err)
	again, err := g.CreateMeshGroup(2)
	require.NoError(t, err)
	assert.Same(t, mg, again)
	_, err = g.CreateMeshGroup(0)
	assert.Error(t, err)
}

func TestLayeredCube_Topology(t *testing.T) {
	cube, err := NewLayeredCube(2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 8, cube.FindMeshByDimension(3).Size())
	assert.Equal(t, 36, cube.FindMeshByDimension(2).Size())
	assert.Equal(t, 54, cube.FindMeshByDimension(1).Size())

	created, err := cube.DefineFaces()
	require.NoError(t, err)
	assert.Equal(t, 0, created, "faces are only defined once")

	fi := cube.Incidence(2)
	interior, exterior := 0, 0
	for _, f := range cube.FindMeshByDimension(2).Elements() {
		switch fi.NumParents(f) {
		case 1:
			exterior++
		case 2:
			interior++
		default:
			t.Fatalf("face %d has %d parents", f.ID, fi.NumParents(f))
		}
	}
	assert.Equal(t, 24, exterior)
	assert.Equal(t, 12, interior)

	// Reciprocity: every parent reference points back at a face of that parent
	for _, f := range cube.FindMeshByDimension(2).Elements() {
		for _, p := range fi.Parents(f) {
			nodes := utils.GetElementFaces(p.Element.Type, p.Element.Nodes)[p.Face]
			assert.Equal(t, faceKey(f.Nodes), faceKey(nodes))
		}
	}

	_, err = NewLayeredCube(0, 1, 1)
	assert.Error(t, err)
}

func TestCoordinateField(t *testing.T) {
	cube, err := NewLayeredCube(1, 1, 2)
	require.NoError(t, err)
	f, ok := cube.CoordinateField()
	require.True(t, ok)
	assert.Equal(t, "coordinates", f.Name())

	// A 3 component field that is not coordinate typed is never picked
	r := NewRegion("bare")
	require.NoError(t, r.AddNode(1))
	require.NoError(t, r.AddNode(2))
	_, err = r.AddElement(1, utils.Line, []int{1, 2})
	require.NoError(t, err)
	_, ok = r.CoordinateField()
	assert.False(t, ok)
	fibre, err := r.Fieldmodule().CreateFieldFiniteElement("fibres", 3)
	require.NoError(t, err)
	require.NoError(t, fibre.SetNodeValue(1, []float64{1, 0, 0}))
	require.NoError(t, fibre.SetNodeValue(2, []float64{1, 0, 0}))
	_, ok = r.CoordinateField()
	assert.False(t, ok)
	fibre.SetTypeCoordinate(true)
	found, ok := r.CoordinateField()
	require.True(t, ok)
	assert.Same(t, fibre, found)

	_, err = r.Fieldmodule().CreateFieldFiniteElement("fibres", 3)
	assert.Error(t, err)
	assert.Error(t, fibre.SetNodeValue(1, []float64{1}))
}

func TestFaceArea(t *testing.T) {
	cube, err := NewLayeredCube(2, 1, 1)
	require.NoError(t, err)
	coordinates, ok := cube.CoordinateField()
	require.True(t, ok)
	bottom := cube.FacesOf(cube.Hex(0, 0, 0))[0]
	area, err := FaceArea(bottom, coordinates)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, area, 1e-12)

	_, err = FaceArea(cube.Hex(0, 0, 0), coordinates)
	assert.Error(t, err)
}
