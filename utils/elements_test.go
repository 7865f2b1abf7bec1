package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementTypeFaces(t *testing.T) {
	for _, et := range []ElementType{Triangle, Quad, Tet, Hex, Prism, Pyramid} {
		faces := et.GetLocalFaces()
		require.NotEmpty(t, faces, et.String())
		assert.Equal(t, len(faces), et.GetNumFaces())
		for i, f := range faces {
			assert.Equal(t, et.GetDimension()-1, f.Type.GetDimension(),
				"%s face %d has wrong dimension", et, i)
			assert.Equal(t, f.Type.GetNumNodes(), len(f.Nodes),
				"%s face %d has wrong node count", et, i)
			for _, n := range f.Nodes {
				assert.True(t, n >= 0 && n < et.GetNumNodes())
			}
		}
	}
	assert.Equal(t, 0, Line.GetNumFaces())
	assert.Empty(t, GetElementFaces(Line, []int{1, 2}))
}

func TestHexXi3FacesAreOpposite(t *testing.T) {
	var bottom, top []int
	for _, f := range Hex.GetLocalFaces() {
		switch f.Face {
		case FaceTypeXI3_0:
			bottom = f.Nodes
		case FaceTypeXI3_1:
			top = f.Nodes
		}
	}
	require.Len(t, bottom, 4)
	require.Len(t, top, 4)
	for _, n := range bottom {
		assert.NotContains(t, top, n)
	}
}

func TestGetElementFaces(t *testing.T) {
	nodes := []int{10, 11, 12, 13, 14, 15, 16, 17}
	faces := GetElementFaces(Hex, nodes)
	require.Len(t, faces, 6)
	assert.Equal(t, []int{10, 13, 12, 11}, faces[0])
	assert.Equal(t, []int{14, 15, 16, 17}, faces[1])
}

func TestParseElementType(t *testing.T) {
	et, err := ParseElementType(" hex ")
	require.NoError(t, err)
	assert.Equal(t, Hex, et)
	_, err = ParseElementType("Unknown")
	assert.Error(t, err)
	_, err = ParseElementType("Hex27")
	assert.Error(t, err)
	assert.Equal(t, "Invalid", ElementType(99).String())
	assert.Equal(t, "xi3_0", FaceTypeXI3_0.String())
	assert.True(t, FaceTypeXI1_1.IsXi())
	assert.False(t, FaceTypeAnyFace.IsXi())
}
