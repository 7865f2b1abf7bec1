package utils

import (
	"fmt"
	"strings"
)

// ElementType represents the linear finite element shapes a scaffold is built from
type ElementType int

const (
	Unknown ElementType = iota
	// 1D elements
	Line
	// 2D elements
	Triangle
	Quad
	// 3D elements
	Tet
	Hex
	Prism
	Pyramid
)

var elementTypeNames = []string{
	"Unknown",
	"Line",
	"Triangle", "Quad",
	"Tet", "Hex", "Prism", "Pyramid",
}

// String representation of element types
func (e ElementType) String() string {
	if int(e) >= 0 && int(e) < len(elementTypeNames) {
		return elementTypeNames[e]
	}
	return "Invalid"
}

// ParseElementType is the inverse of String, case insensitive
func ParseElementType(name string) (ElementType, error) {
	for i, n := range elementTypeNames {
		if i != int(Unknown) && strings.EqualFold(n, strings.TrimSpace(name)) {
			return ElementType(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown element type %q", name)
}

// GetDimension returns the topological dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of nodes for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetNumFaces returns the number of (dimension - 1) faces of the element
func (e ElementType) GetNumFaces() int {
	return len(localFaces[e])
}

// FaceType names a face of an element by the local xi coordinate held constant on it.
// The values follow the usual finite element toolkit convention, so FaceTypeXI3_0 is the
// face where xi3 = 0.
type FaceType int

const (
	FaceTypeInvalid FaceType = iota
	FaceTypeAll              // every element, whether or not it is a face
	FaceTypeAnyFace          // any face of a parent element
	FaceTypeNoFace           // elements that are not faces of a parent
	FaceTypeXI1_0
	FaceTypeXI1_1
	FaceTypeXI2_0
	FaceTypeXI2_1
	FaceTypeXI3_0
	FaceTypeXI3_1
)

var faceTypeNames = []string{
	"invalid", "all", "any_face", "no_face",
	"xi1_0", "xi1_1", "xi2_0", "xi2_1", "xi3_0", "xi3_1",
}

func (f FaceType) String() string {
	if int(f) >= 0 && int(f) < len(faceTypeNames) {
		return faceTypeNames[f]
	}
	return "invalid"
}

// IsXi reports whether the face type names a specific xi face
func (f FaceType) IsXi() bool {
	return f >= FaceTypeXI1_0 && f <= FaceTypeXI3_1
}

// LocalFace describes one face of an element in terms of the element's local node ordering
type LocalFace struct {
	Type  ElementType // Element type of the face itself
	Nodes []int       // Local node indices into the parent, ordered to give an outward normal
	Face  FaceType    // Xi face, or FaceTypeAnyFace when the face lies on no single xi plane
}

// Node ordering follows Gmsh: hex 0-3 on xi3=0 counter-clockwise, 4-7 above them;
// prism 0-2 on xi3=0, 3-5 above; pyramid base 0-3, apex 4.
var localFaces = map[ElementType][]LocalFace{
	Triangle: {
		{Line, []int{0, 1}, FaceTypeXI2_0},
		{Line, []int{1, 2}, FaceTypeAnyFace},
		{Line, []int{2, 0}, FaceTypeXI1_0},
	},
	Quad: {
		{Line, []int{0, 1}, FaceTypeXI2_0},
		{Line, []int{1, 2}, FaceTypeXI1_1},
		{Line, []int{2, 3}, FaceTypeXI2_1},
		{Line, []int{3, 0}, FaceTypeXI1_0},
	},
	Tet: {
		{Triangle, []int{0, 2, 1}, FaceTypeXI3_0},
		{Triangle, []int{0, 1, 3}, FaceTypeXI2_0},
		{Triangle, []int{1, 2, 3}, FaceTypeAnyFace},
		{Triangle, []int{0, 3, 2}, FaceTypeXI1_0},
	},
	Hex: {
		{Quad, []int{0, 3, 2, 1}, FaceTypeXI3_0}, // bottom
		{Quad, []int{4, 5, 6, 7}, FaceTypeXI3_1}, // top
		{Quad, []int{0, 1, 5, 4}, FaceTypeXI2_0},
		{Quad, []int{1, 2, 6, 5}, FaceTypeXI1_1},
		{Quad, []int{2, 3, 7, 6}, FaceTypeXI2_1},
		{Quad, []int{3, 0, 4, 7}, FaceTypeXI1_0},
	},
	Prism: {
		{Triangle, []int{0, 2, 1}, FaceTypeXI3_0},
		{Triangle, []int{3, 4, 5}, FaceTypeXI3_1},
		{Quad, []int{0, 1, 4, 3}, FaceTypeXI2_0},
		{Quad, []int{1, 2, 5, 4}, FaceTypeAnyFace},
		{Quad, []int{2, 0, 3, 5}, FaceTypeXI1_0},
	},
	Pyramid: {
		{Quad, []int{0, 3, 2, 1}, FaceTypeXI3_0},
		{Triangle, []int{0, 1, 4}, FaceTypeXI2_0},
		{Triangle, []int{1, 2, 4}, FaceTypeXI1_1},
		{Triangle, []int{2, 3, 4}, FaceTypeXI2_1},
		{Triangle, []int{3, 0, 4}, FaceTypeXI1_0},
	},
}

// GetLocalFaces returns the face table of the element type, nil for types without faces
func (e ElementType) GetLocalFaces() []LocalFace {
	return localFaces[e]
}

// GetElementFaces returns the faces of an element as global node lists
func GetElementFaces(elemType ElementType, nodes []int) [][]int {
	lf := localFaces[elemType]
	faces := make([][]int, len(lf))
	for i, f := range lf {
		faces[i] = make([]int, len(f.Nodes))
		for j, ln := range f.Nodes {
			faces[i][j] = nodes[ln]
		}
	}
	return faces
}
