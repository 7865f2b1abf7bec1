package mesh

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/scaffoldgroup/utils"
)

// Field is a finite element field interpolated from values stored at nodes
type Field struct {
	fm            *Fieldmodule
	name          string
	coordinate    bool
	components    int
	finiteElement bool
	values        map[int][]float64 // Node ID -> component values
}

func (f *Field) Name() string           { return f.name }
func (f *Field) IsTypeCoordinate() bool { return f.coordinate }

// SetTypeCoordinate marks the field as giving element geometry
func (f *Field) SetTypeCoordinate(c bool) {
	f.coordinate = c
	f.fm.region.coordinatesChecked = false
}

func (f *Field) NumberOfComponents() int { return f.components }
func (f *Field) IsFiniteElement() bool   { return f.finiteElement }

// SetNodeValue assigns the field value at a node
func (f *Field) SetNodeValue(nodeID int, value []float64) error {
	if len(value) != f.components {
		return fmt.Errorf("field %s: node %d expects %d components, got %d",
			f.name, nodeID, f.components, len(value))
	}
	f.values[nodeID] = append([]float64(nil), value...)
	return nil
}

// NodeValue returns the field value at a node
func (f *Field) NodeValue(nodeID int) ([]float64, bool) {
	v, ok := f.values[nodeID]
	return v, ok
}

// NodeIDs returns the nodes holding a value, sorted
func (f *Field) NodeIDs() []int {
	ids := make([]int, 0, len(f.values))
	for id := range f.values {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// IsDefinedOn reports whether the field has a value at every node of the element
func (f *Field) IsDefinedOn(e *Element) bool {
	for _, n := range e.Nodes {
		if _, ok := f.values[n]; !ok {
			return false
		}
	}
	return len(e.Nodes) > 0
}

// Position returns a 3 component field value at a node as a vector
func (f *Field) Position(nodeID int) (r3.Vec, error) {
	if f.components != 3 {
		return r3.Vec{}, fmt.Errorf("field %s has %d components, need 3", f.name, f.components)
	}
	v, ok := f.values[nodeID]
	if !ok {
		return r3.Vec{}, fmt.Errorf("field %s is not defined at node %d", f.name, nodeID)
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

// CoordinateField returns the model coordinates: the first 3 component coordinate-typed
// finite element field defined on the first element of the highest dimension mesh. The
// result, including its absence, is cached until fields or topology change.
func (r *Region) CoordinateField() (*Field, bool) {
	if !r.coordinatesChecked {
		r.coordinates = r.discoverCoordinateField()
		r.coordinatesChecked = true
	}
	return r.coordinates, r.coordinates != nil
}

func (r *Region) discoverCoordinateField() *Field {
	top := r.HighestDimension()
	if top == 0 {
		return nil
	}
	element := r.meshes[top].elements[0]
	for _, f := range r.fieldmodule.fields {
		if f.IsTypeCoordinate() && f.NumberOfComponents() == 3 && f.IsFiniteElement() &&
			f.IsDefinedOn(element) {
			return f
		}
	}
	return nil
}

// FaceArea returns the area of a 2D element, splitting quads into two triangles
func FaceArea(e *Element, coordinates *Field) (float64, error) {
	p := make([]r3.Vec, len(e.Nodes))
	for i, n := range e.Nodes {
		var err error
		if p[i], err = coordinates.Position(n); err != nil {
			return 0, err
		}
	}
	triangle := func(a, b, c r3.Vec) float64 {
		return 0.5 * r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
	}
	switch e.Type {
	case utils.Triangle:
		return triangle(p[0], p[1], p[2]), nil
	case utils.Quad:
		// Gmsh quad ordering: 0-1-2-3 around the perimeter
		return triangle(p[0], p[1], p[2]) + triangle(p[0], p[2], p[3]), nil
	default:
		return math.NaN(), fmt.Errorf("element %d: area of %s is undefined", e.ID, e.Type)
	}
}
