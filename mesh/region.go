package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/scaffoldgroup/utils"
)

// MaxDimension is the highest element dimension a region can hold
const MaxDimension = 3

// Element is a single finite element of any dimension
type Element struct {
	ID    int
	Type  utils.ElementType
	Nodes []int // Node IDs in the element's local ordering

	index int // Position within the owning Mesh
}

// Dimension returns the topological dimension of the element
func (e *Element) Dimension() int { return e.Type.GetDimension() }

// Mesh holds all elements of one dimension in insertion order
type Mesh struct {
	dimension int
	elements  []*Element
	byID      map[int]*Element
}

func newMesh(dimension int) *Mesh {
	return &Mesh{
		dimension: dimension,
		byID:      make(map[int]*Element),
	}
}

func (m *Mesh) Dimension() int { return m.dimension }
func (m *Mesh) Size() int      { return len(m.elements) }

// Elements returns the elements in iteration order. The slice must not be modified.
func (m *Mesh) Elements() []*Element { return m.elements }

// FindElementByID returns the element with the given identifier
func (m *Mesh) FindElementByID(id int) (*Element, bool) {
	e, ok := m.byID[id]
	return e, ok
}

// Region is a self-contained finite element model: nodes, elements of dimension 1-3,
// fields defined on the nodes, and named groups of elements.
type Region struct {
	name        string
	nodes       []int
	nodeSet     map[int]struct{}
	meshes      [MaxDimension + 1]*Mesh
	elementDims map[int]int // Element ID -> dimension, IDs are unique across dimensions
	groups      []*Group
	groupByName map[string]*Group
	fieldmodule *Fieldmodule

	incidence [MaxDimension + 1]*FaceIncidence // Indexed by face dimension, built on demand

	coordinates        *Field
	coordinatesChecked bool
}

// NewRegion creates an empty region
func NewRegion(name string) *Region {
	r := &Region{
		name:        name,
		nodeSet:     make(map[int]struct{}),
		elementDims: make(map[int]int),
		groupByName: make(map[string]*Group),
	}
	for d := 1; d <= MaxDimension; d++ {
		r.meshes[d] = newMesh(d)
	}
	r.fieldmodule = newFieldmodule(r)
	return r
}

func (r *Region) Name() string              { return r.name }
func (r *Region) SetName(name string)       { r.name = name }
func (r *Region) Fieldmodule() *Fieldmodule { return r.fieldmodule }

// FindMeshByDimension returns the mesh of the given dimension, nil when out of range
func (r *Region) FindMeshByDimension(dimension int) *Mesh {
	if dimension < 1 || dimension > MaxDimension {
		return nil
	}
	return r.meshes[dimension]
}

// HighestDimension returns the dimension of the highest non-empty mesh, 0 for an empty region
func (r *Region) HighestDimension() int {
	for d := MaxDimension; d >= 1; d-- {
		if r.meshes[d].Size() > 0 {
			return d
		}
	}
	return 0
}

// AddNode registers a node identifier
func (r *Region) AddNode(id int) error {
	if _, exists := r.nodeSet[id]; exists {
		return fmt.Errorf("node %d already defined", id)
	}
	r.nodeSet[id] = struct{}{}
	r.nodes = append(r.nodes, id)
	return nil
}

func (r *Region) HasNode(id int) bool {
	_, ok := r.nodeSet[id]
	return ok
}

// NodeIDs returns the node identifiers in insertion order
func (r *Region) NodeIDs() []int { return r.nodes }

// AddElement creates an element in the mesh matching the element type's dimension
func (r *Region) AddElement(id int, et utils.ElementType, nodes []int) (*Element, error) {
	dim := et.GetDimension()
	if dim < 1 {
		return nil, fmt.Errorf("element %d: unsupported element type %s", id, et)
	}
	if len(nodes) != et.GetNumNodes() {
		return nil, fmt.Errorf("element %d: %s expects %d nodes, got %d",
			id, et, et.GetNumNodes(), len(nodes))
	}
	if _, exists := r.elementDims[id]; exists {
		return nil, fmt.Errorf("element %d already defined", id)
	}
	for _, n := range nodes {
		if !r.HasNode(n) {
			return nil, fmt.Errorf("element %d references undefined node %d", id, n)
		}
	}
	m := r.meshes[dim]
	e := &Element{
		ID:    id,
		Type:  et,
		Nodes: append([]int(nil), nodes...),
		index: len(m.elements),
	}
	m.elements = append(m.elements, e)
	m.byID[id] = e
	r.elementDims[id] = dim
	r.invalidateTopology()
	return e, nil
}

// FindElementByID looks an element up in any dimension
func (r *Region) FindElementByID(id int) (*Element, bool) {
	dim, ok := r.elementDims[id]
	if !ok {
		return nil, false
	}
	return r.meshes[dim].FindElementByID(id)
}

// NextElementID returns an identifier greater than every element identifier in use
func (r *Region) NextElementID() int {
	next := 1
	for id := range r.elementDims {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// FindGroup returns the named group
func (r *Region) FindGroup(name string) (*Group, bool) {
	g, ok := r.groupByName[name]
	return g, ok
}

// CreateGroup returns the named group, creating it when absent
func (r *Region) CreateGroup(name string) *Group {
	if g, ok := r.groupByName[name]; ok {
		return g
	}
	g := &Group{name: name, region: r}
	r.groups = append(r.groups, g)
	r.groupByName[name] = g
	return g
}

// Groups returns the groups in creation order
func (r *Region) Groups() []*Group { return r.groups }

// GroupNames returns the group names sorted alphabetically
func (r *Region) GroupNames() []string {
	names := make([]string, 0, len(r.groups))
	for _, g := range r.groups {
		names = append(names, g.name)
	}
	sort.Strings(names)
	return names
}

// Incidence returns the face-to-parent incidence for faces of the given dimension
func (r *Region) Incidence(faceDimension int) *FaceIncidence {
	if faceDimension < 1 || faceDimension >= MaxDimension {
		return nil
	}
	if r.incidence[faceDimension] == nil {
		r.incidence[faceDimension] = buildFaceIncidence(r.meshes[faceDimension], r.meshes[faceDimension+1])
	}
	return r.incidence[faceDimension]
}

func (r *Region) invalidateTopology() {
	for d := range r.incidence {
		r.incidence[d] = nil
	}
	r.coordinatesChecked = false
}

// faceKey identifies a face by its node set regardless of ordering
func faceKey(nodes []int) string {
	sorted := make([]int, len(nodes))
	copy(sorted, nodes)
	sort.Ints(sorted)
	return fmt.Sprintf("%v", sorted)
}
