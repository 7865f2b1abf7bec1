package mesh

import "fmt"

// Group is a named set of elements, held as one MeshGroup per dimension
type Group struct {
	name       string
	region     *Region
	meshGroups [MaxDimension + 1]*MeshGroup
}

func (g *Group) Name() string    { return g.name }
func (g *Group) Region() *Region { return g.region }

// GetMeshGroup returns the group's elements of the given dimension, if that subgroup exists
func (g *Group) GetMeshGroup(dimension int) (*MeshGroup, bool) {
	if dimension < 1 || dimension > MaxDimension || g.meshGroups[dimension] == nil {
		return nil, false
	}
	return g.meshGroups[dimension], true
}

// CreateMeshGroup returns the subgroup for the dimension, creating an empty one when absent
func (g *Group) CreateMeshGroup(dimension int) (*MeshGroup, error) {
	if dimension < 1 || dimension > MaxDimension {
		return nil, fmt.Errorf("group %s: invalid mesh dimension %d", g.name, dimension)
	}
	if mg := g.meshGroups[dimension]; mg != nil {
		return mg, nil
	}
	mg := &MeshGroup{
		group:   g,
		mesh:    g.region.meshes[dimension],
		members: make(map[int]struct{}),
	}
	g.meshGroups[dimension] = mg
	return mg, nil
}

// Size returns the total number of elements in the group over all dimensions
func (g *Group) Size() int {
	n := 0
	for _, mg := range g.meshGroups {
		if mg != nil {
			n += mg.Size()
		}
	}
	return n
}

// MeshGroup is the subset of one mesh belonging to a group
type MeshGroup struct {
	group   *Group
	mesh    *Mesh
	members map[int]struct{} // Element IDs
}

func (mg *MeshGroup) Group() *Group  { return mg.group }
func (mg *MeshGroup) Mesh() *Mesh    { return mg.mesh }
func (mg *MeshGroup) Dimension() int { return mg.mesh.dimension }
func (mg *MeshGroup) Size() int      { return len(mg.members) }

func (mg *MeshGroup) fieldmodule() *Fieldmodule { return mg.group.region.fieldmodule }

// ContainsElement reports membership of the element
func (mg *MeshGroup) ContainsElement(e *Element) bool {
	if e.Dimension() != mg.mesh.dimension {
		return false
	}
	_, ok := mg.members[e.ID]
	return ok
}

// Elements returns the members in mesh iteration order
func (mg *MeshGroup) Elements() []*Element {
	out := make([]*Element, 0, len(mg.members))
	for _, e := range mg.mesh.elements {
		if _, ok := mg.members[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out
}

// ElementIDs returns the member identifiers in mesh iteration order
func (mg *MeshGroup) ElementIDs() []int {
	elems := mg.Elements()
	ids := make([]int, len(elems))
	for i, e := range elems {
		ids[i] = e.ID
	}
	return ids
}

// AddElement adds an element of the group's mesh
func (mg *MeshGroup) AddElement(e *Element) error {
	if owned, ok := mg.mesh.byID[e.ID]; !ok || owned != e {
		return fmt.Errorf("group %s: element %d is not in the %dD mesh", mg.group.name, e.ID, mg.Dimension())
	}
	if _, ok := mg.members[e.ID]; ok {
		return nil
	}
	mg.members[e.ID] = struct{}{}
	mg.fieldmodule().recordChange(mg.group.name, 1, 0)
	return nil
}

// RemoveElement removes an element, returning whether it was a member
func (mg *MeshGroup) RemoveElement(e *Element) bool {
	if !mg.ContainsElement(e) {
		return false
	}
	delete(mg.members, e.ID)
	mg.fieldmodule().recordChange(mg.group.name, 0, 1)
	return true
}

// AddElementsConditional adds every element of the mesh for which the conditional is true
func (mg *MeshGroup) AddElementsConditional(cond Conditional) int {
	var add []*Element
	for _, e := range mg.mesh.elements {
		if _, ok := mg.members[e.ID]; !ok && cond.Evaluate(e) {
			add = append(add, e)
		}
	}
	scope := mg.fieldmodule().BeginChange()
	defer scope.End()
	for _, e := range add {
		mg.members[e.ID] = struct{}{}
	}
	mg.fieldmodule().recordChange(mg.group.name, len(add), 0)
	return len(add)
}

// RemoveElementsConditional removes every member for which the conditional is true. The
// members to remove are all selected before the group is touched, and the removal is
// reported as a single change.
func (mg *MeshGroup) RemoveElementsConditional(cond Conditional) int {
	var remove []int
	for _, e := range mg.mesh.elements {
		if _, ok := mg.members[e.ID]; ok && cond.Evaluate(e) {
			remove = append(remove, e.ID)
		}
	}
	scope := mg.fieldmodule().BeginChange()
	defer scope.End()
	for _, id := range remove {
		delete(mg.members, id)
	}
	mg.fieldmodule().recordChange(mg.group.name, 0, len(remove))
	return len(remove)
}

// RemoveAllElements empties the mesh group
func (mg *MeshGroup) RemoveAllElements() int {
	return mg.RemoveElementsConditional(constantConditional(true))
}
