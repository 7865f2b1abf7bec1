package mesh

import "github.com/notargets/scaffoldgroup/utils"

// Conditional is a boolean field evaluated per element
type Conditional interface {
	Evaluate(e *Element) bool
}

// ConditionalFunc adapts a plain function to a Conditional
type ConditionalFunc func(e *Element) bool

func (f ConditionalFunc) Evaluate(e *Element) bool { return f(e) }

type constantConditional bool

func (c constantConditional) Evaluate(*Element) bool { return bool(c) }

type andConditional struct{ a, b Conditional }

func (c andConditional) Evaluate(e *Element) bool { return c.a.Evaluate(e) && c.b.Evaluate(e) }

type orConditional struct{ a, b Conditional }

func (c orConditional) Evaluate(e *Element) bool { return c.a.Evaluate(e) || c.b.Evaluate(e) }

type notConditional struct{ a Conditional }

func (c notConditional) Evaluate(e *Element) bool { return !c.a.Evaluate(e) }

// isExterior is true for faces of the highest dimension mesh bounded by exactly one parent,
// and for lower dimension elements lying on such a face.
type isExterior struct{ region *Region }

func (c isExterior) Evaluate(e *Element) bool {
	top := c.region.HighestDimension()
	d := e.Dimension()
	if d >= top {
		return false
	}
	fi := c.region.Incidence(d)
	if d == top-1 {
		return fi.NumParents(e) == 1
	}
	for _, p := range fi.Parents(e) {
		if c.Evaluate(p.Element) {
			return true
		}
	}
	return false
}

// isOnFace is true for elements that are the given face of a highest dimension parent
type isOnFace struct {
	region *Region
	face   utils.FaceType
}

func (c isOnFace) Evaluate(e *Element) bool {
	switch c.face {
	case utils.FaceTypeAll:
		return true
	case utils.FaceTypeInvalid:
		return false
	}
	top := c.region.HighestDimension()
	d := e.Dimension()
	if d >= top {
		return c.face == utils.FaceTypeNoFace
	}
	parents := c.region.Incidence(d).Parents(e)
	switch c.face {
	case utils.FaceTypeNoFace:
		return len(parents) == 0
	case utils.FaceTypeAnyFace:
		return len(parents) > 0
	}
	for _, p := range parents {
		if p.Element.Dimension() == top {
			if p.Element.Type.GetLocalFaces()[p.Face].Face == c.face {
				return true
			}
		} else if c.Evaluate(p.Element) {
			return true
		}
	}
	return false
}

type isMember struct{ group *MeshGroup }

func (c isMember) Evaluate(e *Element) bool { return c.group.ContainsElement(e) }

type hasParentIn struct {
	region *Region
	group  *MeshGroup
}

func (c hasParentIn) Evaluate(e *Element) bool {
	if e.Dimension()+1 != c.group.Dimension() {
		return false
	}
	for _, p := range c.region.Incidence(e.Dimension()).Parents(e) {
		if c.group.ContainsElement(p.Element) {
			return true
		}
	}
	return false
}
