package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/scaffoldgroup/utils"
)

// ChangeEvent summarises the group membership changes made within one change scope
type ChangeEvent struct {
	Groups  []string // Names of groups whose membership changed, sorted
	Added   int
	Removed int
}

// Changed reports whether any membership changed
func (ev ChangeEvent) Changed() bool { return ev.Added+ev.Removed > 0 }

// Listener receives one ChangeEvent per outermost change scope
type Listener func(ChangeEvent)

// Fieldmodule owns the fields of a region, creates conditionals over its elements and
// batches change notification for its groups.
type Fieldmodule struct {
	region    *Region
	fields    []*Field
	listeners []Listener

	changeLevel   int
	pendingGroups map[string]struct{}
	pending       ChangeEvent
}

func newFieldmodule(r *Region) *Fieldmodule {
	return &Fieldmodule{
		region:        r,
		pendingGroups: make(map[string]struct{}),
	}
}

func (fm *Fieldmodule) Region() *Region { return fm.region }

// AddListener registers a listener notified when an outermost change scope ends
func (fm *Fieldmodule) AddListener(l Listener) {
	fm.listeners = append(fm.listeners, l)
}

// ChangeScope defers listener notification until End is called on the outermost scope
type ChangeScope struct {
	fm    *Fieldmodule
	ended bool
}

// BeginChange opens a change scope. Scopes nest; listeners hear once, when the outermost
// scope ends, whatever happened inside it.
func (fm *Fieldmodule) BeginChange() *ChangeScope {
	fm.changeLevel++
	return &ChangeScope{fm: fm}
}

// End closes the scope. Calling End more than once has no further effect.
func (s *ChangeScope) End() {
	if s.ended {
		return
	}
	s.ended = true
	fm := s.fm
	fm.changeLevel--
	if fm.changeLevel == 0 {
		fm.notify()
	}
}

func (fm *Fieldmodule) recordChange(group string, added, removed int) {
	if added+removed == 0 {
		return
	}
	fm.pendingGroups[group] = struct{}{}
	fm.pending.Added += added
	fm.pending.Removed += removed
	if fm.changeLevel == 0 {
		fm.notify()
	}
}

func (fm *Fieldmodule) notify() {
	ev := fm.pending
	ev.Groups = make([]string, 0, len(fm.pendingGroups))
	for name := range fm.pendingGroups {
		ev.Groups = append(ev.Groups, name)
	}
	sort.Strings(ev.Groups)
	fm.pending = ChangeEvent{}
	fm.pendingGroups = make(map[string]struct{})
	for _, l := range fm.listeners {
		l(ev)
	}
}

// CreateConstant returns a conditional with the same value everywhere
func (fm *Fieldmodule) CreateConstant(value bool) Conditional {
	return constantConditional(value)
}

// CreateIsExterior returns a conditional true on the boundary of the highest dimension mesh
func (fm *Fieldmodule) CreateIsExterior() Conditional {
	return isExterior{region: fm.region}
}

// CreateIsOnFace returns a conditional true on elements that are the given face of a parent
func (fm *Fieldmodule) CreateIsOnFace(face utils.FaceType) Conditional {
	return isOnFace{region: fm.region, face: face}
}

func (fm *Fieldmodule) CreateAnd(a, b Conditional) Conditional { return andConditional{a, b} }
func (fm *Fieldmodule) CreateOr(a, b Conditional) Conditional  { return orConditional{a, b} }
func (fm *Fieldmodule) CreateNot(a Conditional) Conditional    { return notConditional{a} }

// CreateIsMember returns a conditional true on elements of the mesh group
func (fm *Fieldmodule) CreateIsMember(mg *MeshGroup) Conditional {
	return isMember{group: mg}
}

// CreateHasParentIn returns a conditional true on faces bounding an element of mg
func (fm *Fieldmodule) CreateHasParentIn(mg *MeshGroup) Conditional {
	return hasParentIn{region: fm.region, group: mg}
}

// CreateFieldFiniteElement creates a node based field with the given number of components
func (fm *Fieldmodule) CreateFieldFiniteElement(name string, components int) (*Field, error) {
	if name == "" {
		return nil, fmt.Errorf("field name must not be empty")
	}
	if components < 1 {
		return nil, fmt.Errorf("field %s: number of components must be positive, got %d", name, components)
	}
	if _, exists := fm.FindFieldByName(name); exists {
		return nil, fmt.Errorf("field %s already defined", name)
	}
	f := &Field{
		fm:            fm,
		name:          name,
		components:    components,
		finiteElement: true,
		values:        make(map[int][]float64),
	}
	fm.fields = append(fm.fields, f)
	fm.region.coordinatesChecked = false
	return f, nil
}

// FindFieldByName returns the named field
func (fm *Fieldmodule) FindFieldByName(name string) (*Field, bool) {
	for _, f := range fm.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// Fields returns the fields in creation order
func (fm *Fieldmodule) Fields() []*Field { return fm.fields }
