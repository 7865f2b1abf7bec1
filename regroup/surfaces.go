package regroup

import (
	"strings"

	"github.com/notargets/scaffoldgroup/mesh"
	"github.com/notargets/scaffoldgroup/utils"
)

// Surface keywords accepted in a group entry
const (
	SurfaceInner = "inner"
	SurfaceOuter = "outer"
)

// SurfacePredicates classify the 2D elements of one region. Inner faces are exterior faces
// lying on the xi3=0 face of their element, outer faces lie on xi3=1.
type SurfacePredicates struct {
	Exterior mesh.Conditional
	Inner    mesh.Conditional
	Outer    mesh.Conditional

	fm *mesh.Fieldmodule
}

// ClassifySurfaces builds the predicates for a region. They are read-only and are shared by
// every group processed against that region.
func ClassifySurfaces(r *mesh.Region) *SurfacePredicates {
	fm := r.Fieldmodule()
	exterior := fm.CreateIsExterior()
	return &SurfacePredicates{
		Exterior: exterior,
		Inner:    fm.CreateAnd(exterior, fm.CreateIsOnFace(utils.FaceTypeXI3_0)),
		Outer:    fm.CreateAnd(exterior, fm.CreateIsOnFace(utils.FaceTypeXI3_1)),
		fm:       fm,
	}
}

// ValidateSurfaces checks every keyword of a group entry
func ValidateSurfaces(group string, keywords []string) error {
	for _, kw := range keywords {
		switch strings.TrimSpace(kw) {
		case SurfaceInner, SurfaceOuter:
		default:
			return &InvalidSurfaceKeywordError{Group: group, Keyword: kw}
		}
	}
	return nil
}

// Condition ORs the predicates named by the keywords, in order. It returns nil when there are
// no keywords.
func (sp *SurfacePredicates) Condition(group string, keywords []string) (mesh.Conditional, error) {
	var cond mesh.Conditional
	for _, kw := range keywords {
		var next mesh.Conditional
		switch strings.TrimSpace(kw) {
		case SurfaceInner:
			next = sp.Inner
		case SurfaceOuter:
			next = sp.Outer
		default:
			return nil, &InvalidSurfaceKeywordError{Group: group, Keyword: kw}
		}
		if cond == nil {
			cond = next
		} else {
			cond = sp.fm.CreateOr(cond, next)
		}
	}
	return cond, nil
}
