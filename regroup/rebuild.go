package regroup

import (
	"fmt"
	"log/slog"

	"github.com/notargets/scaffoldgroup/InputParameters"
	"github.com/notargets/scaffoldgroup/logging"
	"github.com/notargets/scaffoldgroup/mesh"
)

// Mode selects how a face group is recomputed
type Mode string

const (
	// ModeFilter keeps the face group members lying on any of the entry's surfaces
	ModeFilter Mode = "filter"
	// ModeRebuildInner discards the face group and refills it with the inner faces bounding
	// the group's volume elements, the entry's surfaces are ignored
	ModeRebuildInner Mode = "rebuild-inner"
)

// ParseMode accepts the mode names, an empty string is ModeFilter
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFilter:
		return ModeFilter, nil
	case ModeRebuildInner:
		return ModeRebuildInner, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected %q or %q", s, ModeFilter, ModeRebuildInner)
}

// Observer is told about each processed group and each warning
type Observer interface {
	GroupRebuilt(report GroupReport)
	Warned(w Warning)
}

// Options controls a run. The zero value filters and logs nothing.
type Options struct {
	Mode     Mode
	Logger   *slog.Logger
	Observer Observer
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeFilter
	}
	return o.Mode
}

func (o Options) warn(w Warning) Warning {
	o.logger().Warn(w.Message, "kind", w.Kind.String(), "group", w.Group)
	if o.Observer != nil {
		o.Observer.Warned(w)
	}
	return w
}

// GroupReport describes what happened to one group's face group
type GroupReport struct {
	Name    string
	Mode    Mode
	Skipped bool // A warning was raised and the group left untouched
	Created bool // The face group did not exist before
	Before  int
	After   int
	Removed int
	Added   int
}

// RebuildGroup recomputes the face group of one configured group. Keywords are validated
// before anything else; an invalid one is returned as an *InvalidSurfaceKeywordError. A
// missing group or an entry without keywords yields a warning and leaves the region as is.
func RebuildGroup(r *mesh.Region, sp *SurfacePredicates, entry InputParameters.GroupEntry,
	opts Options) (GroupReport, []Warning, error) {
	report := GroupReport{Name: entry.Name, Mode: opts.mode()}
	if err := ValidateSurfaces(entry.Name, entry.Surfaces); err != nil {
		return report, nil, err
	}

	group, ok := r.FindGroup(entry.Name)
	if !ok {
		report.Skipped = true
		return report, []Warning{opts.warn(Warning{
			Kind:    GroupNotFound,
			Group:   entry.Name,
			Message: fmt.Sprintf("did not find group %s", entry.Name),
		})}, nil
	}
	if len(entry.Surfaces) == 0 && report.Mode == ModeFilter {
		report.Skipped = true
		return report, []Warning{opts.warn(Warning{
			Kind:    NoSurfaceCondition,
			Group:   entry.Name,
			Message: fmt.Sprintf("no surface condition for group %s", entry.Name),
		})}, nil
	}

	_, existed := group.GetMeshGroup(2)
	faces, err := group.CreateMeshGroup(2)
	if err != nil {
		return report, nil, err
	}
	report.Created = !existed
	report.Before = faces.Size()

	scope := r.Fieldmodule().BeginChange()
	defer scope.End()

	switch report.Mode {
	case ModeFilter:
		cond, err := sp.Condition(entry.Name, entry.Surfaces)
		if err != nil {
			return report, nil, err
		}
		report.Removed = faces.RemoveElementsConditional(r.Fieldmodule().CreateNot(cond))
	case ModeRebuildInner:
		report.Removed, report.Added = rebuildInner(r, sp, group, faces)
	default:
		return report, nil, fmt.Errorf("unknown mode %q", report.Mode)
	}
	report.After = faces.Size()

	opts.logger().Debug("rebuilt group", "group", entry.Name, "mode", string(report.Mode),
		"before", report.Before, "after", report.After, "created", report.Created)
	if opts.Observer != nil {
		opts.Observer.GroupRebuilt(report)
	}
	return report, nil, nil
}

// rebuildInner empties the face group, then adds the inner faces bounding the group's 3D
// elements. A group without 3D elements draws candidates from its previous faces instead.
func rebuildInner(r *mesh.Region, sp *SurfacePredicates, group *mesh.Group, faces *mesh.MeshGroup) (removed, added int) {
	fm := r.Fieldmodule()
	var candidates mesh.Conditional
	if volumes, ok := group.GetMeshGroup(3); ok && volumes.Size() > 0 {
		candidates = fm.CreateHasParentIn(volumes)
	} else {
		previous := make(map[int]struct{}, faces.Size())
		for _, id := range faces.ElementIDs() {
			previous[id] = struct{}{}
		}
		candidates = mesh.ConditionalFunc(func(e *mesh.Element) bool {
			_, ok := previous[e.ID]
			return ok
		})
	}
	removed = faces.RemoveAllElements()
	added = faces.AddElementsConditional(fm.CreateAnd(sp.Inner, candidates))
	return removed, added
}
