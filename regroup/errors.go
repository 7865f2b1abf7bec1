package regroup

import "fmt"

// LoadError reports an input mesh that could not be read
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// InvalidSurfaceKeywordError reports a group entry naming a surface other than inner or outer
type InvalidSurfaceKeywordError struct {
	Group   string
	Keyword string
}

func (e *InvalidSurfaceKeywordError) Error() string {
	return fmt.Sprintf("group %s: surface %q is not valid, expected %q or %q",
		e.Group, e.Keyword, SurfaceInner, SurfaceOuter)
}

// SaveError reports an output mesh that could not be written
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string { return fmt.Sprintf("save %s: %v", e.Path, e.Err) }
func (e *SaveError) Unwrap() error { return e.Err }

// WarningKind classifies the non-fatal conditions met while rebuilding groups
type WarningKind int

const (
	GroupNotFound WarningKind = iota + 1
	NoSurfaceCondition
)

func (k WarningKind) String() string {
	switch k {
	case GroupNotFound:
		return "GroupNotFound"
	case NoSurfaceCondition:
		return "NoSurfaceCondition"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a skipped group entry, the run carries on
type Warning struct {
	Kind    WarningKind
	Group   string
	Message string
}

func (w Warning) String() string { return fmt.Sprintf("%s: %s", w.Kind, w.Message) }
