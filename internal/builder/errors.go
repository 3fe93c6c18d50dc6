package builder

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a fatal build failure.
type Kind string

const (
	KindMissingSection      Kind = "missing_section"
	KindMalformedID         Kind = "malformed_identifier"
	KindMissingAttribute    Kind = "missing_attribute"
	KindMissingReference    Kind = "missing_reference"
	KindUnresolvedReference Kind = "unresolved_reference"
	KindDuplicateID         Kind = "duplicate_identifier"
)

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrMissingSection      = errors.New("missing section")
	ErrMalformedID         = errors.New("malformed identifier")
	ErrMissingAttribute    = errors.New("missing required attribute")
	ErrMissingReference    = errors.New("missing command reference")
	ErrUnresolvedReference = errors.New("unknown command referenced")
	ErrDuplicateID         = errors.New("duplicate command identifier")
)

var sentinels = map[Kind]error{
	KindMissingSection:      ErrMissingSection,
	KindMalformedID:         ErrMalformedID,
	KindMissingAttribute:    ErrMissingAttribute,
	KindMissingReference:    ErrMissingReference,
	KindUnresolvedReference: ErrUnresolvedReference,
	KindDuplicateID:         ErrDuplicateID,
}

// BuildError describes why a deployment could not be built. It carries enough
// context to locate the offending element: the entity kind ("command",
// "sensor", "section"), its position in the section, and its id and name when
// they were already known.
type BuildError struct {
	Kind      Kind
	Entity    string
	Index     int
	ID        string
	Name      string
	Attribute string
	Err       error
}

func (e *BuildError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(sentinels[e.Kind].Error())
	if e.Kind == KindMissingSection {
		fmt.Fprintf(&b, " %q", e.Name)
		return b.String()
	}
	fmt.Fprintf(&b, " in %s", e.Entity)
	switch {
	case e.ID != "" && e.Name != "":
		fmt.Fprintf(&b, " %s/%s", e.ID, e.Name)
	case e.ID != "" || e.Name != "":
		fmt.Fprintf(&b, " %s%s", e.ID, e.Name)
	case e.Index >= 0:
		fmt.Fprintf(&b, " #%d", e.Index)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " (attribute %q)", e.Attribute)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the Kind sentinel and the underlying cause.
func (e *BuildError) Unwrap() []error {
	if e == nil {
		return nil
	}
	out := []error{sentinels[e.Kind]}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// IsKind reports whether err is a BuildError of the given kind.
func IsKind(err error, kind Kind) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
