package builder

import "fmt"

// Diagnostic is a non-fatal finding recorded during a build. The element it
// describes was skipped; the build itself succeeded.
type Diagnostic struct {
	Section string // section the element belongs to, e.g. "config"
	Index   int    // position of the element within its section
	Name    string // name attribute of the element, if any
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s #%d %q: %s", d.Section, d.Index, d.Name, d.Message)
}

// Diagnostics is the list of soft findings of one build, in document order.
type Diagnostics []Diagnostic

// Names returns the Name of every diagnostic.
func (ds Diagnostics) Names() []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}
