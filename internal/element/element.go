// Package element defines the read-only accessor contract the deployment
// builder uses to walk a parsed controller document, independent of the
// document's source format.
//
// A front-end (XML, HCL, YAML) parses raw markup into a tree and exposes every
// node through Element. The builder never inspects node types or source
// syntax; it only asks for attributes by name and for child elements by tag.
package element

// Any matches every direct child element, regardless of its tag.
const Any = "*"

// Element is a single node of a parsed deployment document.
type Element interface {
	// Name returns the local tag name of the element.
	Name() string

	// Attribute returns the value of the named attribute. The boolean is false
	// when the attribute is absent or explicitly null in the source.
	Attribute(name string) (string, bool)

	// FirstChild returns the first direct child element with the given tag.
	FirstChild(name string) (Element, bool)

	// Children returns all direct child elements with the given tag, in
	// document order. It returns an empty slice if there are none.
	Children(name string) []Element
}

// Document is a parsed deployment document.
type Document interface {
	// Root returns the document element.
	Root() Element

	// Clone returns a deep, independent copy of the document. A clone can be
	// read concurrently with the original.
	Clone() Document
}

// matches reports whether tag satisfies the lookup name.
func matches(name, tag string) bool {
	return name == Any || name == tag
}
