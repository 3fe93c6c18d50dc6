// Package xmldoc parses controller deployment XML into a namespace-aware
// element tree implementing element.Document.
//
// Every element lookup is qualified against the document namespace: elements
// declared in any other namespace are skipped by FirstChild and Children as
// if they were not there. Attributes are matched by local name when they are
// unprefixed or carry the document namespace.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/ctrldeploy/internal/element"
)

// Namespace is the namespace URI of controller deployment documents.
const Namespace = "http://www.openremote.org"

// Document is a parsed controller XML document.
type Document struct {
	namespace string
	root      *Element
}

var _ element.Document = (*Document)(nil)

// Element is a single XML element.
type Element struct {
	name  xml.Name
	attrs []xml.Attr
	kids  []*Element
	ns    string
}

var _ element.Element = (*Element)(nil)

// Parse reads an XML document in the controller namespace.
func Parse(r io.Reader) (*Document, error) {
	return ParseNS(r, Namespace)
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseNS reads an XML document whose root element must be in namespace ns.
func ParseNS(r io.Reader, ns string) (*Document, error) {
	dec := xml.NewDecoder(r)

	var stack []*Element
	var root *Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{name: t.Name, attrs: plainAttrs(t.Attr), ns: ns}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("parsing xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.kids = append(parent.kids, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}

	if root == nil {
		return nil, errors.New("parsing xml: document has no root element")
	}
	if root.name.Space != ns {
		return nil, fmt.Errorf("parsing xml: root element <%s> is in namespace %q, want %q", root.name.Local, root.name.Space, ns)
	}
	return &Document{namespace: ns, root: root}, nil
}

// plainAttrs drops namespace declarations, which are not data attributes.
func plainAttrs(in []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(in))
	for _, a := range in {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Namespace returns the namespace all lookups are qualified against.
func (d *Document) Namespace() string { return d.namespace }

// Root implements element.Document.
func (d *Document) Root() element.Element { return d.root }

// Clone implements element.Document.
func (d *Document) Clone() element.Document {
	return &Document{namespace: d.namespace, root: d.root.copy()}
}

func (e *Element) copy() *Element {
	c := &Element{name: e.name, ns: e.ns}
	c.attrs = make([]xml.Attr, len(e.attrs))
	copy(c.attrs, e.attrs)
	if e.kids != nil {
		c.kids = make([]*Element, len(e.kids))
		for i, k := range e.kids {
			c.kids[i] = k.copy()
		}
	}
	return c
}

// Name implements element.Element.
func (e *Element) Name() string { return e.name.Local }

// Attribute implements element.Element.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Local == name && (a.Name.Space == "" || a.Name.Space == e.ns) {
			return a.Value, true
		}
	}
	return "", false
}

// FirstChild implements element.Element.
func (e *Element) FirstChild(name string) (element.Element, bool) {
	for _, k := range e.kids {
		if e.visible(k, name) {
			return k, true
		}
	}
	return nil, false
}

// Children implements element.Element.
func (e *Element) Children(name string) []element.Element {
	out := []element.Element{}
	for _, k := range e.kids {
		if e.visible(k, name) {
			out = append(out, k)
		}
	}
	return out
}

func (e *Element) visible(k *Element, name string) bool {
	if k.name.Space != e.ns {
		return false
	}
	return name == element.Any || k.name.Local == name
}
