package element

// Attr is a single name/value attribute of a Node.
type Attr struct {
	Name  string
	Value string
}

// Node is a generic, ordered in-memory element tree. Format front-ends that
// have no native tree of their own translate into Nodes.
type Node struct {
	Tag   string
	Attrs []Attr
	Kids  []*Node
}

var (
	_ Element  = (*Node)(nil)
	_ Document = (*Node)(nil)
)

// NewNode creates a node with the given tag and attributes. Attributes are
// given as alternating name/value pairs; a trailing odd name is ignored.
func NewNode(tag string, attrs ...string) *Node {
	n := &Node{Tag: tag}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.SetAttr(attrs[i], attrs[i+1])
	}
	return n
}

// Append adds children to the node and returns the node for chaining.
func (n *Node) Append(kids ...*Node) *Node {
	n.Kids = append(n.Kids, kids...)
	return n
}

// SetAttr sets an attribute, replacing an existing one with the same name.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Name implements Element.
func (n *Node) Name() string { return n.Tag }

// Attribute implements Element.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// FirstChild implements Element.
func (n *Node) FirstChild(name string) (Element, bool) {
	for _, k := range n.Kids {
		if matches(name, k.Tag) {
			return k, true
		}
	}
	return nil, false
}

// Children implements Element.
func (n *Node) Children(name string) []Element {
	out := []Element{}
	for _, k := range n.Kids {
		if matches(name, k.Tag) {
			out = append(out, k)
		}
	}
	return out
}

// Root implements Document; a Node is the root of its own tree.
func (n *Node) Root() Element { return n }

// Clone implements Document.
func (n *Node) Clone() Document { return n.Copy() }

// Copy returns a deep copy of the node and all of its descendants.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag}
	if n.Attrs != nil {
		c.Attrs = make([]Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if n.Kids != nil {
		c.Kids = make([]*Node, len(n.Kids))
		for i, k := range n.Kids {
			c.Kids[i] = k.Copy()
		}
	}
	return c
}
