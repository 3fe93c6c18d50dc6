// Package yamldoc reads controller deployments written in YAML.
//
// Mapping keys map onto the element model as follows: a scalar value is an
// attribute, a mapping value is a single child element, and a sequence of
// mappings is one child element per item, in order. Null scalars are absent
// attributes, so an empty section is written as an empty mapping
// (`sensors: {}`).
//
//	commands:
//	  command:
//	    - id: 1
//	      protocol: knx
//	      property:
//	        - {name: group, value: 1/1/1}
package yamldoc

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/ctrldeploy/internal/element"
	"gopkg.in/yaml.v3"
)

// RootTag is the tag given to the document element of a YAML deployment.
const RootTag = "deployment"

// Parse parses a YAML deployment document.
func Parse(data []byte) (*element.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("parsing yaml: empty document")
	}

	root := element.NewNode(RootTag)
	if err := fill(root, doc.Content[0]); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return root, nil
}

// fill copies the entries of a YAML mapping into node.
func fill(node *element.Node, m *yaml.Node) error {
	m = resolve(m)
	if isNull(m) {
		return nil
	}
	if m.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: <%s> must be a mapping", m.Line, node.Tag)
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], resolve(m.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: keys must be scalars", key.Line)
		}
		name := key.Value

		switch val.Kind {
		case yaml.ScalarNode:
			if !isNull(val) {
				node.SetAttr(name, val.Value)
			}
		case yaml.MappingNode:
			kid := element.NewNode(name)
			if err := fill(kid, val); err != nil {
				return err
			}
			node.Append(kid)
		case yaml.SequenceNode:
			for _, item := range val.Content {
				kid := element.NewNode(name)
				if err := fill(kid, item); err != nil {
					return err
				}
				node.Append(kid)
			}
		default:
			return fmt.Errorf("line %d: unsupported value for %q", val.Line, name)
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
