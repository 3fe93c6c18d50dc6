// Package hcldoc reads controller deployments written in HCL.
//
// Blocks become elements and attributes become element attributes. Attribute
// expressions are evaluated once, at parse time, against an evaluation context
// that exposes `var.*` variables and a small set of string functions, and the
// results are converted to strings. An attribute that evaluates to null is
// treated as absent.
//
//	commands {
//	  command {
//	    id       = 1
//	    protocol = "knx"
//	    property {
//	      name  = "group"
//	      value = "1/1/1"
//	    }
//	  }
//	}
package hcldoc

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/ctrldeploy/internal/element"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// RootTag is the tag given to the document element of an HCL deployment.
const RootTag = "deployment"

type options struct {
	vars map[string]cty.Value
}

// Option configures Parse.
type Option func(*options)

// WithVariables exposes values to expressions as `var.<name>`.
func WithVariables(vars map[string]cty.Value) Option {
	return func(o *options) {
		for k, v := range vars {
			o.vars[k] = v
		}
	}
}

// WithStringVariables is WithVariables for plain string values.
func WithStringVariables(vars map[string]string) Option {
	return func(o *options) {
		for k, v := range vars {
			o.vars[k] = cty.StringVal(v)
		}
	}
}

// Parse parses and evaluates an HCL deployment. The filename is only used in
// diagnostics.
func Parse(src []byte, filename string, opts ...Option) (*element.Node, error) {
	o := &options{vars: map[string]cty.Value{}}
	for _, opt := range opts {
		opt(o)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, file.Body)
	}

	root, diags := translate(RootTag, body, evalContext(o))
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate HCL file %s: %w", filename, diags)
	}
	return root, nil
}

func evalContext(o *options) *hcl.EvalContext {
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"trimspace": stdlib.TrimSpaceFunc,
		},
	}
	if len(o.vars) > 0 {
		ctx.Variables["var"] = cty.ObjectVal(o.vars)
	}
	return ctx
}

// translate converts one body into a node, recursing into nested blocks.
func translate(tag string, body *hclsyntax.Body, ctx *hcl.EvalContext) (*element.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	node := element.NewNode(tag)

	// Attributes are a map in the syntax tree; restore source order.
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	for _, a := range attrs {
		s, present, attrDiags := evalString(a, ctx)
		diags = append(diags, attrDiags...)
		if present {
			node.SetAttr(a.Name, s)
		}
	}

	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected block label",
				Detail:   fmt.Sprintf("Block %q does not take labels; use attributes instead.", block.Type),
				Subject:  block.LabelRanges[0].Ptr(),
			})
			continue
		}
		kid, kidDiags := translate(block.Type, block.Body, ctx)
		diags = append(diags, kidDiags...)
		node.Append(kid)
	}

	return node, diags
}

// evalString evaluates an attribute and renders it as a string.
func evalString(a *hclsyntax.Attribute, ctx *hcl.EvalContext) (string, bool, hcl.Diagnostics) {
	val, diags := a.Expr.Value(ctx)
	if diags.HasErrors() {
		return "", false, diags
	}
	if val.IsNull() {
		return "", false, diags
	}
	if !val.IsWhollyKnown() {
		return "", false, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown value",
			Detail:   fmt.Sprintf("The value of %q cannot be determined.", a.Name),
			Subject:  a.Expr.Range().Ptr(),
		})
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute value",
			Detail:   fmt.Sprintf("The value of %q must be a string, number or bool: %s.", a.Name, err),
			Subject:  a.Expr.Range().Ptr(),
		})
	}
	return str.AsString(), true, diags
}
