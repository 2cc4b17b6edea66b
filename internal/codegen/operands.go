package codegen

import (
	"github.com/funvibe/dubyc/internal/analyzer"
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// frag is a rendered expression and the precedence of its outermost
// operator.
type frag struct {
	text string
	prec int
}

func (f frag) paren(parent int, right bool) string {
	return builder.Parenthesize(f.text, f.prec, parent, right)
}

func primary(text string) frag { return frag{text: text, prec: builder.PrecPrimary} }

type callKind int

const (
	callMethod callKind = iota
	callOperator
	callArray
	callNilCheck
)

func classify(n *ast.Call) callKind {
	switch {
	case n.Method != nil:
		return callMethod
	case analyzer.IsOperator(n.Name):
		return callOperator
	case n.Name == config.NilCheckMethodName && len(n.Args) == 0:
		return callNilCheck
	case n.Target != nil && typesystem.IsArray(n.Target.InferredType()):
		return callArray
	}
	return callMethod
}

// simple reports whether n can be rendered as an inline expression: no
// operand needs statements and the node itself has a value.
func (g *Generator) simple(n ast.Node) bool {
	if n == nil {
		return true
	}
	switch n := n.(type) {
	case *ast.Fixnum, *ast.Float, *ast.String, *ast.Boolean, *ast.Null, *ast.Regexp,
		*ast.Local, *ast.Field, *ast.Self, *ast.Constant:
		return true
	case *ast.Array:
		return g.allSimple(n.Elements...)
	case *ast.StringConcat:
		return g.allSimple(n.Parts...)
	case *ast.ToString:
		return g.simple(n.Body)
	case *ast.EmptyArray:
		return g.simple(n.Size)
	case *ast.LocalAssignment:
		return g.simple(n.Value)
	case *ast.FieldAssignment:
		return g.simple(n.Value)
	case *ast.Body:
		return len(n.Statements) == 1 && g.simple(n.Statements[0])
	case *ast.If:
		return n.Then != nil && n.Else != nil && hasValue(n) && g.allSimple(n.Condition, n.Then, n.Else)
	case *ast.Call:
		if classify(n) == callNilCheck && primitiveTarget(n) {
			return stable(n.Target, nil)
		}
		if classify(n) == callMethod && (n.Method == nil || n.Method.ReturnsVoid()) {
			return false
		}
		return g.simple(n.Target) && g.allSimple(n.Args...)
	case *ast.FunctionalCall:
		if !n.IsCast() && (n.Method == nil || n.Method.ReturnsVoid()) {
			return false
		}
		return g.allSimple(n.Args...)
	}
	return false
}

// primitiveTarget reports whether the receiver of n has a primitive type.
func primitiveTarget(n *ast.Call) bool {
	if n.Target == nil {
		return false
	}
	_, ok := typesystem.AsPrimitive(n.Target.InferredType())
	return ok
}

func (g *Generator) allSimple(nodes ...ast.Node) bool {
	for _, n := range nodes {
		if !g.simple(n) {
			return false
		}
	}
	return true
}

func hasValue(n ast.Node) bool {
	t := n.InferredType()
	return t != nil && !typesystem.IsVoid(t) && !typesystem.IsUnreachable(t)
}

// operands renders nodes in order. A node that is not simple is lowered
// into a temporary first; an earlier operand whose value that lowering
// could change is copied into a temporary ahead of it, so operands are
// still evaluated left to right.
func (g *Generator) operands(nodes ...ast.Node) ([]frag, error) {
	last := -1
	for i, n := range nodes {
		if !g.simple(n) {
			last = i
		}
	}
	out := make([]frag, len(nodes))
	for i, n := range nodes {
		var err error
		if !g.simple(n) || (i < last && !stable(n, nodes[i+1:last+1])) {
			out[i], err = g.hoist(n)
		} else {
			out[i], err = g.fragment(n)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// operand renders a single node, hoisting it when it is not simple.
func (g *Generator) operand(n ast.Node) (frag, error) {
	f, err := g.operands(n)
	if err != nil {
		return frag{}, err
	}
	return f[0], nil
}

// hoist stores the value of n into a fresh temporary.
func (g *Generator) hoist(n ast.Node) (frag, error) {
	tmp := g.method().Tmp(tempType(n.InferredType(), g.Registry))
	if err := g.storeTo(tmp+" = ", n); err != nil {
		return frag{}, err
	}
	return primary(tmp), nil
}

func tempType(t typesystem.Type, reg *typesystem.Registry) typesystem.Type {
	switch {
	case t == nil, t.Kind() == typesystem.KindNull, typesystem.IsUnreachable(t), typesystem.IsVoid(t):
		return reg.Object
	case typesystem.IsMeta(t):
		return reg.Object
	}
	return typesystem.Underlying(t)
}

// stable reports whether evaluating the later nodes cannot change the value
// of n.
func stable(n ast.Node, later []ast.Node) bool {
	switch n := n.(type) {
	case *ast.Fixnum, *ast.Float, *ast.String, *ast.Boolean, *ast.Null, *ast.Self, *ast.Constant:
		return true
	case *ast.Local:
		for _, l := range later {
			assigned := false
			ast.Walk(l, func(d ast.Node) bool {
				if a, ok := d.(*ast.LocalAssignment); ok && a.Name == n.Name {
					assigned = true
				}
				return !assigned
			})
			if assigned {
				return false
			}
		}
		return true
	}
	return false
}

// predicate renders a condition. References test for null.
func (g *Generator) predicate(n ast.Node) (frag, error) {
	f, err := g.operand(n)
	if err != nil {
		return frag{}, err
	}
	t := n.InferredType()
	if t != nil && t.Kind().IsReference() {
		p := builder.Precedence("!=")
		return frag{text: f.paren(p, false) + " != null", prec: p}, nil
	}
	return f, nil
}
