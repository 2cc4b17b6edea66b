package analyzer

import (
	"github.com/dlclark/regexp2"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
)

func (t *Typer) InferFixnum(n *ast.Fixnum) typesystem.Type {
	return t.resolve(n, t.Registry.FixnumType(n.Value))
}

func (t *Typer) InferFloat(n *ast.Float) typesystem.Type {
	return t.resolve(n, t.Registry.FloatType(n.Value))
}

func (t *Typer) InferString(n *ast.String) typesystem.Type {
	return t.resolve(n, t.Registry.StringType())
}

func (t *Typer) InferBoolean(n *ast.Boolean) typesystem.Type {
	return t.resolve(n, t.Registry.BooleanType())
}

func (t *Typer) InferNull(n *ast.Null) typesystem.Type {
	return t.resolve(n, t.Registry.NullType())
}

// InferRegexp checks the pattern once; a bad pattern is reported but the
// literal still has the regex type.
func (t *Typer) InferRegexp(n *ast.Regexp) typesystem.Type {
	if _, err := regexp2.Compile(n.Pattern, regexp2.None); err != nil {
		t.report(diagnostics.NewError(diagnostics.ErrL001, n.Pos(), "/%s/: %v", n.Pattern, err))
	}
	return t.resolve(n, t.Registry.RegexType())
}

// InferArray resolves immediately; elements that need more work are queued
// on their own.
func (t *Typer) InferArray(n *ast.Array) typesystem.Type {
	for _, e := range n.Elements {
		t.Infer(e)
	}
	return t.resolve(n, t.Registry.ArrayType())
}

// InferStringConcat types the node as String on every attempt but marks it
// resolved only once all parts are.
func (t *Typer) InferStringConcat(n *ast.StringConcat) typesystem.Type {
	done := true
	for _, p := range n.Parts {
		t.Infer(p)
		done = done && p.Resolved()
	}
	typ := t.Registry.StringType()
	n.SetInferredType(typ)
	if done {
		n.MarkResolved()
	}
	return typ
}

func (t *Typer) InferToString(n *ast.ToString) typesystem.Type {
	t.Infer(n.Body)
	typ := t.Registry.StringType()
	n.SetInferredType(typ)
	if allResolved(n.Body) {
		n.MarkResolved()
	}
	return typ
}

func (t *Typer) InferEmptyArray(n *ast.EmptyArray) typesystem.Type {
	size := t.Infer(n.Size)
	elem, ok := t.lookup(n.TypeName)
	if !ok {
		return t.waitType(n, n.TypeName)
	}
	if size == nil {
		return t.wait(n, "array size has no type yet")
	}
	typ := typesystem.ArrayOf(elem)
	if !allResolved(n.Size) {
		return typ
	}
	return t.resolve(n, typ)
}
