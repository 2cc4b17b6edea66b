package codegen

import (
	"strings"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// CompileLocalDeclaration declares the local with its default value.
func (g *Generator) CompileLocalDeclaration(n *ast.LocalDeclaration, expression bool) error {
	name := builder.JavaName(n.Name)
	g.method().DeclareDefault(name, n.InferredType())
	if expression {
		return g.storeText(n, name)
	}
	return nil
}

// CompileLocalAssignment declares the local on its first assignment, with
// the value as initializer when it can be rendered inline.
func (g *Generator) CompileLocalAssignment(n *ast.LocalAssignment, expression bool) error {
	m := g.method()
	name := builder.JavaName(n.Name)
	typ := n.InferredType()

	if expression && g.simple(n) {
		value, err := g.fragment(n.Value)
		if err != nil {
			return err
		}
		m.DeclareDefault(name, typ)
		g.inline(name+" = "+value.paren(builder.PrecAssign, true), builder.PrecAssign)
		return nil
	}

	if !m.IsLocal(name) && g.simple(n.Value) {
		value, err := g.fragment(n.Value)
		if err != nil {
			return err
		}
		m.DeclareLocal(name, typ, value.text)
	} else {
		m.DeclareDefault(name, typ)
		if err := g.storeTo(name+" = ", n.Value); err != nil {
			return err
		}
	}
	if expression {
		return g.storeText(n, name)
	}
	return nil
}

// CompileLocal reads a local. A local read before any assignment in this
// method is declared with its default value.
func (g *Generator) CompileLocal(n *ast.Local, expression bool) error {
	if !expression {
		return nil
	}
	name := builder.JavaName(n.Name)
	g.method().DeclareDefault(name, n.InferredType())
	return g.result(n, expression, name, builder.PrecPrimary, false)
}

// field declares the field on the current class on first use and returns
// its qualified name.
func (g *Generator) field(name string, static bool, typ typesystem.Type) string {
	f := g.top()
	static = static || f.static
	name = builder.JavaName(strings.TrimPrefix(name, config.FieldPrefix))
	f.class.DeclareField(name, typ, static)
	if static {
		return f.class.Name + "." + name
	}
	return "this." + name
}

func (g *Generator) CompileFieldDeclaration(n *ast.FieldDeclaration, expression bool) error {
	ref := g.field(n.Name, n.Static, n.InferredType())
	if expression {
		return g.storeText(n, ref)
	}
	return nil
}

func (g *Generator) CompileFieldAssignment(n *ast.FieldAssignment, expression bool) error {
	ref := g.field(n.Name, n.Static, n.InferredType())

	if expression && g.simple(n) {
		value, err := g.fragment(n.Value)
		if err != nil {
			return err
		}
		g.inline(ref+" = "+value.paren(builder.PrecAssign, true), builder.PrecAssign)
		return nil
	}
	if err := g.storeTo(ref+" = ", n.Value); err != nil {
		return err
	}
	if expression {
		return g.storeText(n, ref)
	}
	return nil
}

func (g *Generator) CompileField(n *ast.Field, expression bool) error {
	ref := g.field(n.Name, n.Static, n.InferredType())
	return g.result(n, expression, ref, builder.PrecPrimary, false)
}

// CompileSelf is this in instance code and the class name in static code.
func (g *Generator) CompileSelf(n *ast.Self, expression bool) error {
	return g.result(n, expression, g.self(), builder.PrecPrimary, false)
}

func (g *Generator) self() string {
	if f := g.top(); f.static {
		return f.class.Name
	}
	return "this"
}

func (g *Generator) CompileConstant(n *ast.Constant, expression bool) error {
	return g.result(n, expression, builder.TypeName(n.InferredType()), builder.PrecPrimary, false)
}
