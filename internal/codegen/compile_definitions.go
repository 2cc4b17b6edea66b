package codegen

import (
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// CompileScript turns the top-level statements into main.
func (g *Generator) CompileScript(n *ast.Script, expression bool) error {
	return g.DefineMain(n.Body)
}

// CompileMethodDefinition adds the method to the current class using the
// signature inference registered for it.
func (g *Generator) CompileMethodDefinition(n *ast.MethodDefinition, expression bool) error {
	m := n.Method
	if m == nil {
		return diagnostics.NewFault(ast.Kind(n), n.Pos(), "method %s was never registered", n.Name)
	}
	sig := builder.Signature{
		Return: m.Return,
		Throws: m.Exceptions,
		Static: m.Static,
	}
	name := m.Name
	if !m.Constructor {
		name = n.Name
	}
	if err := g.DefineMethod(name, sig, n.Args, n.Body); err != nil {
		return err
	}
	if expression {
		return g.storeText(n, "null")
	}
	return nil
}

// CompileArgument never runs: arguments become parameters of their method.
func (g *Generator) CompileArgument(n *ast.Argument, expression bool) error {
	return diagnostics.NewFault(ast.Kind(n), n.Pos(), "argument %s compiled outside its method", n.Name)
}

// CompileClassDefinition starts a new compilation unit. Code in the class
// body runs in the static initializer.
func (g *Generator) CompileClassDefinition(n *ast.ClassDefinition, expression bool) error {
	class, ok := n.InferredType().(*typesystem.Class)
	if !ok {
		return diagnostics.NewFault(ast.Kind(n), n.Pos(), "class %s has no class type", n.Name)
	}
	super := ""
	if class.Super != nil && class.Super != g.Registry.Object {
		super = builder.TypeName(class.Super)
	}
	unit := g.file.Class(class.SimpleName(), super)

	err := g.with(func(f *frame) {
		f.class = unit
		f.method = nil
		f.static = true
		f.lvalue, f.loop, f.redo = "", "", ""
	}, func() error {
		g.logger.Debug("Starting class", "class", unit.FullName())
		return g.compile(n.Body, false)
	})
	if err != nil {
		return err
	}
	if expression {
		return g.storeText(n, "null")
	}
	return nil
}
