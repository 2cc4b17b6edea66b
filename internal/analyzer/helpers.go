package analyzer

import (
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// classOf returns the class declared by def, or nil before it is defined.
func classOf(def *ast.ClassDefinition) *typesystem.Class {
	c, _ := def.InferredType().(*typesystem.Class)
	return c
}

// ownerOf returns the class a method belongs to and whether the method is
// a member of the script class.
func (t *Typer) ownerOf(m *ast.MethodDefinition) (*typesystem.Class, bool) {
	if def, ok := ast.Enclosing[*ast.ClassDefinition](m); ok {
		return classOf(def), false
	}
	return t.scriptClass, true
}

// selfContext returns the class self refers to at n and whether the code
// runs in a static context: script-level code, class bodies and static or
// script-level methods.
func (t *Typer) selfContext(n ast.Node) (*typesystem.Class, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p := p.(type) {
		case *ast.MethodDefinition:
			class, scriptLevel := t.ownerOf(p)
			return class, p.Static || scriptLevel
		case *ast.ClassDefinition:
			return classOf(p), true
		case *ast.Script:
			return t.scriptClass, true
		}
	}
	return t.scriptClass, true
}

// IsStaticMethod reports whether def compiles to a static method.
func (t *Typer) IsStaticMethod(def *ast.MethodDefinition) bool {
	_, scriptLevel := t.ownerOf(def)
	return def.Static || scriptLevel
}

// storable is the type a variable takes when assigned value. A void result
// is stored as a null Object reference.
func (t *Typer) storable(value typesystem.Type) typesystem.Type {
	if typesystem.IsVoid(value) {
		return t.Registry.Object
	}
	return value
}
