package analyzer

import (
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// InferLocalDeclaration resolves the declared type name and makes it the
// type of the local in this scope.
func (t *Typer) InferLocalDeclaration(n *ast.LocalDeclaration) typesystem.Type {
	typ, ok := t.lookup(n.TypeName)
	if !ok {
		return t.waitType(n, n.TypeName)
	}
	t.LearnLocalType(ast.ScopeOf(n), n.Name, typ)
	return t.resolve(n, typ)
}

// InferLocalAssignment learns the value's type for the local. The node takes
// the type the table holds, which is the first type ever learned for it.
func (t *Typer) InferLocalAssignment(n *ast.LocalAssignment) typesystem.Type {
	value := t.Infer(n.Value)
	if value == nil {
		return t.wait(n, "value of %s has no type yet", n.Name)
	}
	return t.resolve(n, t.LearnLocalType(ast.ScopeOf(n), n.Name, t.storable(value)))
}

func (t *Typer) InferLocal(n *ast.Local) typesystem.Type {
	typ, ok := t.LocalType(ast.ScopeOf(n), n.Name)
	if !ok {
		return t.wait(n, "local %s is never assigned", n.Name)
	}
	return t.resolve(n, typ)
}

// fieldKeyFor keys a field by the class it belongs to. ok is false while the
// enclosing class is not yet defined.
func (t *Typer) fieldKeyFor(n ast.Node, name string, static bool) (fieldKey, bool) {
	class, staticContext := t.selfContext(n)
	if class == nil {
		return fieldKey{}, false
	}
	return fieldKey{class: class.FullName, name: name, static: static || staticContext}, true
}

func (t *Typer) InferFieldDeclaration(n *ast.FieldDeclaration) typesystem.Type {
	typ, ok := t.lookup(n.TypeName)
	if !ok {
		return t.waitType(n, n.TypeName)
	}
	key, ok := t.fieldKeyFor(n, n.Name, n.Static)
	if !ok {
		return t.wait(n, "enclosing class is not defined yet")
	}
	t.learnFieldType(key, typ)
	return t.resolve(n, typ)
}

func (t *Typer) InferFieldAssignment(n *ast.FieldAssignment) typesystem.Type {
	value := t.Infer(n.Value)
	if value == nil {
		return t.wait(n, "value of @%s has no type yet", n.Name)
	}
	key, ok := t.fieldKeyFor(n, n.Name, n.Static)
	if !ok {
		return t.wait(n, "enclosing class is not defined yet")
	}
	return t.resolve(n, t.learnFieldType(key, t.storable(value)))
}

func (t *Typer) InferField(n *ast.Field) typesystem.Type {
	key, ok := t.fieldKeyFor(n, n.Name, n.Static)
	if !ok {
		return t.wait(n, "enclosing class is not defined yet")
	}
	typ, ok := t.fields[key]
	if !ok {
		return t.wait(n, "field @%s is never assigned", n.Name)
	}
	return t.resolve(n, typ)
}

// InferSelf is the instance type inside instance methods and the class
// itself (its meta type) in static code.
func (t *Typer) InferSelf(n *ast.Self) typesystem.Type {
	class, static := t.selfContext(n)
	if class == nil {
		return t.wait(n, "enclosing class is not defined yet")
	}
	if static {
		return t.resolve(n, class.Meta())
	}
	return t.resolve(n, class)
}

func (t *Typer) InferConstant(n *ast.Constant) typesystem.Type {
	typ, ok := t.lookup(n.Name)
	if !ok {
		return t.waitType(n, n.Name)
	}
	class, ok := typesystem.AsClass(typ)
	if !ok {
		return t.wait(n, "%s is not a class", n.Name)
	}
	return t.resolve(n, class.Meta())
}
