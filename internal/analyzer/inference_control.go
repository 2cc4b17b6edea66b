package analyzer

import (
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// InferBody has the type of its last statement, void when empty.
func (t *Typer) InferBody(n *ast.Body) typesystem.Type {
	var last typesystem.Type = typesystem.Void
	for _, s := range n.Statements {
		last = t.Infer(s)
	}
	if last == nil {
		return t.wait(n, "last statement has no type yet")
	}
	if !allResolved(n.Statements...) {
		return last
	}
	return t.resolve(n, last)
}

// InferIf merges the arm types. A missing arm does not contribute, so an if
// without else has the type of its then arm.
func (t *Typer) InferIf(n *ast.If) typesystem.Type {
	t.Infer(n.Condition)
	var thenType, elseType typesystem.Type
	if n.Then != nil {
		thenType = t.Infer(n.Then)
	}
	if n.Else != nil {
		elseType = t.Infer(n.Else)
	}
	if n.Then != nil && thenType == nil {
		return t.wait(n, "then branch has no type yet")
	}
	if n.Else != nil && elseType == nil {
		return t.wait(n, "else branch has no type yet")
	}
	typ := typesystem.Merge(thenType, elseType, t.Registry.Object)
	if typ == nil {
		typ = t.Registry.NullType()
	}
	if !allResolved(n.Condition, n.Then, n.Else) {
		return typ
	}
	return t.resolve(n, typ)
}

// InferLoop: a loop is a statement; as a value it is null.
func (t *Typer) InferLoop(n *ast.Loop) typesystem.Type {
	t.Infer(n.Condition)
	t.Infer(n.Body)
	typ := t.Registry.NullType()
	if !allResolved(n.Condition, n.Body) {
		return typ
	}
	return t.resolve(n, typ)
}

func (t *Typer) InferBreak(n *ast.Break) typesystem.Type {
	return t.resolve(n, typesystem.Unreachable)
}

func (t *Typer) InferNext(n *ast.Next) typesystem.Type {
	return t.resolve(n, typesystem.Unreachable)
}

func (t *Typer) InferRedo(n *ast.Redo) typesystem.Type {
	return t.resolve(n, typesystem.Unreachable)
}

// InferReturn records the returned type as a candidate return type of the
// enclosing method.
func (t *Typer) InferReturn(n *ast.Return) typesystem.Type {
	var value typesystem.Type = typesystem.Void
	if n.Value != nil {
		if value = t.Infer(n.Value); value == nil {
			return t.wait(n, "returned value has no type yet")
		}
	}
	if !t.recorded[n] {
		t.recorded[n] = true
		if m, ok := ast.Enclosing[*ast.MethodDefinition](n); ok {
			t.returns[m] = append(t.returns[m], value)
		}
	}
	if !allResolved(n.Value) {
		return typesystem.Unreachable
	}
	return t.resolve(n, typesystem.Unreachable)
}

func (t *Typer) InferRaise(n *ast.Raise) typesystem.Type {
	if t.Infer(n.Value) == nil || !allResolved(n.Value) {
		return t.wait(n, "raised value has no type yet")
	}
	return t.resolve(n, typesystem.Unreachable)
}

// InferRescue merges the body type with the clause types.
func (t *Typer) InferRescue(n *ast.Rescue) typesystem.Type {
	typ := t.Infer(n.Body)
	clauses := make([]typesystem.Type, len(n.Clauses))
	for i, c := range n.Clauses {
		clauses[i] = t.Infer(c)
	}
	if typ == nil {
		return t.wait(n, "rescued body has no type yet")
	}
	done := allResolved(n.Body)
	for i, ct := range clauses {
		if ct == nil {
			return t.wait(n, "rescue clause has no type yet")
		}
		typ = typesystem.Merge(typ, ct, t.Registry.Object)
		done = done && n.Clauses[i].Resolved()
	}
	if !done {
		return typ
	}
	return t.resolve(n, typ)
}

// InferRescueClause binds the caught exception to the clause variable. With
// several exception types the variable has their common superclass.
func (t *Typer) InferRescueClause(n *ast.RescueClause) typesystem.Type {
	var caught typesystem.Type
	if len(n.Types) == 0 {
		caught = t.Registry.Exception
	}
	var missing string
	for _, name := range n.Types {
		typ, ok := t.lookup(name)
		if !ok {
			missing = name
			break
		}
		caught = typesystem.Merge(caught, typ, t.Registry.Object)
	}
	if missing == "" && n.Name != "" {
		t.LearnLocalType(ast.ScopeOf(n), n.Name, caught)
	}
	typ := t.Infer(n.Body)
	if missing != "" {
		return t.waitType(n, missing)
	}
	if typ == nil {
		return t.wait(n, "rescue body has no type yet")
	}
	if !allResolved(n.Body) {
		return typ
	}
	return t.resolve(n, typ)
}

func (t *Typer) InferPrint(n *ast.Print) typesystem.Type {
	if n.Value != nil && t.Infer(n.Value) == nil {
		return t.wait(n, "printed value has no type yet")
	}
	if !allResolved(n.Value) {
		return typesystem.Void
	}
	return t.resolve(n, typesystem.Void)
}
