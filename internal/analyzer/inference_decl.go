package analyzer

import (
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/typesystem"
	"github.com/funvibe/dubyc/internal/utils"
)

// InferScript defines the script class on first visit. The script itself
// is void; it resolves with its body.
func (t *Typer) InferScript(n *ast.Script) typesystem.Type {
	if t.scriptClass == nil {
		name := utils.QualifiedName(utils.PackageName(n.File), utils.ClassName(n.File))
		t.scriptClass = t.Registry.DefineClass(name, nil)
		t.scriptClass.UserDefined = true
	}
	t.Infer(n.Body)
	if !allResolved(n.Body) {
		return typesystem.Void
	}
	return t.resolve(n, typesystem.Void)
}

// InferClassDefinition declares the class as soon as its superclass is
// known, so that code referring to it resolves on a later sweep, then
// infers the body.
func (t *Typer) InferClassDefinition(n *ast.ClassDefinition) typesystem.Type {
	class := classOf(n)
	if class == nil {
		var super *typesystem.Class
		if n.Superclass != "" {
			typ, ok := t.lookup(n.Superclass)
			if !ok {
				return t.waitType(n, n.Superclass)
			}
			if super, ok = typesystem.AsClass(typ); !ok {
				return t.wait(n, "superclass %s is not a class", n.Superclass)
			}
		}
		class = t.Registry.DefineClass(utils.QualifiedName(t.scriptPackage(n), n.Name), super)
		class.UserDefined = true
		n.SetInferredType(class)
	}
	t.Infer(n.Body)
	if !allResolved(n.Body) {
		return class
	}
	return t.resolve(n, class)
}

func (t *Typer) InferArgument(n *ast.Argument) typesystem.Type {
	typ, ok := t.lookup(n.TypeName)
	if !ok {
		return t.waitType(n, n.TypeName)
	}
	t.LearnLocalType(ast.ScopeOf(n), n.Name, typ)
	return t.resolve(n, typ)
}

// InferMethodDefinition types the arguments and the body, then registers the
// method on its class. With an explicit return type the method is
// registered before its body resolves, which lets recursive calls resolve.
// Otherwise the return type is the merge of the body type and every
// returned value.
func (t *Typer) InferMethodDefinition(n *ast.MethodDefinition) typesystem.Type {
	class, _ := t.ownerOf(n)
	if class == nil {
		return t.wait(n, "enclosing class is not defined yet")
	}

	params := make([]typesystem.Type, len(n.Args))
	ready := true
	for i, a := range n.Args {
		params[i] = t.Infer(a)
		ready = ready && params[i] != nil
	}

	var exceptions []typesystem.Type
	var missing string
	for _, name := range n.Throws {
		typ, ok := t.lookup(name)
		if !ok {
			missing = name
			break
		}
		exceptions = append(exceptions, typ)
	}

	var declared typesystem.Type
	if n.ReturnType != "" {
		typ, ok := t.lookup(n.ReturnType)
		if ok {
			declared = typ
		} else if missing == "" {
			missing = n.ReturnType
		}
	}
	if n.IsConstructor() {
		declared = typesystem.Void
	}
	if ready && missing == "" && declared != nil && n.Method == nil {
		t.register(n, class, params, declared, exceptions)
	}

	body := t.Infer(n.Body)
	switch {
	case missing != "":
		return t.waitType(n, missing)
	case !ready:
		return t.wait(n, "argument types of %s are not known yet", n.Name)
	case !subtreeResolved(n.Body):
		return t.wait(n, "body of %s is not typed yet", n.Name)
	}

	ret := declared
	if ret == nil {
		ret = t.returnType(n, body)
	}
	if n.Method == nil {
		t.register(n, class, params, ret, exceptions)
	}
	return t.resolve(n, ret)
}

func (t *Typer) returnType(n *ast.MethodDefinition, body typesystem.Type) typesystem.Type {
	var ret typesystem.Type
	if !typesystem.IsUnreachable(body) {
		ret = body
	}
	for _, r := range t.returns[n] {
		ret = typesystem.Merge(ret, r, t.Registry.Object)
	}
	if ret == nil || ret.Kind() == typesystem.KindNull || typesystem.IsUnreachable(ret) {
		return typesystem.Void
	}
	return ret
}

func (t *Typer) register(n *ast.MethodDefinition, class *typesystem.Class, params []typesystem.Type, ret typesystem.Type, exceptions []typesystem.Type) {
	m := &typesystem.Method{
		Name:       n.Name,
		Params:     params,
		Return:     ret,
		Static:     t.IsStaticMethod(n),
		Exceptions: exceptions,
	}
	if n.IsConstructor() {
		m.Name = typesystem.ConstructorName
		m.Constructor = true
		m.Static = false
	}
	class.AddMethod(m)
	n.Method = m
	t.logger.Debug("method registered", "method", m.String(), "returns", ret.String())
}

// subtreeResolved reports whether n and all of its descendants resolved.
func subtreeResolved(n ast.Node) bool {
	done := true
	ast.Walk(n, func(c ast.Node) bool {
		if !c.Resolved() {
			done = false
		}
		return done
	})
	return done
}
