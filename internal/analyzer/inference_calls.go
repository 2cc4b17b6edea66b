package analyzer

import (
	"errors"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// Operator groups. Operators are calls whose target is a primitive (or, for
// + and ==, a String) and compile to native syntax.
var (
	arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
	comparisonOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
	equalityOps   = map[string]bool{"==": true, "!=": true}
	shiftOps      = map[string]bool{"<<": true, ">>": true, ">>>": true}
	bitwiseOps    = map[string]bool{"&": true, "|": true, "^": true}
	unaryOps      = map[string]bool{"-@": true, "+@": true, "~": true, "!": true}
)

// Array pseudo-methods.
const (
	IndexGet = "[]"
	IndexSet = "[]="
	Length   = "length"
)

// IsOperator reports whether name is in the operator table.
func IsOperator(name string) bool {
	return arithmeticOps[name] || comparisonOps[name] || equalityOps[name] ||
		shiftOps[name] || bitwiseOps[name] || unaryOps[name]
}

// InferCall types target and arguments first, then tries in order: the
// operator table, array pseudo-methods, nil? and finally method lookup. A
// method that cannot be found yet may be defined later, so the call waits.
func (t *Typer) InferCall(n *ast.Call) typesystem.Type {
	target := t.Infer(n.Target)
	args, ready := t.inferArgs(n.Args)
	if target == nil || !ready {
		return t.wait(n, "operands of %s have no type yet", n.Name)
	}

	typ, err := t.callType(n, target, args)
	if err != nil {
		return t.wait(n, "%v", err)
	}
	if !allResolved(n.Target) || !allResolved(n.Args...) {
		return typ
	}
	return t.resolve(n, typ)
}

func (t *Typer) inferArgs(nodes []ast.Node) ([]typesystem.Type, bool) {
	args := make([]typesystem.Type, len(nodes))
	ready := true
	for i, a := range nodes {
		args[i] = t.Infer(a)
		ready = ready && args[i] != nil
	}
	return args, ready
}

var errNoOperator = errors.New("no operator")

func (t *Typer) callType(n *ast.Call, target typesystem.Type, args []typesystem.Type) (typesystem.Type, error) {
	if typ, err := t.operatorType(n.Name, target, args); err == nil {
		return typ, nil
	} else if !errors.Is(err, errNoOperator) {
		return nil, err
	}

	if arr, ok := typesystem.Underlying(target).(*typesystem.Array); ok {
		switch {
		case n.Name == IndexGet && len(args) == 1:
			return arr.Elem, nil
		case n.Name == IndexSet && len(args) == 2:
			return arr.Elem, nil
		case n.Name == Length && len(args) == 0:
			return typesystem.Int, nil
		}
	}
	if n.Name == config.NilCheckMethodName && len(args) == 0 {
		return typesystem.Boolean, nil
	}

	if n.Method == nil {
		m, err := t.Registry.FindMethod(target, n.Name, args)
		if err != nil {
			return nil, err
		}
		n.Method = m
	}
	return n.Method.ResultType(), nil
}

// operatorType returns errNoOperator when name on target is not an operator
// and some other error when it is one but the operands do not fit.
func (t *Typer) operatorType(name string, target typesystem.Type, args []typesystem.Type) (typesystem.Type, error) {
	if !IsOperator(name) {
		return nil, errNoOperator
	}
	str := t.Registry.String
	isString := func(x typesystem.Type) bool { return typesystem.Equal(x, str) }

	if unaryOps[name] {
		if len(args) != 0 {
			return nil, errNoOperator
		}
		if name == "!" {
			if typesystem.Equal(target, typesystem.Boolean) {
				return typesystem.Boolean, nil
			}
			return nil, errors.New("! needs a boolean operand")
		}
		if typ, ok := typesystem.PromoteUnary(target); ok {
			if name == "~" && !isIntegral(typ) {
				return nil, errors.New("~ needs an integral operand")
			}
			return typ, nil
		}
		return nil, errNoOperator
	}
	if len(args) != 1 {
		return nil, errNoOperator
	}
	arg := args[0]

	switch {
	case equalityOps[name]:
		_, primTarget := typesystem.AsPrimitive(target)
		_, primArg := typesystem.AsPrimitive(arg)
		if primTarget != primArg && !typesystem.IsUnreachable(arg) {
			return nil, errors.New("cannot compare a primitive with a reference")
		}
		return typesystem.Boolean, nil
	case name == "+" && (isString(target) || isString(arg)):
		return str, nil
	case arithmeticOps[name], comparisonOps[name]:
		typ, ok := typesystem.Promote(target, arg)
		if !ok {
			if _, prim := typesystem.AsPrimitive(target); prim {
				return nil, errors.New(name + " needs numeric operands")
			}
			return nil, errNoOperator
		}
		if comparisonOps[name] {
			return typesystem.Boolean, nil
		}
		return typ, nil
	case shiftOps[name]:
		typ, ok := typesystem.PromoteUnary(target)
		if !ok || !isIntegral(typ) || !isIntegral(arg) {
			return nil, errNoOperator
		}
		return typ, nil
	case bitwiseOps[name]:
		if typesystem.Equal(target, typesystem.Boolean) && typesystem.Equal(arg, typesystem.Boolean) {
			return typesystem.Boolean, nil
		}
		typ, ok := typesystem.Promote(target, arg)
		if !ok || !isIntegral(typ) {
			return nil, errNoOperator
		}
		return typ, nil
	}
	return nil, errNoOperator
}

func isIntegral(typ typesystem.Type) bool {
	p, ok := typesystem.AsPrimitive(typ)
	return ok && p.IsNumeric() && p != typesystem.Float && p != typesystem.Double
}

// InferFunctionalCall is a call on self, or a cast when the name is a type
// and there is exactly one argument.
func (t *Typer) InferFunctionalCall(n *ast.FunctionalCall) typesystem.Type {
	args, ready := t.inferArgs(n.Args)
	if !ready {
		return t.wait(n, "arguments of %s have no type yet", n.Name)
	}

	var typ typesystem.Type
	if cast, ok := t.lookup(n.Name); ok && len(args) == 1 && n.Method == nil {
		typ = cast
	} else {
		if n.Method == nil {
			m, err := t.findSelfMethod(n, args)
			if err != nil {
				return t.wait(n, "%v", err)
			}
			n.Method = m
		}
		typ = n.Method.ResultType()
	}
	if !allResolved(n.Args...) {
		return typ
	}
	return t.resolve(n, typ)
}

// findSelfMethod looks name up on the class of self: instance methods first
// when self is an instance, then static ones.
func (t *Typer) findSelfMethod(n *ast.FunctionalCall, args []typesystem.Type) (*typesystem.Method, error) {
	class, static := t.selfContext(n)
	if class == nil {
		return nil, errors.New("enclosing class is not defined yet")
	}
	if !static {
		if m, err := t.Registry.FindMethod(class, n.Name, args); err == nil {
			return m, nil
		}
	}
	return t.Registry.FindMethod(class.Meta(), n.Name, args)
}
