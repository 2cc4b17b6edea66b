package codegen

import (
	"strings"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// CompileBody compiles every statement but the last for its effects; the
// last one carries the value of the body.
func (g *Generator) CompileBody(n *ast.Body, expression bool) error {
	if expression && g.simple(n) {
		return g.compile(n.Statements[0], true)
	}
	last := len(n.Statements) - 1
	if last < 0 {
		if expression {
			return g.storeText(n, "null")
		}
		return nil
	}
	if err := g.statements(n.Statements[:last]...); err != nil {
		return err
	}
	return g.maybeStore(n.Statements[last], expression)
}

// CompileIf renders a ternary when a value is wanted and both arms are
// simple, and an if statement otherwise. In value position every arm
// stores its value; a missing arm stores the default value of the type.
func (g *Generator) CompileIf(n *ast.If, expression bool) error {
	if expression && g.simple(n) {
		parts, err := g.operands(n.Condition, n.Then, n.Else)
		if err != nil {
			return err
		}
		cond, err := g.condition(n.Condition, parts[0])
		if err != nil {
			return err
		}
		text := cond.paren(builder.PrecTernary, true) + " ? " +
			parts[1].paren(builder.PrecTernary, true) + " : " +
			parts[2].paren(builder.PrecTernary, false)
		g.inline(text, builder.PrecTernary)
		return nil
	}

	if n.Then == nil && n.Else == nil && !expression {
		return g.statements(n.Condition)
	}
	cond, err := g.predicate(n.Condition)
	if err != nil {
		return err
	}
	zero := typesystem.ZeroValue(n.InferredType())
	arm := func(body ast.Node) func() error {
		return func() error {
			if body == nil {
				return g.storeText(n, zero)
			}
			return g.maybeStore(body, expression)
		}
	}

	m := g.method()
	then, els := n.Then, n.Else
	if then == nil && !expression {
		// if !c { else }
		return m.Block("if ("+negate(cond)+")", arm(els))
	}
	m.Open("if (" + cond.text + ")")
	if err := arm(then)(); err != nil {
		m.Close("")
		return err
	}
	if els != nil || expression {
		m.Continue("else")
		if err := arm(els)(); err != nil {
			m.Close("")
			return err
		}
	}
	m.Close("")
	return nil
}

// condition turns an already rendered operand into a test.
func (g *Generator) condition(n ast.Node, f frag) (frag, error) {
	t := n.InferredType()
	if t != nil && t.Kind().IsReference() {
		p := builder.Precedence("!=")
		return frag{text: f.paren(p, false) + " != null", prec: p}, nil
	}
	return f, nil
}

func negate(f frag) string {
	return "!" + f.paren(builder.PrecUnary, true)
}

// CompileLoop lowers while/until loops:
//
//	while (redo$1 || cond) {
//	  redo$1 = false;
//	  loop$1: {
//	    body
//	  }
//	}
//
// break leaves the loop, next leaves the labeled block and redo sets the
// flag first, so the check lets the body run once more without testing the
// condition. A condition that needs statements is computed into a
// temporary before the first test and again after every iteration that
// does not redo.
func (g *Generator) CompileLoop(n *ast.Loop, expression bool) error {
	m := g.method()
	redo := m.Var(config.RedoFlagPrefix, typesystem.Boolean)
	label := m.Label()

	var cond frag
	reload := func() error { return nil }
	if g.simple(n.Condition) {
		c, err := g.fragment(n.Condition)
		if err != nil {
			return err
		}
		if cond, err = g.condition(n.Condition, c); err != nil {
			return err
		}
	} else {
		tmp := m.Tmp(tempType(n.Condition.InferredType(), g.Registry))
		c, err := g.condition(n.Condition, primary(tmp))
		if err != nil {
			return err
		}
		cond = c
		reload = func() error { return g.storeTo(tmp+" = ", n.Condition) }
		if n.CheckFirst {
			if err := reload(); err != nil {
				return err
			}
		}
	}

	test := redo + " || "
	or := builder.Precedence("||")
	if n.Negative {
		test += negate(cond)
	} else {
		test += cond.paren(or, true)
	}

	if n.CheckFirst {
		m.Open("while (" + test + ")")
	} else {
		m.Open("do")
	}
	err := g.with(func(f *frame) {
		f.loop = label
		f.redo = redo
	}, func() error {
		m.Puts(redo, " = false;")
		if err := m.Block(label+":", func() error {
			return g.compile(n.Body, false)
		}); err != nil {
			return err
		}
		if !g.simple(n.Condition) {
			return m.Block("if (!"+redo+")", reload)
		}
		return nil
	})
	if n.CheckFirst {
		m.Close("")
	} else {
		m.Close(" while (" + test + ");")
	}
	if err != nil {
		return err
	}
	if expression {
		return g.storeText(n, "null")
	}
	return nil
}

func (g *Generator) loopFrame(n ast.Node) (*frame, error) {
	f := g.top()
	if f.loop == "" {
		return nil, diagnostics.NewFault(ast.Kind(n), n.Pos(), "%s outside of a loop", strings.ToLower(ast.Kind(n)))
	}
	return f, nil
}

func (g *Generator) CompileBreak(n *ast.Break, expression bool) error {
	if _, err := g.loopFrame(n); err != nil {
		return err
	}
	g.puts("break;")
	return nil
}

func (g *Generator) CompileNext(n *ast.Next, expression bool) error {
	f, err := g.loopFrame(n)
	if err != nil {
		return err
	}
	g.puts("break ", f.loop, ";")
	return nil
}

func (g *Generator) CompileRedo(n *ast.Redo, expression bool) error {
	f, err := g.loopFrame(n)
	if err != nil {
		return err
	}
	g.puts(f.redo, " = true;")
	g.puts("break ", f.loop, ";")
	return nil
}

// CompileReturn returns from the current method. In a void method the
// value is still evaluated for its effects.
func (g *Generator) CompileReturn(n *ast.Return, expression bool) error {
	m := g.method()
	if m.Constructor || m.Initializer || returnsVoid(m) {
		if err := g.statements(n.Value); err != nil {
			return err
		}
		g.puts("return;")
		return nil
	}
	if n.Value == nil {
		g.puts("return ", typesystem.ZeroValue(m.Sig.Return), ";")
		return nil
	}
	return g.storeTo("return ", n.Value)
}

// CompileRaise throws the value. A string is wrapped in a
// RuntimeException.
func (g *Generator) CompileRaise(n *ast.Raise, expression bool) error {
	value, err := g.operand(n.Value)
	if err != nil {
		return err
	}
	if isString(n.Value, g.Registry) {
		g.puts("throw new RuntimeException(", value.text, ");")
		return nil
	}
	g.puts("throw ", value.text, ";")
	return nil
}

// CompileRescue renders try with one catch per clause.
func (g *Generator) CompileRescue(n *ast.Rescue, expression bool) error {
	m := g.method()
	m.Open("try")
	if err := g.maybeStore(n.Body, expression); err != nil {
		m.Close("")
		return err
	}
	for _, c := range n.Clauses {
		if err := g.compile(c, expression); err != nil {
			m.Close("")
			return err
		}
	}
	m.Close("")
	return nil
}

// CompileRescueClause continues the try block of its Rescue with a catch.
// The exception is caught under a fresh name and copied to the clause
// variable, which lives on after the block like any other local.
func (g *Generator) CompileRescueClause(n *ast.RescueClause, expression bool) error {
	m := g.method()
	var caughtType typesystem.Type
	types := make([]string, 0, len(n.Types))
	for _, name := range n.Types {
		t, ok := g.Registry.Lookup(name)
		if !ok {
			return diagnostics.NewFault(ast.Kind(n), n.Pos(), "unknown exception type %s", name)
		}
		caughtType = typesystem.Merge(caughtType, t, g.Registry.Object)
		types = append(types, builder.TypeName(t))
	}
	if len(types) == 0 {
		caughtType = g.Registry.Exception
		types = append(types, builder.TypeName(caughtType))
	}

	caught := m.Fresh(config.CatchVarPrefix)
	m.Continue("catch (" + strings.Join(types, " | ") + " " + caught + ")")
	if n.Name != "" {
		name := builder.JavaName(n.Name)
		if !m.IsLocal(name) {
			m.DeclareLocal(name, caughtType, caught)
		} else {
			m.Puts(name, " = ", caught, ";")
		}
	}
	return g.maybeStore(n.Body, expression)
}

func (g *Generator) CompilePrint(n *ast.Print, expression bool) error {
	if n.Value == nil {
		g.puts("System.out.println();")
	} else {
		value, err := g.operand(n.Value)
		if err != nil {
			return err
		}
		g.puts("System.out.println(", value.text, ");")
	}
	if expression {
		return g.storeText(n, "null")
	}
	return nil
}
