package codegen

import (
	"strings"

	"github.com/funvibe/dubyc/internal/analyzer"
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// CompileCall renders operators and array access natively, nil? as a
// comparison with null and everything else as a method call.
func (g *Generator) CompileCall(n *ast.Call, expression bool) error {
	if n.Target == nil {
		return diagnostics.NewFault(ast.Kind(n), n.Pos(), "call to %s has no receiver", n.Name)
	}
	nodes := append([]ast.Node{n.Target}, n.Args...)
	kind := classify(n)
	if kind == callMethod {
		return g.invoke(n, n.Method, nodes, expression)
	}
	if !expression && !(kind == callArray && n.Name == analyzer.IndexSet) {
		return g.statements(nodes...)
	}
	if kind == callNilCheck && primitiveTarget(n) {
		// a primitive is never null; the receiver still runs for its effects
		if !g.simple(n) {
			if err := g.statements(n.Target); err != nil {
				return err
			}
		}
		return g.result(n, expression, "false", builder.PrecPrimary, false)
	}

	ops, err := g.operands(nodes...)
	if err != nil {
		return err
	}
	switch kind {
	case callOperator:
		if len(ops) == 1 {
			return g.result(n, expression, unary(n.Name, ops[0]), builder.PrecUnary, false)
		}
		p := builder.Precedence(n.Name)
		text := ops[0].paren(p, false) + " " + n.Name + " " + ops[1].paren(p, true)
		return g.result(n, expression, text, p, false)

	case callNilCheck:
		p := builder.Precedence("==")
		return g.result(n, expression, ops[0].paren(p, false)+" == null", p, false)
	}

	recv := ops[0].paren(builder.PrecPrimary, false)
	switch {
	case n.Name == analyzer.Length:
		return g.result(n, expression, recv+".length", builder.PrecPrimary, false)
	case n.Name == analyzer.IndexGet:
		return g.result(n, expression, recv+"["+ops[1].text+"]", builder.PrecPrimary, false)
	default:
		text := recv + "[" + ops[1].text + "] = " + ops[2].paren(builder.PrecAssign, true)
		return g.result(n, expression, text, builder.PrecAssign, true)
	}
}

// unary renders a prefix operator. The source spells unary minus and plus
// as -@ and +@.
func unary(name string, operand frag) string {
	op := strings.TrimSuffix(name, "@")
	text := operand.paren(builder.PrecUnary, true)
	if (op == "-" || op == "+") && strings.HasPrefix(text, op) {
		text = "(" + text + ")"
	}
	return op + text
}

// CompileFunctionalCall is a cast or a call on self.
func (g *Generator) CompileFunctionalCall(n *ast.FunctionalCall, expression bool) error {
	if !n.IsCast() {
		return g.invoke(n, n.Method, append([]ast.Node{nil}, n.Args...), expression)
	}
	if !expression {
		return g.statements(n.Args...)
	}
	arg, err := g.operand(n.Args[0])
	if err != nil {
		return err
	}
	text := "(" + builder.TypeName(n.InferredType()) + ") " + arg.paren(builder.PrecUnary, true)
	return g.result(n, expression, text, builder.PrecUnary, false)
}

// invoke renders a method call. nodes holds the receiver followed by the
// arguments; a nil receiver means self. A void call wanted as a value
// stores null after the call.
func (g *Generator) invoke(n ast.Node, m *typesystem.Method, nodes []ast.Node, expression bool) error {
	if m == nil {
		return diagnostics.NewFault(ast.Kind(n), n.Pos(), "%s has no resolved method", n)
	}

	var recv string
	if nodes[0] == nil {
		recv = g.selfFor(m)
		nodes = nodes[1:]
	}
	ops, err := g.operands(nodes...)
	if err != nil {
		return err
	}
	if recv == "" {
		recv = ops[0].paren(builder.PrecPrimary, false)
		ops = ops[1:]
	}

	args := make([]string, len(ops))
	for i, a := range ops {
		args[i] = a.text
	}
	var text string
	if m.Constructor {
		text = "new " + g.className(m.Owner) + "(" + strings.Join(args, ", ") + ")"
	} else {
		text = recv + "." + builder.JavaName(m.Name) + "(" + strings.Join(args, ", ") + ")"
	}

	if m.ReturnsVoid() {
		g.puts(text, ";")
		if expression {
			return g.storeText(n, "null")
		}
		return nil
	}
	return g.result(n, expression, text, builder.PrecPrimary, true)
}

// selfFor is the implicit receiver of a call to m.
func (g *Generator) selfFor(m *typesystem.Method) string {
	if !m.Static {
		return "this"
	}
	return g.className(m.Owner)
}

// className spells a class, by simple name when it is the one being
// generated.
func (g *Generator) className(c *typesystem.Class) string {
	if cur := g.top().class; c != nil && cur != nil && c.FullName == cur.FullName() {
		return cur.Name
	}
	return builder.TypeName(c)
}
