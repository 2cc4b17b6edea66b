package ast

import (
	"fmt"

	"github.com/funvibe/dubyc/internal/typesystem"
)

// Body is a sequence of nodes whose value is that of the last one.
type Body struct {
	base
	Statements []Node
}

func (b *Body) Children() []Node                          { return b.Statements }
func (b *Body) Infer(v Inferrer) typesystem.Type          { return v.InferBody(b) }
func (b *Body) Compile(c Compiler, expression bool) error { return c.CompileBody(b, expression) }
func (b *Body) String() string                            { return fmt.Sprintf("Body(%d)", len(b.Statements)) }

// Last returns the final statement, or nil for an empty body.
func (b *Body) Last() Node {
	if len(b.Statements) == 0 {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}

// If is a conditional. Then and Else are optional.
type If struct {
	base
	Condition Node
	Then      Node
	Else      Node
}

func (i *If) Children() []Node                          { return nonNil(i.Condition, i.Then, i.Else) }
func (i *If) Infer(v Inferrer) typesystem.Type          { return v.InferIf(i) }
func (i *If) Compile(c Compiler, expression bool) error { return c.CompileIf(i, expression) }
func (i *If) String() string                            { return "If" }

// Loop is while/until in pre-test (CheckFirst) or post-test form. Negative
// inverts the sense of the condition.
type Loop struct {
	base
	Condition  Node
	Body       Node
	CheckFirst bool
	Negative   bool
}

func (l *Loop) Children() []Node                          { return nonNil(l.Condition, l.Body) }
func (l *Loop) Infer(v Inferrer) typesystem.Type          { return v.InferLoop(l) }
func (l *Loop) Compile(c Compiler, expression bool) error { return c.CompileLoop(l, expression) }
func (l *Loop) String() string {
	kind := "while"
	if l.Negative {
		kind = "until"
	}
	if !l.CheckFirst {
		kind = "do-" + kind
	}
	return "Loop(" + kind + ")"
}

// Break leaves the innermost loop.
type Break struct {
	base
}

func (b *Break) Children() []Node                          { return nil }
func (b *Break) Infer(v Inferrer) typesystem.Type          { return v.InferBreak(b) }
func (b *Break) Compile(c Compiler, expression bool) error { return c.CompileBreak(b, expression) }
func (b *Break) String() string                            { return "Break" }

// Next ends the current iteration of the innermost loop.
type Next struct {
	base
}

func (n *Next) Children() []Node                          { return nil }
func (n *Next) Infer(v Inferrer) typesystem.Type          { return v.InferNext(n) }
func (n *Next) Compile(c Compiler, expression bool) error { return c.CompileNext(n, expression) }
func (n *Next) String() string                            { return "Next" }

// Redo restarts the current iteration without checking the condition.
type Redo struct {
	base
}

func (r *Redo) Children() []Node                          { return nil }
func (r *Redo) Infer(v Inferrer) typesystem.Type          { return v.InferRedo(r) }
func (r *Redo) Compile(c Compiler, expression bool) error { return c.CompileRedo(r, expression) }
func (r *Redo) String() string                            { return "Redo" }

// Return leaves the enclosing method. Value is optional.
type Return struct {
	base
	Value Node
}

func (r *Return) Children() []Node                          { return nonNil(r.Value) }
func (r *Return) Infer(v Inferrer) typesystem.Type          { return v.InferReturn(r) }
func (r *Return) Compile(c Compiler, expression bool) error { return c.CompileReturn(r, expression) }
func (r *Return) String() string                            { return "Return" }

// Raise throws Value, which must be a Throwable.
type Raise struct {
	base
	Value Node
}

func (r *Raise) Children() []Node                          { return nonNil(r.Value) }
func (r *Raise) Infer(v Inferrer) typesystem.Type          { return v.InferRaise(r) }
func (r *Raise) Compile(c Compiler, expression bool) error { return c.CompileRaise(r, expression) }
func (r *Raise) String() string                            { return "Raise" }

// Rescue runs Body and hands matching exceptions to its clauses.
type Rescue struct {
	base
	Body    Node
	Clauses []*RescueClause
}

func (r *Rescue) Children() []Node {
	out := nonNil(r.Body)
	for _, c := range r.Clauses {
		out = append(out, c)
	}
	return out
}
func (r *Rescue) Infer(v Inferrer) typesystem.Type          { return v.InferRescue(r) }
func (r *Rescue) Compile(c Compiler, expression bool) error { return c.CompileRescue(r, expression) }
func (r *Rescue) String() string                            { return fmt.Sprintf("Rescue(%d)", len(r.Clauses)) }

// RescueClause handles the listed exception types, binding the exception to
// Name when it is set. An empty Types list catches Exception.
type RescueClause struct {
	base
	Types []string
	Name  string
	Body  Node
}

func (r *RescueClause) Children() []Node                 { return nonNil(r.Body) }
func (r *RescueClause) Infer(v Inferrer) typesystem.Type { return v.InferRescueClause(r) }
func (r *RescueClause) Compile(c Compiler, expression bool) error {
	return c.CompileRescueClause(r, expression)
}
func (r *RescueClause) String() string { return fmt.Sprintf("RescueClause(%v)", r.Types) }

// Call invokes Name on Target. Operators, array access and nil? are calls
// too; Method is set by inference when the call resolves to a real method.
type Call struct {
	base
	Target Node
	Name   string
	Args   []Node
	Method *typesystem.Method
}

func (c *Call) Children() []Node                          { return append(nonNil(c.Target), c.Args...) }
func (c *Call) Infer(v Inferrer) typesystem.Type          { return v.InferCall(c) }
func (c *Call) Compile(g Compiler, expression bool) error { return g.CompileCall(c, expression) }
func (c *Call) String() string                            { return "Call(" + c.Name + ")" }

// FunctionalCall is a call without an explicit receiver, e.g. foo(1). With
// a type name and one argument it is a cast, e.g. int(x).
type FunctionalCall struct {
	base
	Name   string
	Args   []Node
	Method *typesystem.Method
}

func (f *FunctionalCall) Children() []Node                 { return f.Args }
func (f *FunctionalCall) Infer(v Inferrer) typesystem.Type { return v.InferFunctionalCall(f) }
func (f *FunctionalCall) Compile(c Compiler, expression bool) error {
	return c.CompileFunctionalCall(f, expression)
}
func (f *FunctionalCall) String() string { return "FunctionalCall(" + f.Name + ")" }

// IsCast reports whether the call was resolved as a type conversion.
func (f *FunctionalCall) IsCast() bool { return f.Method == nil && f.Resolved() && len(f.Args) == 1 }

// Print writes Value followed by a newline (puts).
type Print struct {
	base
	Value Node
}

func (p *Print) Children() []Node                          { return nonNil(p.Value) }
func (p *Print) Infer(v Inferrer) typesystem.Type          { return v.InferPrint(p) }
func (p *Print) Compile(c Compiler, expression bool) error { return c.CompilePrint(p, expression) }
func (p *Print) String() string                            { return "Print" }
