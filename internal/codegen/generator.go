// Package codegen renders a fully typed tree as Java source.
//
// Every node compiles either as an inline expression fragment or as
// statements. A node is compiled inline only when a value is wanted and the
// node is simple; otherwise it is lowered to statements, and if a value is
// wanted it is stored through the current lvalue ("x = ", "return ",
// "temp$1 = "...). The lvalue, the current method and class, the static
// flag and the innermost loop live on a frame stack.
package codegen

import (
	"log/slog"
	"strings"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/token"
	"github.com/funvibe/dubyc/internal/typesystem"
	"github.com/funvibe/dubyc/internal/utils"
)

// frame is the ambient compilation context.
type frame struct {
	class  *builder.Class
	method *builder.Method
	static bool
	lvalue string
	loop   string
	redo   string
}

// Generator implements ast.Compiler.
type Generator struct {
	Registry *typesystem.Registry

	logger *slog.Logger
	file   *builder.File
	script *builder.Class
	stack  []frame

	// inline output: the fragment being built and its precedence
	out  *strings.Builder
	prec int
}

// New creates a generator for the script at filename. A nil logger means
// slog.Default().
func New(registry *typesystem.Registry, filename string, opts builder.Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	file := builder.NewFile(filename, utils.PackageName(filename), registry, opts)
	script := file.Class(utils.ClassName(filename), "")
	return &Generator{
		Registry: registry,
		logger:   logger,
		file:     file,
		script:   script,
		stack:    []frame{{class: script, static: true}},
	}
}

// File is the output being assembled.
func (g *Generator) File() *builder.File { return g.file }

// Compile generates the whole script: main from the top-level statements,
// plus every method and class defined along the way.
func (g *Generator) Compile(script *ast.Script) error {
	return g.compile(script, false)
}

// Generate hands every generated class to fn.
func (g *Generator) Generate(fn func(filename string, unit *builder.Class) error) error {
	g.logger.Debug("generating source files", "classes", len(g.file.Classes()))
	return g.file.Generate(func(filename string, unit *builder.Class) error {
		g.logger.Debug("generated class", "class", unit.FullName(), "file", filename)
		return fn(filename, unit)
	})
}

// DefineMain compiles body as the script class's main method.
func (g *Generator) DefineMain(body ast.Node) error {
	main := g.script.Main()
	return g.with(func(f *frame) {
		f.class = g.script
		f.method = main
		f.static = true
		f.lvalue, f.loop, f.redo = "", "", ""
	}, func() error {
		g.logger.Debug("Starting main method")
		if err := g.compile(body, false); err != nil {
			return err
		}
		g.logger.Debug("Main method complete")
		return nil
	})
}

// DefineMethod adds a method to the current class and compiles its body. A
// non-static method called initialize is the constructor.
func (g *Generator) DefineMethod(name string, sig builder.Signature, args []*ast.Argument, body ast.Node) error {
	class := g.top().class
	for _, a := range args {
		sig.Params = append(sig.Params, builder.Param{Name: builder.JavaName(a.Name), Type: a.InferredType()})
	}

	var m *builder.Method
	if name == typesystem.ConstructorName || (name == "initialize" && !sig.Static) {
		sig.Return = typesystem.Void
		m = class.NewConstructor(sig)
	} else {
		m = class.NewMethod(builder.JavaName(name), sig)
	}

	return g.with(func(f *frame) {
		f.method = m
		f.static = sig.Static
		f.lvalue, f.loop, f.redo = "", "", ""
	}, func() error {
		g.logger.Debug("Starting new method", "method", name, "class", class.FullName())
		if err := g.methodBody(m, body); err != nil {
			return err
		}
		g.logger.Debug("Method complete", "method", name)
		return nil
	})
}

// methodBody compiles a body whose value, if the method has one, is
// returned.
func (g *Generator) methodBody(m *builder.Method, body ast.Node) error {
	if body == nil {
		return nil
	}
	if m.Constructor || returnsVoid(m) {
		return g.compile(body, false)
	}
	return g.storeTo("return ", body)
}

func returnsVoid(m *builder.Method) bool {
	return m.Sig.Return == nil || typesystem.IsVoid(m.Sig.Return)
}

// top is the current frame.
func (g *Generator) top() *frame {
	return &g.stack[len(g.stack)-1]
}

// with runs fn in a copy of the current frame modified by update. The frame
// is popped on every exit path.
func (g *Generator) with(update func(f *frame), fn func() error) error {
	next := *g.top()
	update(&next)
	g.stack = append(g.stack, next)
	defer func() { g.stack = g.stack[:len(g.stack)-1] }()
	return fn()
}

// method is the method statements go to. Code directly inside a class
// body goes to the class's static initializer.
func (g *Generator) method() *builder.Method {
	f := g.top()
	if f.method == nil {
		f.method = f.class.StaticInit()
	}
	return f.method
}

func (g *Generator) puts(parts ...string) {
	g.method().Puts(parts...)
}

// compile checks that n resolved before dispatching to its rule.
func (g *Generator) compile(n ast.Node, expression bool) error {
	if n == nil {
		if expression {
			return g.storeText(nil, "null")
		}
		return nil
	}
	if !n.Resolved() || n.InferredType() == nil {
		return diagnostics.NewFault(ast.Kind(n), n.Pos(), "%s reached code generation unresolved", n)
	}
	return n.Compile(g, expression)
}

// fragment compiles a simple node inline and returns its text and
// precedence.
func (g *Generator) fragment(n ast.Node) (frag, error) {
	saved, savedPrec := g.out, g.prec
	var b strings.Builder
	g.out, g.prec = &b, builder.PrecPrimary
	defer func() { g.out, g.prec = saved, savedPrec }()

	if err := g.compile(n, true); err != nil {
		return frag{}, err
	}
	return frag{text: b.String(), prec: g.prec}, nil
}

// inline writes the fragment of the node being compiled.
func (g *Generator) inline(text string, prec int) {
	g.out.WriteString(text)
	g.prec = prec
}

// lvalue is the current store target. Asking for a value with no target
// set is a fault in the generator itself.
func (g *Generator) lvalue(n ast.Node) (string, error) {
	lv := g.top().lvalue
	if lv != "" {
		return lv, nil
	}
	var pos token.Position
	if n != nil {
		pos = n.Pos()
	}
	return "", diagnostics.NewFault(ast.Kind(n), pos, "value wanted with no target to store it")
}

// storeText writes "lvalue text;" for a value produced by n.
func (g *Generator) storeText(n ast.Node, text string) error {
	lv, err := g.lvalue(n)
	if err != nil {
		return err
	}
	g.puts(lv, text, ";")
	return nil
}

// storeTo compiles the value of n into target.
func (g *Generator) storeTo(target string, n ast.Node) error {
	return g.with(func(f *frame) { f.lvalue = target }, func() error {
		return g.store(n)
	})
}

// store writes the value of n through the current lvalue: inline when n is
// simple, by lowering n otherwise.
func (g *Generator) store(n ast.Node) error {
	if n == nil {
		return g.storeText(nil, "null")
	}
	if !g.simple(n) {
		return g.compile(n, true)
	}
	f, err := g.fragment(n)
	if err != nil {
		return err
	}
	return g.storeText(n, f.text)
}

// maybeStore stores the value of n when one is wanted and compiles it as a
// statement otherwise.
func (g *Generator) maybeStore(n ast.Node, expression bool) error {
	if expression {
		return g.store(n)
	}
	return g.compile(n, false)
}

// result finishes a node whose rendering is the expression text: inline,
// stored through the lvalue, or, if statement is set, as an expression
// statement.
func (g *Generator) result(n ast.Node, expression bool, text string, prec int, statement bool) error {
	switch {
	case expression && g.simple(n):
		g.inline(text, prec)
	case expression:
		return g.storeText(n, text)
	case statement:
		g.puts(text, ";")
	}
	return nil
}

// statements compiles nodes for their side effects only.
func (g *Generator) statements(nodes ...ast.Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if err := g.compile(n, false); err != nil {
			return err
		}
	}
	return nil
}
