package builder

import (
	"fmt"
	"strings"

	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// Param is a method parameter.
type Param struct {
	Name string
	Type typesystem.Type
}

// Signature describes a method declaration.
type Signature struct {
	Return typesystem.Type
	Params []Param
	Throws []typesystem.Type
	Static bool
}

// Method accumulates the body of one generated method. It owns the set of
// declared locals: the code generator asks IsLocal before assigning and
// declares on first assignment.
type Method struct {
	Name        string
	Sig         Signature
	Constructor bool
	// Initializer marks a static initializer block.
	Initializer bool

	class   *Class
	locals  map[string]typesystem.Type
	prelude []string
	body    *printer
	fresh   map[string]int
}

func newMethod(c *Class, name string, sig Signature) *Method {
	m := &Method{
		Name:   name,
		Sig:    sig,
		class:  c,
		locals: make(map[string]typesystem.Type),
		body:   newPrinter(c.indent),
		fresh:  make(map[string]int),
	}
	for _, p := range sig.Params {
		m.locals[p.Name] = p.Type
	}
	return m
}

// Class is the class the method belongs to.
func (m *Method) Class() *Class { return m.class }

// IsLocal reports whether name has been declared in this method.
func (m *Method) IsLocal(name string) bool {
	_, ok := m.locals[name]
	return ok
}

// LocalType returns the declared type of a local.
func (m *Method) LocalType(name string) typesystem.Type {
	return m.locals[name]
}

// DeclareLocal declares name with an initial value. At the top level of the
// method the declaration is written in place; inside a nested block it is
// hoisted to the start of the method with a default value and only the
// store is written here, so later uses outside the block stay in scope.
func (m *Method) DeclareLocal(name string, t typesystem.Type, init string) {
	m.locals[name] = t
	if m.body.indent == 0 {
		m.Puts(fmt.Sprintf("%s %s = %s;", TypeName(t), name, init))
		return
	}
	m.hoist(name, t)
	m.Puts(fmt.Sprintf("%s = %s;", name, init))
}

// DeclareDefault declares name with its type's default value.
func (m *Method) DeclareDefault(name string, t typesystem.Type) {
	if m.IsLocal(name) {
		return
	}
	m.locals[name] = t
	if m.body.indent == 0 {
		m.Puts(fmt.Sprintf("%s %s = %s;", TypeName(t), name, typesystem.ZeroValue(t)))
		return
	}
	m.hoist(name, t)
}

func (m *Method) hoist(name string, t typesystem.Type) {
	m.prelude = append(m.prelude, fmt.Sprintf("%s %s = %s;", TypeName(t), name, typesystem.ZeroValue(t)))
}

// Fresh returns a new name made of prefix and a per-prefix counter.
func (m *Method) Fresh(prefix string) string {
	m.fresh[prefix]++
	return fmt.Sprintf("%s%d", prefix, m.fresh[prefix])
}

// Var allocates a fresh compiler-managed local of type t, declared at the
// start of the method.
func (m *Method) Var(prefix string, t typesystem.Type) string {
	name := m.Fresh(prefix)
	m.locals[name] = t
	m.hoist(name, t)
	return name
}

// Tmp allocates a temporary of type t.
func (m *Method) Tmp(t typesystem.Type) string {
	return m.Var(config.TempPrefix, t)
}

// Label allocates a fresh block label.
func (m *Method) Label() string {
	return m.Fresh(config.LoopLabelPrefix)
}

// Puts writes one statement line at the current depth.
func (m *Method) Puts(parts ...string) {
	m.body.line(strings.Join(parts, ""))
}

// Open starts a block: header { ...
func (m *Method) Open(header string) {
	m.body.line(header + " {")
	m.body.indent++
}

// Close ends a block; suffix follows the closing brace, as in "} while (x);".
func (m *Method) Close(suffix string) {
	m.body.indent--
	m.body.line("}" + suffix)
}

// Continue closes a block and opens the next one on the same line, as in
// "} else {".
func (m *Method) Continue(header string) {
	m.body.indent--
	m.body.line("} " + header + " {")
	m.body.indent++
}

// Block runs fn inside header { ... }. The block is closed even when fn
// fails.
func (m *Method) Block(header string, fn func() error) error {
	m.Open(header)
	defer m.Close("")
	return fn()
}

// Declaration renders the method header without the opening brace.
func (m *Method) Declaration() string {
	if m.Initializer {
		return "static"
	}
	var b strings.Builder
	b.WriteString("public ")
	if m.Constructor {
		b.WriteString(m.class.Name)
	} else {
		if m.Sig.Static {
			b.WriteString("static ")
		}
		ret := m.Sig.Return
		if ret == nil {
			ret = typesystem.Void
		}
		b.WriteString(TypeName(ret))
		b.WriteByte(' ')
		b.WriteString(m.Name)
	}
	b.WriteByte('(')
	for i, p := range m.Sig.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(TypeName(p.Type))
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteByte(')')
	if len(m.Sig.Throws) > 0 {
		names := make([]string, len(m.Sig.Throws))
		for i, t := range m.Sig.Throws {
			names[i] = TypeName(t)
		}
		b.WriteString(" throws ")
		b.WriteString(strings.Join(names, ", "))
	}
	return b.String()
}

// Render returns the whole method, prelude included, at indentation 0.
func (m *Method) Render() string {
	p := newPrinter(m.class.indent)
	p.line(m.Declaration() + " {")
	p.indent++
	for _, decl := range m.prelude {
		p.line(decl)
	}
	if body := m.body.String(); body != "" {
		p.lines(body)
	}
	p.indent--
	p.line("}")
	return p.String()
}

// TypeName is the spelling of t in generated source.
func TypeName(t typesystem.Type) string {
	if t == nil {
		return "Object"
	}
	switch t.Kind() {
	case typesystem.KindNull, typesystem.KindUnreachable:
		return "Object"
	}
	return t.Name()
}
