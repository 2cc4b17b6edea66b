package builder

import (
	"fmt"
	"strings"

	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/typesystem"
	"github.com/funvibe/dubyc/internal/utils"
)

type field struct {
	name   string
	typ    typesystem.Type
	static bool
}

// Class collects the members of one generated compilation unit.
type Class struct {
	Name    string
	Package string
	Super   string

	file    *File
	indent  int
	fields  []field
	known   map[string]bool
	methods []*Method
	main    *Method
	clinit  *Method
}

// FullName is the package-qualified class name.
func (c *Class) FullName() string { return utils.QualifiedName(c.Package, c.Name) }

// Filename is the relative path the class is written to.
func (c *Class) Filename() string { return utils.UnitPath(c.Package, c.Name) }

// DeclareField declares a field the first time it is used. Later calls with
// the same name are no-ops.
func (c *Class) DeclareField(name string, t typesystem.Type, static bool) {
	key := fmt.Sprintf("%t:%s", static, name)
	if c.known[key] {
		return
	}
	c.known[key] = true
	c.fields = append(c.fields, field{name: name, typ: t, static: static})
}

// NewMethod adds a method to the class.
func (c *Class) NewMethod(name string, sig Signature) *Method {
	m := newMethod(c, name, sig)
	c.methods = append(c.methods, m)
	return m
}

// NewConstructor adds a constructor with the given parameters.
func (c *Class) NewConstructor(sig Signature) *Method {
	m := c.NewMethod(c.Name, sig)
	m.Constructor = true
	return m
}

// Main returns the class's main(String[] argv) method, creating it on first
// use.
func (c *Class) Main() *Method {
	if c.main == nil {
		sig := Signature{
			Return: typesystem.Void,
			Params: []Param{{Name: config.MainArgsName, Type: typesystem.ArrayOf(c.file.registry.String)}},
			Static: true,
		}
		c.main = c.NewMethod(config.MainMethodName, sig)
	}
	return c.main
}

// StaticInit returns the static initializer block, creating it on first
// use. Code placed directly in a class body lands here.
func (c *Class) StaticInit() *Method {
	if c.clinit == nil {
		c.clinit = newMethod(c, "", Signature{Static: true})
		c.clinit.Initializer = true
	}
	return c.clinit
}

// Render produces the Java source of the class.
func (c *Class) Render() string {
	p := newPrinter(c.indent)
	if h := c.file.opts.Header; h != "" {
		for _, l := range strings.Split(strings.TrimRight(h, "\n"), "\n") {
			p.line("// " + l)
		}
	}
	if c.Package != "" {
		p.line("package " + c.Package + ";")
		p.line("")
	}
	decl := "public class " + c.Name
	if c.Super != "" && c.Super != "Object" && c.Super != "java.lang.Object" {
		decl += " extends " + c.Super
	}
	p.line(decl + " {")
	p.indent++
	for _, f := range c.fields {
		mod := "private "
		if f.static {
			mod += "static "
		}
		p.line(mod + TypeName(f.typ) + " " + f.name + ";")
	}
	first := len(c.fields) == 0
	members := c.methods
	if c.clinit != nil {
		members = append([]*Method{c.clinit}, members...)
	}
	for _, m := range members {
		if !first {
			p.line("")
		}
		first = false
		p.lines(m.Render())
	}
	p.indent--
	p.line("}")
	return p.String()
}
