package ast

import (
	"strings"

	"github.com/funvibe/dubyc/internal/typesystem"
)

// Script is the root of a compilation: the top-level statements of one
// source file, which become the body of main.
type Script struct {
	base
	File  string
	Body  *Body
	scope *Scope
}

// NewScript builds a linked tree rooted at a new script.
func NewScript(file string, statements ...Node) *Script {
	s := &Script{File: file, Body: &Body{Statements: statements}}
	Link(s)
	return s
}

func (s *Script) Children() []Node                          { return []Node{s.Body} }
func (s *Script) Infer(v Inferrer) typesystem.Type          { return v.InferScript(s) }
func (s *Script) Compile(c Compiler, expression bool) error { return c.CompileScript(s, expression) }
func (s *Script) String() string                            { return "Script(" + s.File + ")" }

func (s *Script) Scope() *Scope {
	if s.scope == nil {
		s.scope = NewScope("<main>", nil)
	}
	return s.scope
}

// ClassDefinition declares a class. Superclass is optional.
type ClassDefinition struct {
	base
	Name       string
	Superclass string
	Body       *Body
	scope      *Scope
}

func (c *ClassDefinition) Children() []Node                 { return []Node{c.Body} }
func (c *ClassDefinition) Infer(v Inferrer) typesystem.Type { return v.InferClassDefinition(c) }
func (c *ClassDefinition) Compile(g Compiler, expression bool) error {
	return g.CompileClassDefinition(c, expression)
}
func (c *ClassDefinition) String() string { return "ClassDefinition(" + c.Name + ")" }

func (c *ClassDefinition) Scope() *Scope {
	if c.scope == nil {
		c.scope = NewScope(c.Name, nil)
	}
	return c.scope
}

// MethodDefinition defines a method. ReturnType and Throws are optional
// annotations; Static marks def self.name. Method is filled in by inference
// with the resolved signature.
type MethodDefinition struct {
	base
	Name       string
	Args       []*Argument
	ReturnType string
	Throws     []string
	Body       Node
	Static     bool
	Method     *typesystem.Method
	scope      *Scope
}

func (m *MethodDefinition) Children() []Node {
	out := make([]Node, 0, len(m.Args)+1)
	for _, a := range m.Args {
		out = append(out, a)
	}
	return append(out, nonNil(m.Body)...)
}
func (m *MethodDefinition) Infer(v Inferrer) typesystem.Type { return v.InferMethodDefinition(m) }
func (m *MethodDefinition) Compile(c Compiler, expression bool) error {
	return c.CompileMethodDefinition(m, expression)
}
func (m *MethodDefinition) String() string {
	names := make([]string, len(m.Args))
	for i, a := range m.Args {
		names[i] = a.Name
	}
	return "MethodDefinition(" + m.Name + "(" + strings.Join(names, ", ") + "))"
}

func (m *MethodDefinition) Scope() *Scope {
	if m.scope == nil {
		m.scope = NewScope(m.Name, nil)
	}
	return m.scope
}

// IsConstructor reports whether the method is the class initializer.
func (m *MethodDefinition) IsConstructor() bool { return m.Name == "initialize" && !m.Static }

// Argument is a typed method parameter.
type Argument struct {
	base
	Name     string
	TypeName string
}

func (a *Argument) Children() []Node                 { return nil }
func (a *Argument) Infer(v Inferrer) typesystem.Type { return v.InferArgument(a) }
func (a *Argument) Compile(c Compiler, expression bool) error {
	return c.CompileArgument(a, expression)
}
func (a *Argument) String() string { return "Argument(" + a.Name + ":" + a.TypeName + ")" }
