package ast

import (
	"fmt"
	"strconv"

	"github.com/funvibe/dubyc/internal/typesystem"
)

// Fixnum is an integer literal, e.g. 42
type Fixnum struct {
	base
	Value int64
}

func (f *Fixnum) Children() []Node                          { return nil }
func (f *Fixnum) Infer(v Inferrer) typesystem.Type          { return v.InferFixnum(f) }
func (f *Fixnum) Compile(c Compiler, expression bool) error { return c.CompileFixnum(f, expression) }
func (f *Fixnum) String() string                            { return "Fixnum(" + strconv.FormatInt(f.Value, 10) + ")" }

// Float is a floating point literal, e.g. 1.5
type Float struct {
	base
	Value float64
}

func (f *Float) Children() []Node                          { return nil }
func (f *Float) Infer(v Inferrer) typesystem.Type          { return v.InferFloat(f) }
func (f *Float) Compile(c Compiler, expression bool) error { return c.CompileFloat(f, expression) }
func (f *Float) String() string                            { return "Float(" + strconv.FormatFloat(f.Value, 'g', -1, 64) + ")" }

// String is a string literal.
type String struct {
	base
	Value string
}

func (s *String) Children() []Node                          { return nil }
func (s *String) Infer(v Inferrer) typesystem.Type          { return v.InferString(s) }
func (s *String) Compile(c Compiler, expression bool) error { return c.CompileString(s, expression) }
func (s *String) String() string                            { return "String(" + strconv.Quote(s.Value) + ")" }

// Boolean is true or false.
type Boolean struct {
	base
	Value bool
}

func (b *Boolean) Children() []Node                          { return nil }
func (b *Boolean) Infer(v Inferrer) typesystem.Type          { return v.InferBoolean(b) }
func (b *Boolean) Compile(c Compiler, expression bool) error { return c.CompileBoolean(b, expression) }
func (b *Boolean) String() string                            { return "Boolean(" + strconv.FormatBool(b.Value) + ")" }

// Null is nil.
type Null struct {
	base
}

func (n *Null) Children() []Node                          { return nil }
func (n *Null) Infer(v Inferrer) typesystem.Type          { return v.InferNull(n) }
func (n *Null) Compile(c Compiler, expression bool) error { return c.CompileNull(n, expression) }
func (n *Null) String() string                            { return "Null" }

// Regexp is a regular expression literal, e.g. /a+b/
type Regexp struct {
	base
	Pattern string
}

func (r *Regexp) Children() []Node                          { return nil }
func (r *Regexp) Infer(v Inferrer) typesystem.Type          { return v.InferRegexp(r) }
func (r *Regexp) Compile(c Compiler, expression bool) error { return c.CompileRegexp(r, expression) }
func (r *Regexp) String() string                            { return "Regexp(/" + r.Pattern + "/)" }

// Array is an array literal, e.g. [1, 2, x]
type Array struct {
	base
	Elements []Node
}

func (a *Array) Children() []Node                          { return a.Elements }
func (a *Array) Infer(v Inferrer) typesystem.Type          { return v.InferArray(a) }
func (a *Array) Compile(c Compiler, expression bool) error { return c.CompileArray(a, expression) }
func (a *Array) String() string                            { return fmt.Sprintf("Array(%d)", len(a.Elements)) }

// StringConcat is an interpolated string, e.g. "a #{b} c"
type StringConcat struct {
	base
	Parts []Node
}

func (s *StringConcat) Children() []Node                 { return s.Parts }
func (s *StringConcat) Infer(v Inferrer) typesystem.Type { return v.InferStringConcat(s) }
func (s *StringConcat) Compile(c Compiler, expression bool) error {
	return c.CompileStringConcat(s, expression)
}
func (s *StringConcat) String() string { return fmt.Sprintf("StringConcat(%d)", len(s.Parts)) }

// ToString converts the value of its body to a string, as inside #{...}
type ToString struct {
	base
	Body Node
}

func (t *ToString) Children() []Node                 { return nonNil(t.Body) }
func (t *ToString) Infer(v Inferrer) typesystem.Type { return v.InferToString(t) }
func (t *ToString) Compile(c Compiler, expression bool) error {
	return c.CompileToString(t, expression)
}
func (t *ToString) String() string { return "ToString" }

// EmptyArray allocates a native array of Size elements of the named type.
type EmptyArray struct {
	base
	TypeName string
	Size     Node
}

func (e *EmptyArray) Children() []Node                 { return nonNil(e.Size) }
func (e *EmptyArray) Infer(v Inferrer) typesystem.Type { return v.InferEmptyArray(e) }
func (e *EmptyArray) Compile(c Compiler, expression bool) error {
	return c.CompileEmptyArray(e, expression)
}
func (e *EmptyArray) String() string { return "EmptyArray(" + e.TypeName + ")" }
