package typesystem

import "strings"

// Type is the interface for all types in our system.
//
// Name is the spelling used in generated source. Key identifies the type for
// equality and hashing; narrowing cells delegate it to their current
// effective type, so callers must compare Keys (or use Equal) rather than
// interface values.
type Type interface {
	Kind() Kind
	Name() string
	Key() string
	String() string
}

// Primitive is a native value type. Numeric primitives carry a rank used for
// widening: a primitive may be widened to any numeric primitive of higher
// rank (char only widens to int and above).
type Primitive struct {
	name    string
	rank    int
	numeric bool
	zero    string
}

func (p *Primitive) Kind() Kind        { return KindPrimitive }
func (p *Primitive) Name() string      { return p.name }
func (p *Primitive) Key() string       { return p.name }
func (p *Primitive) String() string    { return p.name }
func (p *Primitive) IsNumeric() bool   { return p.numeric }
func (p *Primitive) Rank() int         { return p.rank }
func (p *Primitive) ZeroValue() string { return p.zero }

var (
	Byte    = &Primitive{name: "byte", rank: 1, numeric: true, zero: "0"}
	Short   = &Primitive{name: "short", rank: 2, numeric: true, zero: "0"}
	Char    = &Primitive{name: "char", rank: 2, numeric: true, zero: "'\\0'"}
	Int     = &Primitive{name: "int", rank: 3, numeric: true, zero: "0"}
	Long    = &Primitive{name: "long", rank: 4, numeric: true, zero: "0L"}
	Float   = &Primitive{name: "float", rank: 5, numeric: true, zero: "0.0f"}
	Double  = &Primitive{name: "double", rank: 6, numeric: true, zero: "0.0"}
	Boolean = &Primitive{name: "boolean", zero: "false"}
)

var primitives = []*Primitive{Byte, Short, Char, Int, Long, Float, Double, Boolean}

type special struct {
	kind Kind
	name string
}

func (s *special) Kind() Kind     { return s.kind }
func (s *special) Name() string   { return s.name }
func (s *special) Key() string    { return "<" + s.name + ">" }
func (s *special) String() string { return s.name }

var (
	// Void is the type of statements that produce no value.
	Void Type = &special{kind: KindVoid, name: "void"}
	// Null is the type of the null literal; assignable to every reference.
	Null Type = &special{kind: KindNull, name: "null"}
	// Unreachable is the type of jumps (return, break, raise...). It merges
	// away in favour of any other type.
	Unreachable Type = &special{kind: KindUnreachable, name: "unreachable"}
)

// Class is a reference type with methods.
type Class struct {
	FullName    string
	Super       *Class
	Interface   bool
	UserDefined bool
	methods     map[string][]*Method
}

func NewClass(fullName string, super *Class) *Class {
	return &Class{FullName: fullName, Super: super, methods: make(map[string][]*Method)}
}

func (c *Class) Kind() Kind { return KindClass }

// Name drops the java.lang package, which is always in scope.
func (c *Class) Name() string {
	if rest, ok := strings.CutPrefix(c.FullName, "java.lang."); ok && !strings.Contains(rest, ".") {
		return rest
	}
	return c.FullName
}

func (c *Class) Key() string    { return c.FullName }
func (c *Class) String() string { return c.FullName }

// SimpleName is the last segment of the full name.
func (c *Class) SimpleName() string {
	if i := strings.LastIndexByte(c.FullName, '.'); i >= 0 {
		return c.FullName[i+1:]
	}
	return c.FullName
}

// Package is everything before the last segment, or "".
func (c *Class) Package() string {
	if i := strings.LastIndexByte(c.FullName, '.'); i >= 0 {
		return c.FullName[:i]
	}
	return ""
}

// IsSubclassOf walks the superclass chain.
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.Super {
		if k.FullName == other.FullName {
			return true
		}
	}
	return false
}

// Meta returns the static side of the class.
func (c *Class) Meta() *Meta { return &Meta{Of: c} }

// Meta is the type of a class reference used as a value (static calls,
// constructor calls).
type Meta struct {
	Of *Class
}

func (m *Meta) Kind() Kind     { return KindMeta }
func (m *Meta) Name() string   { return m.Of.Name() }
func (m *Meta) Key() string    { return "meta:" + m.Of.Key() }
func (m *Meta) String() string { return m.Of.String() + ".class" }

// Array is a native array type.
type Array struct {
	Elem Type
}

func ArrayOf(elem Type) *Array { return &Array{Elem: elem} }

func (a *Array) Kind() Kind     { return KindArray }
func (a *Array) Name() string   { return a.Elem.Name() + "[]" }
func (a *Array) Key() string    { return "[" + a.Elem.Key() }
func (a *Array) String() string { return a.Elem.String() + "[]" }

// Equal compares the current effective types of a and b.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// Underlying unwraps narrowing cells to their current effective type.
func Underlying(t Type) Type {
	for {
		n, ok := t.(*Narrowing)
		if !ok {
			return t
		}
		t = n.current
	}
}

// AsPrimitive returns the primitive behind t, if any.
func AsPrimitive(t Type) (*Primitive, bool) {
	p, ok := Underlying(t).(*Primitive)
	return p, ok
}

// AsClass returns the class behind t, if any.
func AsClass(t Type) (*Class, bool) {
	c, ok := Underlying(t).(*Class)
	return c, ok
}

func IsVoid(t Type) bool        { return t != nil && t.Kind() == KindVoid }
func IsArray(t Type) bool       { return t != nil && t.Kind() == KindArray }
func IsMeta(t Type) bool        { return t != nil && t.Kind() == KindMeta }
func IsUnreachable(t Type) bool { return t != nil && t.Kind() == KindUnreachable }

// IsNumeric reports whether t is a numeric primitive.
func IsNumeric(t Type) bool {
	p, ok := AsPrimitive(t)
	return ok && p.numeric
}

// ZeroValue is the default initializer for a variable of type t.
func ZeroValue(t Type) string {
	if p, ok := AsPrimitive(t); ok {
		return p.zero
	}
	return "null"
}
