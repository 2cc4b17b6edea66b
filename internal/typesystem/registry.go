package typesystem

import "strings"

// ConstructorName is the pseudo-method used to instantiate a class.
const ConstructorName = "new"

// Registry is the catalogue of known types and their methods for one
// compilation run.
type Registry struct {
	types map[string]Type

	Object           *Class
	String           *Class
	Pattern          *Class
	List             *Class
	Throwable        *Class
	Exception        *Class
	RuntimeException *Class
}

// NewRegistry creates a registry pre-populated with the primitive types and
// the prelude classes.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	for _, p := range primitives {
		r.types[p.name] = p
	}
	r.types["void"] = Void
	r.initPrelude()
	return r
}

// Lookup resolves a type name. Names ending in [] denote arrays.
func (r *Registry) Lookup(name string) (Type, bool) {
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		t, found := r.Lookup(elem)
		if !found || IsVoid(t) {
			return nil, false
		}
		return ArrayOf(t), true
	}
	t, ok := r.types[name]
	return t, ok
}

// DefineClass declares a class under its full name and simple name. Defining
// an existing class returns it unchanged.
func (r *Registry) DefineClass(fullName string, super *Class) *Class {
	if t, ok := r.types[fullName]; ok {
		if c, ok := t.(*Class); ok {
			return c
		}
	}
	if super == nil {
		super = r.Object
	}
	c := NewClass(fullName, super)
	r.register(c)
	return c
}

func (r *Registry) register(c *Class) {
	r.types[c.FullName] = c
	if simple := c.SimpleName(); simple != c.FullName {
		if _, taken := r.types[simple]; !taken {
			r.types[simple] = c
		}
	}
}

// Well-known types used by literal inference.

func (r *Registry) StringType() Type  { return r.String }
func (r *Registry) BooleanType() Type { return Boolean }
func (r *Registry) NullType() Type    { return Null }
func (r *Registry) RegexType() Type   { return r.Pattern }
func (r *Registry) ArrayType() Type   { return r.List }
func (r *Registry) VoidType() Type    { return Void }

func (r *Registry) FixnumType(v int64) *Narrowing  { return NewFixnumLiteral(v) }
func (r *Registry) FloatType(v float64) *Narrowing { return NewFloatLiteral(v) }

// FindMethod resolves name on target for the given argument types. A meta
// target finds static methods (and constructors for "new"); a class target
// finds instance methods along the superclass chain.
//
// Matching tries exact parameter keys first, then assignability, and
// finally the narrowing candidates of literal arguments. Only a successful
// narrowing match commits the involved cells.
func (r *Registry) FindMethod(target Type, name string, args []Type) (*Method, error) {
	var candidates []*Method
	switch t := Underlying(target).(type) {
	case *Meta:
		if name == ConstructorName {
			candidates = constructors(t.Of)
		} else {
			candidates = collect(t.Of, name, true, len(args))
		}
	case *Class:
		candidates = collect(t, name, false, len(args))
	}

	for _, m := range candidates {
		if matchAll(m.Params, args, Equal) {
			return m, nil
		}
	}
	for _, m := range candidates {
		if matchAll(m.Params, args, Assignable) {
			return m, nil
		}
	}
	for _, m := range candidates {
		if matchNarrowed(m.Params, args) {
			for i, a := range args {
				if n, ok := a.(*Narrowing); ok && !Assignable(m.Params[i], n) {
					n.Narrow()
				}
			}
			return m, nil
		}
	}
	return nil, &MethodNotFoundError{Target: target, Name: name, Args: args}
}

func collect(c *Class, name string, static bool, arity int) []*Method {
	var out []*Method
	for k := c; k != nil; k = k.Super {
		for _, m := range k.methods[name] {
			if m.Static == static && !m.Constructor && len(m.Params) == arity {
				out = append(out, m)
			}
		}
		if static {
			break
		}
	}
	return out
}

func constructors(c *Class) []*Method {
	var out []*Method
	for _, m := range c.methods[ConstructorName] {
		if m.Constructor {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		out = append(out, &Method{Name: ConstructorName, Owner: c, Constructor: true, Return: c})
	}
	return out
}

func matchAll(params, args []Type, ok func(to, from Type) bool) bool {
	if len(params) != len(args) {
		return false
	}
	for i := range params {
		if !ok(params[i], args[i]) {
			return false
		}
	}
	return true
}

func matchNarrowed(params, args []Type) bool {
	if len(params) != len(args) {
		return false
	}
	for i := range params {
		a := args[i]
		if n, ok := a.(*Narrowing); ok {
			a = n.Candidate()
		}
		if !Assignable(params[i], a) {
			return false
		}
	}
	return true
}
