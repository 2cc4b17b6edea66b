package ast

import "fmt"

// Scope identifies a lexical binding region. It is compared by identity;
// Outer is consulted by lookups that fall through to an enclosing region.
type Scope struct {
	Name  string
	Outer *Scope
}

func NewScope(name string, outer *Scope) *Scope {
	return &Scope{Name: name, Outer: outer}
}

func (s *Scope) String() string {
	if s == nil {
		return "<no scope>"
	}
	return fmt.Sprintf("scope(%s)", s.Name)
}

// ScopeOwner is implemented by nodes that open a scope: the script, class
// bodies and method bodies.
type ScopeOwner interface {
	Node
	Scope() *Scope
}

// ScopeOf returns the scope n binds names in: that of the nearest enclosing
// owner. A scope owner's own scope is not considered, so a method definition
// is itself bound in its class.
func ScopeOf(n Node) *Scope {
	if owner, ok := Enclosing[ScopeOwner](n); ok {
		return owner.Scope()
	}
	return nil
}
