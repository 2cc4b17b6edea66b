package typesystem

import (
	"fmt"
	"strings"
)

// SymbolNotFoundError indicates a type name was not found
type SymbolNotFoundError struct {
	Name string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("type not found: %s", e.Name)
}

func NewSymbolNotFoundError(name string) *SymbolNotFoundError {
	return &SymbolNotFoundError{Name: name}
}

// MethodNotFoundError indicates no method matched a call site.
type MethodNotFoundError struct {
	Target Type
	Name   string
	Args   []Type
}

func (e *MethodNotFoundError) Error() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	target := e.Target.String()
	if m, ok := e.Target.(*Meta); ok {
		target = m.Of.String()
	}
	return fmt.Sprintf("no method %s.%s(%s)", target, e.Name, strings.Join(args, ", "))
}
