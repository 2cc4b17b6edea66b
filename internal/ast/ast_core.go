// Package ast defines the typed program tree handed over by the front end.
//
// Every node carries a source position, a parent link, an inferred type slot
// and a resolved flag. The two are independent: a node may already expose a
// type that dependents can use while it still waits for its own children.
package ast

import (
	"fmt"

	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/token"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// Node is the base interface for all tree nodes.
type Node interface {
	Pos() token.Position
	Parent() Node
	Children() []Node

	Resolved() bool
	MarkResolved()
	InferredType() typesystem.Type
	SetInferredType(t typesystem.Type)

	// Infer and Compile dispatch to the rule for the concrete node kind.
	Infer(v Inferrer) typesystem.Type
	Compile(c Compiler, expression bool) error

	String() string

	setParent(p Node)
}

// base holds the state shared by all node kinds.
type base struct {
	pos      token.Position
	parent   Node
	resolved bool
	inferred typesystem.Type
}

func (b *base) Pos() token.Position     { return b.pos }
func (b *base) SetPos(p token.Position) { b.pos = p }
func (b *base) Parent() Node            { return b.parent }
func (b *base) setParent(p Node)        { b.parent = p }
func (b *base) Resolved() bool          { return b.resolved }
func (b *base) MarkResolved()           { b.resolved = true }

func (b *base) InferredType() typesystem.Type { return b.inferred }

// SetInferredType records the node's type. Once the node is resolved the
// slot is frozen; overwriting it with a different type is a fault.
func (b *base) SetInferredType(t typesystem.Type) {
	if b.resolved && b.inferred != nil && b.inferred != t {
		panic(diagnostics.NewFault("node", b.pos,
			"type of resolved node changed from %s to %v", b.inferred, t))
	}
	b.inferred = t
}

// Positioned is implemented by every node; the decoder uses it to stamp
// source locations.
type Positioned interface {
	SetPos(p token.Position)
}

// Link sets the parent pointer of every node below root. It is called by the
// decoder and by NewScript; trees assembled by hand must be linked before
// inference.
func Link(root Node) {
	for _, child := range root.Children() {
		if child == nil {
			continue
		}
		child.setParent(root)
		Link(child)
	}
}

// Walk visits n and its descendants in pre-order, stopping a branch when fn
// returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		if child != nil {
			Walk(child, fn)
		}
	}
}

// Kind returns the short kind name of n, used in faults and logs.
func Kind(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", n)[len("*ast."):]
}

// Enclosing returns the nearest ancestor of n (excluding n) of type T.
func Enclosing[T Node](n Node) (T, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// nonNil drops absent optional children.
func nonNil(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
