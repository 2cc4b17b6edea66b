package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignablePrimitives(t *testing.T) {
	tests := []struct {
		to, from Type
		want     bool
	}{
		{Int, Byte, true},
		{Long, Int, true},
		{Double, Long, true},
		{Byte, Int, false},
		{Int, Char, true},
		{Char, Byte, false},
		{Short, Char, false},
		{Boolean, Int, false},
		{Int, Boolean, false},
		{Int, Unreachable, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Assignable(tt.to, tt.from), "%s <- %s", tt.to, tt.from)
	}
}

func TestAssignableReferences(t *testing.T) {
	r := NewRegistry()
	foo := r.DefineClass("demo.Foo", nil)
	bar := r.DefineClass("demo.Bar", foo)

	assert.True(t, Assignable(foo, bar))
	assert.False(t, Assignable(bar, foo))
	assert.True(t, Assignable(r.Object, bar))
	assert.True(t, Assignable(r.Object, ArrayOf(Int)))
	assert.True(t, Assignable(r.String, Null))
	assert.True(t, Assignable(ArrayOf(Int), Null))
	assert.False(t, Assignable(Int, Null))
	assert.False(t, Assignable(r.Object, Int))
}

func TestPromote(t *testing.T) {
	got, ok := Promote(Byte, Short)
	assert.True(t, ok)
	assert.Equal(t, Type(Int), got)

	got, _ = Promote(Int, Long)
	assert.Equal(t, Type(Long), got)

	got, _ = Promote(Float, Long)
	assert.Equal(t, Type(Float), got)

	got, _ = Promote(NewFixnumLiteral(1), NewFloatLiteral(2))
	assert.Equal(t, Type(Double), got)

	_, ok = Promote(Boolean, Int)
	assert.False(t, ok)

	got, _ = PromoteUnary(Char)
	assert.Equal(t, Type(Int), got)
}

func TestMerge(t *testing.T) {
	r := NewRegistry()
	foo := r.DefineClass("demo.Foo", nil)
	bar := r.DefineClass("demo.Bar", foo)
	baz := r.DefineClass("demo.Baz", foo)

	assert.Equal(t, Type(Int), Merge(Int, Unreachable, r.Object))
	assert.Equal(t, Type(Long), Merge(Int, Long, r.Object))
	assert.Equal(t, Type(r.String), Merge(Null, r.String, r.Object))
	assert.Equal(t, Type(foo), Merge(bar, baz, r.Object))
	assert.Equal(t, Type(r.Object), Merge(r.String, bar, r.Object))
	assert.Equal(t, Void, Merge(Void, Int, r.Object))
	assert.Equal(t, Type(Int), Merge(nil, Int, r.Object))

	cell := NewFixnumLiteral(3)
	assert.Same(t, cell, Merge(cell, Int, r.Object), "equal arms keep the shared cell")
}
