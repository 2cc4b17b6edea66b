package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
)

const sample = `
file: demo/counter.duby
body:
  - kind: local_assign
    name: x
    value: {kind: fixnum, value: 5}
  - kind: class
    name: Counter
    body:
      - kind: def
        name: bump
        args: [{name: by, type: int}]
        returns: int
        body:
          - kind: return
            value:
              kind: call
              target: {kind: local, name: by}
              name: "+"
              args: [{kind: fixnum, value: 1}]
  - kind: loop
    condition: {kind: boolean, value: true}
    body: [{kind: break}]
`

func TestDecodeBuildsLinkedTree(t *testing.T) {
	script, err := Decode([]byte(sample), "input.yaml")
	require.NoError(t, err)
	assert.Equal(t, "demo/counter.duby", script.File)
	require.Len(t, script.Body.Statements, 3)

	assign, ok := script.Body.Statements[0].(*LocalAssignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	assert.Equal(t, int64(5), assign.Value.(*Fixnum).Value)
	assert.Same(t, Node(assign), assign.Value.Parent())
	assert.Equal(t, "demo/counter.duby", assign.Pos().File)
	assert.Equal(t, 4, assign.Pos().Line)

	class := script.Body.Statements[1].(*ClassDefinition)
	def := class.Body.Statements[0].(*MethodDefinition)
	require.Len(t, def.Args, 1)
	assert.Equal(t, "int", def.Args[0].TypeName)
	assert.Equal(t, "int", def.ReturnType)

	loop := script.Body.Statements[2].(*Loop)
	assert.True(t, loop.CheckFirst)
	assert.False(t, loop.Negative)
}

func TestScopeOf(t *testing.T) {
	script, err := Decode([]byte(sample), "input.yaml")
	require.NoError(t, err)

	assign := script.Body.Statements[0]
	assert.Same(t, script.Scope(), ScopeOf(assign))

	class := script.Body.Statements[1].(*ClassDefinition)
	def := class.Body.Statements[0].(*MethodDefinition)
	assert.Same(t, class.Scope(), ScopeOf(def), "a method is bound in its class")

	var by *Local
	Walk(def, func(n Node) bool {
		if l, ok := n.(*Local); ok {
			by = l
		}
		return true
	})
	require.NotNil(t, by)
	assert.Same(t, def.Scope(), ScopeOf(by))
	assert.NotSame(t, def.Scope(), script.Scope())

	m, ok := Enclosing[*MethodDefinition](by)
	require.True(t, ok)
	assert.Same(t, def, m)
}

func TestDecodePositionOverride(t *testing.T) {
	script, err := Decode([]byte(`[{kind: local, name: y, line: 12, column: 3}]`), "x.yaml")
	require.NoError(t, err)
	pos := script.Body.Statements[0].Pos()
	assert.Equal(t, "x.yaml:12:3", pos.String())
}

func TestDecodeRejectsBadCoordinates(t *testing.T) {
	input := `
- {kind: fixnum, value: 1, line: abc}
- {kind: fixnum, value: 2, line: 4, column: -1}
`
	_, err := Decode([]byte(input), "bad.yaml")
	require.Error(t, err)
	list := diagnostics.Collect(err)
	require.Len(t, list, 2)
	assert.Equal(t, diagnostics.ErrD001, list[0].Code)
	assert.Contains(t, list[0].Message, `line must be a non-negative integer, got "abc"`)
	assert.Contains(t, list[1].Message, "column")
}

func TestDecodeReportsEveryMalformedNode(t *testing.T) {
	input := `
body:
  - {kind: nonsense}
  - {kind: local_assign, name: x}
  - {kind: fixnum, value: abc}
`
	_, err := Decode([]byte(input), "bad.yaml")
	require.Error(t, err)
	list := diagnostics.Collect(err)
	require.Len(t, list, 3)
	for _, d := range list {
		assert.Equal(t, diagnostics.ErrD001, d.Code)
	}
	assert.Contains(t, list[0].Message, `unknown node kind "nonsense"`)
	assert.Contains(t, list[1].Message, `requires "value"`)
}

func TestDecodeSaturatesHugeIntegers(t *testing.T) {
	script, err := Decode([]byte(`[{kind: fixnum, value: 99999999999999999999}]`), "big.yaml")
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036854775807), script.Body.Statements[0].(*Fixnum).Value)
}

func TestInferredTypeFrozenOnceResolved(t *testing.T) {
	n := &Local{Name: "x"}
	n.SetInferredType(typesystem.Int)
	n.SetInferredType(typesystem.Long)
	n.MarkResolved()
	n.SetInferredType(typesystem.Long)

	assert.PanicsWithError(t,
		"internal compiler error: node at <input>: type of resolved node changed from long to boolean",
		func() { n.SetInferredType(typesystem.Boolean) })
}

func TestKindAndString(t *testing.T) {
	assert.Equal(t, "StringConcat", Kind(&StringConcat{}))
	assert.Equal(t, "MethodDefinition(add(a, b))",
		(&MethodDefinition{Name: "add", Args: []*Argument{{Name: "a"}, {Name: "b"}}}).String())
	assert.Equal(t, "Loop(do-until)", (&Loop{Negative: true}).String())
}
