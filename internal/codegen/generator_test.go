package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dubyc/internal/analyzer"
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/pipeline"
	"github.com/funvibe/dubyc/internal/typesystem"
)

func newGenerator() *Generator {
	return New(typesystem.NewRegistry(), "demo/test.duby", builder.Options{Indent: 2}, nil)
}

func TestUnresolvedNodeIsFault(t *testing.T) {
	g := newGenerator()
	err := g.DefineMain(&ast.Fixnum{Value: 1})
	require.Error(t, err)
	assert.True(t, diagnostics.IsFault(err))
	assert.Len(t, g.stack, 1, "frames are popped on the error path")
}

func TestValueWithoutTarget(t *testing.T) {
	g := newGenerator()
	err := g.storeText(nil, "1")
	require.Error(t, err)
	assert.True(t, diagnostics.IsFault(err))
}

func TestBreakOutsideLoop(t *testing.T) {
	script, err := ast.Decode([]byte(`[{kind: break}]`), "demo/test.duby")
	require.NoError(t, err)
	reg := typesystem.NewRegistry()
	require.NoError(t, analyzer.New(reg, nil).Check(script))

	g := New(reg, script.File, builder.Options{Indent: 2}, nil)
	err = g.Compile(script)
	require.Error(t, err)
	assert.True(t, diagnostics.IsFault(err))
	assert.Len(t, g.stack, 1)
}

func TestRightOperandPrecedence(t *testing.T) {
	units := generate(t, []byte(`
- kind: def
  name: sub
  args: [{name: a, type: int}, {name: b, type: int}, {name: c, type: int}]
  returns: int
  body:
    - kind: call
      target: {kind: local, name: a}
      name: "-"
      args:
        - {kind: call, target: {kind: local, name: b}, name: "-", args: [{kind: local, name: c}]}
`))
	assert.Contains(t, units["demo/Test.java"], "return a - (b - c);")
}

func TestLeftOperandKeepsAssociativity(t *testing.T) {
	units := generate(t, []byte(`
- kind: def
  name: sub
  args: [{name: a, type: int}, {name: b, type: int}, {name: c, type: int}]
  returns: int
  body:
    - kind: call
      target: {kind: call, target: {kind: local, name: a}, name: "-", args: [{kind: local, name: b}]}
      name: "-"
      args: [{kind: local, name: c}]
`))
	assert.Contains(t, units["demo/Test.java"], "return a - b - c;")
}

func TestStringConcatenation(t *testing.T) {
	units := generate(t, []byte(`
- kind: def
  name: greet
  args: [{name: who, type: String}]
  returns: String
  body:
    - kind: call
      target: {kind: string, value: "hello "}
      name: "+"
      args: [{kind: local, name: who}]
`))
	assert.Contains(t, units["demo/Test.java"], `return "hello " + who;`)
}

func TestGeneratedFilesEndBalanced(t *testing.T) {
	units := generate(t, []byte(`
- kind: def
  name: count
  args: [{name: n, type: int}]
  returns: int
  body:
    - {kind: local_assign, name: i, value: {kind: fixnum, value: 0}}
    - kind: loop
      check_first: true
      condition: {kind: call, target: {kind: local, name: i}, name: "<", args: [{kind: local, name: n}]}
      body:
        - kind: local_assign
          name: i
          value: {kind: call, target: {kind: local, name: i}, name: "+", args: [{kind: fixnum, value: 1}]}
    - {kind: local, name: i}
`))
	src := units["demo/Test.java"]
	require.NotEmpty(t, src)
	opens, closes := 0, 0
	for _, r := range src {
		switch r {
		case '{':
			opens++
		case '}':
			closes++
		}
	}
	assert.Equal(t, opens, closes)
	assert.Contains(t, src, "while (redo$1 || i < n) {")
	assert.Contains(t, src, "return i;")
}

func TestProcessorFillsUnits(t *testing.T) {
	src := []byte(`[{kind: print, value: {kind: string, value: hi}}]`)
	ctx := pipeline.NewPipelineContext("demo/hello.duby", src, config.Default(), nil)
	ctx = pipeline.New(
		&pipeline.DecodeProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&CodeGeneratorProcessor{},
	).Run(ctx)

	require.NoError(t, ctx.Err())
	require.Len(t, ctx.Units, 1)
	assert.Equal(t, "demo/Hello.java", ctx.Units[0].Filename)
	assert.Contains(t, ctx.Units[0].Source, `System.out.println("hi");`)
}

func TestProcessorSkipsAfterFailure(t *testing.T) {
	ctx := pipeline.NewPipelineContext("demo/bad.duby", []byte(`[{kind: nope}]`), config.Default(), nil)
	ctx = pipeline.New(
		&pipeline.DecodeProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&CodeGeneratorProcessor{},
	).Run(ctx)

	assert.True(t, ctx.Failed())
	assert.Empty(t, ctx.Units)
}

func TestVoidValueFieldIsObject(t *testing.T) {
	units := generate(t, []byte(`
- kind: def
  name: noisy
  body: [{kind: print, value: {kind: string, value: hi}}]
- {kind: field_assign, name: "@last", value: {kind: fcall, name: noisy}}
`))
	src := units["demo/Test.java"]
	assert.Contains(t, src, "private static Object last;")
	assert.NotContains(t, src, "void last")
}

func TestNilCheckOnPrimitiveIsFalse(t *testing.T) {
	units := generate(t, []byte(`
- {kind: local_assign, name: i, value: {kind: fixnum, value: 1}}
- kind: print
  value: {kind: call, target: {kind: local, name: i}, name: "nil?"}
`))
	src := units["demo/Test.java"]
	assert.Contains(t, src, "System.out.println(false);")
	assert.NotContains(t, src, "i == null")
}

func TestNilCheckOnPrimitiveKeepsReceiverEffects(t *testing.T) {
	units := generate(t, []byte(`
- kind: def
  name: count
  returns: int
  body: [{kind: print, value: {kind: string, value: counted}}, {kind: fixnum, value: 1}]
- kind: print
  value: {kind: call, target: {kind: fcall, name: count}, name: "nil?"}
`))
	src := units["demo/Test.java"]
	assert.Contains(t, src, "Test.count();")
	assert.Contains(t, src, "temp$1 = false;")
	assert.Contains(t, src, "System.out.println(temp$1);")
}

func resolved[T ast.Node](n T, typ typesystem.Type) T {
	n.SetInferredType(typ)
	n.MarkResolved()
	return n
}

func TestEmptyArrayWithoutArrayTypeIsFault(t *testing.T) {
	g := newGenerator()
	size := resolved(&ast.Fixnum{Value: 3}, typesystem.Int)
	arr := resolved(&ast.EmptyArray{TypeName: "int", Size: size}, typesystem.Int)

	err := g.with(func(f *frame) { f.method = g.script.Main() }, func() error {
		return g.storeTo("x = ", arr)
	})
	require.Error(t, err)
	assert.True(t, diagnostics.IsFault(err))
	assert.NotContains(t, g.script.Render(), "x = null")
}
