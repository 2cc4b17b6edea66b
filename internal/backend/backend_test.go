package backend

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/pipeline"
)

func TestFileBackendCreatesPackageDirs(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)

	where, err := b.Emit("demo/Test.java", "class Test {}\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demo", "Test.java"), where)

	data, err := os.ReadFile(where)
	require.NoError(t, err)
	assert.Equal(t, "class Test {}\n", string(data))
}

func TestStreamBackend(t *testing.T) {
	var buf bytes.Buffer
	b := &StreamBackend{Out: &buf}
	_, err := b.Emit("demo/A.java", "a\n")
	require.NoError(t, err)
	_, err = b.Emit("demo/B.java", "b\n")
	require.NoError(t, err)
	assert.Equal(t, "// ==> demo/A.java\na\n// ==> demo/B.java\nb\n", buf.String())
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	_, err := b.Emit("demo/B.java", "b")
	require.NoError(t, err)
	_, err = b.Emit("demo/A.java", "a")
	require.NoError(t, err)

	assert.Equal(t, []string{"demo/A.java", "demo/B.java"}, b.Filenames())
	src, ok := b.Source("demo/A.java")
	assert.True(t, ok)
	assert.Equal(t, "a", src)
}

func newContext(units ...pipeline.Unit) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext("demo/test.duby", nil, config.Default(), nil)
	ctx.Units = units
	return ctx
}

func TestEmitProcessor(t *testing.T) {
	b := NewMemoryBackend()
	ctx := newContext(
		pipeline.Unit{Filename: "demo/Test.java", Source: "x"},
		pipeline.Unit{Filename: "demo/Dog.java", Source: "y"},
	)
	ctx = NewEmitProcessor(b).Process(ctx)

	require.NoError(t, ctx.Err())
	assert.Equal(t, []string{"demo/Test.java", "demo/Dog.java"}, ctx.Emitted)
	assert.Len(t, b.Filenames(), 2)
}

func TestEmitProcessorSkipsFailedRun(t *testing.T) {
	b := NewMemoryBackend()
	ctx := newContext(pipeline.Unit{Filename: "demo/Test.java", Source: "x"})
	ctx.Errors = append(ctx.Errors, errors.New("earlier failure"))

	NewEmitProcessor(b).Process(ctx)
	assert.Empty(t, b.Filenames())
	assert.Empty(t, ctx.Emitted)
}

type failingBackend struct{}

func (failingBackend) Name() string { return "broken" }
func (failingBackend) Emit(string, string) (string, error) {
	return "", errors.New("disk full")
}

func TestEmitProcessorReportsFailure(t *testing.T) {
	ctx := newContext(pipeline.Unit{Filename: "demo/Test.java", Source: "x"})
	ctx = NewEmitProcessor(failingBackend{}).Process(ctx)

	require.True(t, ctx.Failed())
	list := diagnostics.Collect(ctx.Err())
	require.Len(t, list, 1)
	assert.Equal(t, diagnostics.ErrE001, list[0].Code)
	assert.Contains(t, list[0].Error(), "disk full")
}
