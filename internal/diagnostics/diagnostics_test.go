package diagnostics

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dubyc/internal/token"
)

func TestDiagnosticErrorFormat(t *testing.T) {
	err := NewError(ErrI001, token.Position{File: "a.duby", Line: 2, Column: 4}, "cannot infer %s", "x")
	assert.Equal(t, "a.duby:2:4: error[I001]: cannot infer x", err.Error())
	assert.Equal(t, "cannot infer type", err.Title())
}

func TestListSortsByPosition(t *testing.T) {
	l := List{
		NewError(ErrI001, token.Position{File: "a", Line: 9}, "late"),
		NewError(ErrI001, token.Position{File: "a", Line: 1}, "early"),
	}
	l.Sort()
	assert.Equal(t, "early", l[0].Message)
	assert.Nil(t, List(nil).Err())
	assert.Error(t, l.Err())
}

func TestCollectUnwrapsJoinedErrors(t *testing.T) {
	a := NewError(ErrL001, token.Position{Line: 1}, "a")
	b := List{NewError(ErrI002, token.Position{Line: 2}, "b")}
	got := Collect(errors.Join(a, fmt.Errorf("wrapped: %w", b)))
	require.Len(t, got, 2)
	assert.Equal(t, ErrL001, got[0].Code)
	assert.Equal(t, ErrI002, got[1].Code)
	assert.Nil(t, Collect(errors.New("plain")))
}

func TestFault(t *testing.T) {
	var err error = NewFault("Local", token.Position{File: "x", Line: 3}, "unresolved node")
	assert.True(t, IsFault(fmt.Errorf("codegen: %w", err)))
	assert.Contains(t, err.Error(), "internal compiler error: Local at x:3")
	assert.False(t, IsFault(NewError(ErrI001, token.Position{}, "no")))
}

func TestPrinterWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Print(List{NewError(ErrI002, token.Position{File: "f.duby", Line: 1, Column: 2}, "no type Foo")})
	assert.Equal(t, "f.duby:1:2: error[I002] unknown type: no type Foo\n", buf.String())

	buf.Reset()
	p.Print(NewFault("Loop", token.Position{File: "f.duby", Line: 5}, "bad shape"))
	assert.Equal(t, "f.duby:5: internal error: Loop: bad shape\n", buf.String())

	buf.Reset()
	p.Print(errors.New("boom"))
	assert.Equal(t, "error: boom\n", buf.String())
}
