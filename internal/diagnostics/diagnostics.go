// Package diagnostics defines the errors reported by the compiler.
//
// Two tiers exist. A DiagnosticError is user-facing: it names a source
// position and is produced for problems in the input program (unresolvable
// types, malformed trees, bad regex literals). A Fault is an internal
// invariant violation raised by code generation; it aborts the compilation
// and is never retried.
package diagnostics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/dubyc/internal/token"
)

type ErrorCode string

const (
	ErrI001 ErrorCode = "I001" // unresolved after fixpoint
	ErrI002 ErrorCode = "I002" // unknown type name
	ErrL001 ErrorCode = "L001" // invalid regex literal
	ErrD001 ErrorCode = "D001" // malformed input tree
	ErrC001 ErrorCode = "C001" // configuration
	ErrE001 ErrorCode = "E001" // emission
)

var codeTitles = map[ErrorCode]string{
	ErrI001: "cannot infer type",
	ErrI002: "unknown type",
	ErrL001: "invalid regular expression",
	ErrD001: "malformed tree",
	ErrC001: "configuration error",
	ErrE001: "emission failed",
}

// DiagnosticError is a user-facing compile error.
type DiagnosticError struct {
	Code    ErrorCode
	Pos     token.Position
	File    string
	Message string
}

func NewError(code ErrorCode, pos token.Position, format string, args ...any) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Pos:     pos,
		File:    pos.File,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *DiagnosticError) Title() string {
	if t, ok := codeTitles[e.Code]; ok {
		return t
	}
	return "error"
}

func (e *DiagnosticError) Error() string {
	pos := e.Pos
	if pos.File == "" {
		pos.File = e.File
	}
	return fmt.Sprintf("%s: error[%s]: %s", pos, e.Code, e.Message)
}

// List is a sortable set of diagnostics that is itself an error.
type List []*DiagnosticError

func (l List) Len() int           { return len(l) }
func (l List) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l List) Less(i, j int) bool { return l[i].Pos.Before(l[j].Pos) }

// Sort orders the list by position, keeping insertion order for ties.
func (l List) Sort() { sort.Stable(l) }

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil for an empty list so callers can return it directly.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Collect extracts diagnostics from err, which may be a single
// DiagnosticError, a List or a joined error containing either.
func Collect(err error) List {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out List
		for _, e := range joined.Unwrap() {
			out = append(out, Collect(e)...)
		}
		return out
	}
	var list List
	if errors.As(err, &list) {
		return list
	}
	var d *DiagnosticError
	if errors.As(err, &d) {
		return List{d}
	}
	return nil
}

// Fault is an internal invariant violation found during code generation.
type Fault struct {
	Kind    string
	Pos     token.Position
	Message string
}

func NewFault(kind string, pos token.Position, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("internal compiler error: %s at %s: %s", f.Kind, f.Pos, f.Message)
}

// IsFault reports whether err carries an internal fault.
func IsFault(err error) bool {
	var f *Fault
	return errors.As(err, &f)
}
