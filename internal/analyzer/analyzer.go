// Package analyzer infers the static type of every node of a script.
//
// Inference is a deferred fixpoint: a rule that cannot finish because a
// dependency is still unknown leaves its node unresolved, the node is queued,
// and Resolve retries the queue until it empties or a sweep makes no
// progress.
package analyzer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
	"github.com/funvibe/dubyc/internal/utils"
)

// Typer implements ast.Inferrer.
type Typer struct {
	Registry *typesystem.Registry

	logger      *slog.Logger
	scriptClass *typesystem.Class

	locals map[localKey]typesystem.Type
	fields map[fieldKey]typesystem.Type

	deferred []ast.Node
	queued   map[ast.Node]bool
	reasons  map[ast.Node]reason

	returns  map[*ast.MethodDefinition][]typesystem.Type
	recorded map[*ast.Return]bool

	errs  diagnostics.List
	stats Stats
}

type localKey struct {
	scope *ast.Scope
	name  string
}

type fieldKey struct {
	class  string
	name   string
	static bool
}

// reason explains why a node is still deferred; it becomes the message of
// the diagnostic if the node never resolves.
type reason struct {
	code diagnostics.ErrorCode
	msg  string
}

// Stats describes the work done by Resolve.
type Stats struct {
	// Queued is the number of nodes deferred by the initial pass.
	Queued int
	// Progress holds, per sweep, the number of queued nodes that resolved.
	Progress []int
}

// Sweeps is the number of sweeps Resolve ran.
func (s Stats) Sweeps() int { return len(s.Progress) }

// New creates a Typer over registry. A nil logger means slog.Default().
func New(registry *typesystem.Registry, logger *slog.Logger) *Typer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Typer{
		Registry: registry,
		logger:   logger,
		locals:   make(map[localKey]typesystem.Type),
		fields:   make(map[fieldKey]typesystem.Type),
		queued:   make(map[ast.Node]bool),
		reasons:  make(map[ast.Node]reason),
		returns:  make(map[*ast.MethodDefinition][]typesystem.Type),
		recorded: make(map[*ast.Return]bool),
	}
}

// Check infers the whole script and runs the fixpoint. The returned error
// joins every user diagnostic found.
func (t *Typer) Check(script *ast.Script) error {
	t.Infer(script)
	t.stats.Queued = len(t.deferred)
	err := t.Resolve()
	t.errs.Sort()
	return errors.Join(t.errs.Err(), err)
}

// ScriptClass is the class holding main and script-level methods. It is
// defined when the script is first inferred.
func (t *Typer) ScriptClass() *typesystem.Class { return t.scriptClass }

// Stats reports the fixpoint progress of the last Resolve.
func (t *Typer) Stats() Stats { return t.stats }

// LearnLocalType records typ for name in scope unless the name already has
// a type, and returns the type the table holds. The first writer wins: a
// later assignment of a different type does not change the entry.
func (t *Typer) LearnLocalType(scope *ast.Scope, name string, typ typesystem.Type) typesystem.Type {
	key := localKey{scope, name}
	if existing, ok := t.locals[key]; ok {
		return existing
	}
	t.locals[key] = typ
	return typ
}

// LocalType looks name up in scope and then in its enclosing scopes.
func (t *Typer) LocalType(scope *ast.Scope, name string) (typesystem.Type, bool) {
	for s := scope; s != nil; s = s.Outer {
		if typ, ok := t.locals[localKey{s, name}]; ok {
			return typ, true
		}
	}
	return nil, false
}

func (t *Typer) learnFieldType(key fieldKey, typ typesystem.Type) typesystem.Type {
	if existing, ok := t.fields[key]; ok {
		return existing
	}
	t.fields[key] = typ
	return typ
}

// Defer queues n for another attempt. Queuing a node twice is a no-op.
func (t *Typer) Defer(n ast.Node) {
	if t.queued[n] {
		return
	}
	t.queued[n] = true
	t.deferred = append(t.deferred, n)
}

// Pending is the number of queued nodes.
func (t *Typer) Pending() int { return len(t.deferred) }

// Infer runs the rule for n, or returns the memoized type of a resolved
// node. A node still unresolved after its rule ran is queued.
func (t *Typer) Infer(n ast.Node) typesystem.Type {
	if n == nil {
		return typesystem.Void
	}
	if n.Resolved() {
		return n.InferredType()
	}
	typ := n.Infer(t)
	if n.Resolved() {
		delete(t.reasons, n)
		return n.InferredType()
	}
	if typ != nil {
		n.SetInferredType(typ)
	}
	t.Defer(n)
	return typ
}

// Resolve sweeps the queue until it is empty or a sweep resolves nothing.
// On failure every node left unresolved is reported, in source order.
func (t *Typer) Resolve() error {
	for len(t.deferred) > 0 {
		sweep := t.deferred
		t.deferred = nil
		t.queued = make(map[ast.Node]bool)

		progress := 0
		for _, n := range sweep {
			t.Infer(n)
			if n.Resolved() {
				progress++
			}
		}
		t.stats.Progress = append(t.stats.Progress, progress)
		t.logger.Debug("inference sweep",
			"sweep", len(t.stats.Progress), "resolved", progress, "remaining", len(t.deferred))

		if progress == 0 {
			return t.unresolved()
		}
	}
	return nil
}

// unresolved reports the nodes the failure originates from: queued nodes
// with no queued descendant. Their ancestors wait only because of them.
func (t *Typer) unresolved() error {
	var list diagnostics.List
	for _, n := range t.deferred {
		if !t.blockedOnDescendant(n) {
			r, ok := t.reasons[n]
			if !ok {
				r = reason{diagnostics.ErrI001, "no rule could determine it"}
			}
			list = append(list, diagnostics.NewError(r.code, n.Pos(), "cannot infer type of %s: %s", n, r.msg))
		}
	}
	t.logger.Debug("inference failed", "unresolved", len(t.deferred), "reported", len(list))
	list.Sort()
	return list
}

func (t *Typer) blockedOnDescendant(n ast.Node) bool {
	blocked := false
	for _, c := range n.Children() {
		ast.Walk(c, func(d ast.Node) bool {
			if t.queued[d] {
				blocked = true
			}
			return !blocked
		})
	}
	return blocked
}

// resolve records the final type of n.
func (t *Typer) resolve(n ast.Node, typ typesystem.Type) typesystem.Type {
	n.SetInferredType(typ)
	n.MarkResolved()
	return typ
}

// wait notes why n cannot resolve yet. The wrapper in Infer does the
// queuing.
func (t *Typer) wait(n ast.Node, format string, args ...any) typesystem.Type {
	t.reasons[n] = reason{diagnostics.ErrI001, fmt.Sprintf(format, args...)}
	return nil
}

func (t *Typer) waitType(n ast.Node, name string) typesystem.Type {
	t.reasons[n] = reason{diagnostics.ErrI002, typesystem.NewSymbolNotFoundError(name).Error()}
	return nil
}

// lookup resolves a type name written in the source. Script-local classes
// are registered under their simple names.
func (t *Typer) lookup(name string) (typesystem.Type, bool) {
	return t.Registry.Lookup(name)
}

func (t *Typer) report(err *diagnostics.DiagnosticError) {
	t.errs = append(t.errs, err)
}

// allResolved reports whether every non-nil node is resolved.
func allResolved(nodes ...ast.Node) bool {
	for _, n := range nodes {
		if n != nil && !n.Resolved() {
			return false
		}
	}
	return true
}

// scriptPackage is the package all classes of the script live in.
func (t *Typer) scriptPackage(n ast.Node) string {
	if s, ok := n.(*ast.Script); ok {
		return utils.PackageName(s.File)
	}
	if s, ok := ast.Enclosing[*ast.Script](n); ok {
		return utils.PackageName(s.File)
	}
	return ""
}
