package backend

import (
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/pipeline"
	"github.com/funvibe/dubyc/internal/token"
)

// EmitProcessor hands every generated unit to a Backend
type EmitProcessor struct {
	Backend Backend
}

// NewEmitProcessor creates a new pipeline step for the given backend
func NewEmitProcessor(b Backend) *EmitProcessor {
	return &EmitProcessor{Backend: b}
}

func (p *EmitProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// Nothing is written for a failed run
	if ctx.Failed() {
		return ctx
	}

	for _, unit := range ctx.Units {
		where, err := p.Backend.Emit(unit.Filename, unit.Source)
		if err != nil {
			ctx.Errors = append(ctx.Errors, diagnostics.NewError(
				diagnostics.ErrE001,
				token.Position{File: ctx.FilePath},
				"%s backend: %s: %v", p.Backend.Name(), unit.Filename, err,
			))
			return ctx
		}
		ctx.Emitted = append(ctx.Emitted, where)
		ctx.Logger.Info("wrote compilation unit", "backend", p.Backend.Name(), "unit", unit.Filename, "to", where)
	}
	return ctx
}
