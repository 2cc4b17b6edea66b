package analyzer

import (
	"github.com/funvibe/dubyc/internal/pipeline"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// SemanticAnalyzerProcessor runs type inference over ctx.Script.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Script == nil || ctx.Failed() {
		return ctx
	}
	if ctx.Registry == nil {
		ctx.Registry = typesystem.NewRegistry()
	}

	typer := New(ctx.Registry, ctx.Logger)
	if err := typer.Check(ctx.Script); err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	ctx.ScriptClass = typer.ScriptClass()

	stats := typer.Stats()
	ctx.Logger.Debug("inference finished", "queued", stats.Queued, "sweeps", stats.Sweeps())
	return ctx
}
