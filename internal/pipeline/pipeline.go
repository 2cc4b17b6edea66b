package pipeline

import (
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/diagnostics"
)

// Processor is one stage of a compilation run. Stages skip their work when
// an earlier stage has failed.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. A fault raised as a panic by any stage is
// recorded as an error of the run.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = runStage(processor, ctx)
	}
	return ctx
}

func runStage(processor Processor, ctx *PipelineContext) (out *PipelineContext) {
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*diagnostics.Fault)
			if !ok {
				panic(r)
			}
			ctx.Errors = append(ctx.Errors, fault)
			out = ctx
		}
	}()
	return processor.Process(ctx)
}

// DecodeProcessor reads the input tree from ctx.Source.
type DecodeProcessor struct{}

func (dp *DecodeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Script != nil || ctx.Failed() {
		return ctx
	}
	script, err := ast.Decode(ctx.Source, ctx.FilePath)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Script = script
	ctx.Logger.Debug("tree decoded", "file", script.File, "statements", len(script.Body.Statements))
	return ctx
}
