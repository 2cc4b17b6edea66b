package codegen

import (
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/pipeline"
)

// CodeGeneratorProcessor renders the typed script into ctx.Units.
type CodeGeneratorProcessor struct{}

func (cgp *CodeGeneratorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Script == nil || ctx.Failed() {
		return ctx
	}

	opts := builder.Options{Indent: ctx.Config.Indent, Header: ctx.Config.Header}
	gen := New(ctx.Registry, ctx.Script.File, opts, ctx.Logger)
	if err := gen.Compile(ctx.Script); err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	err := gen.Generate(func(filename string, unit *builder.Class) error {
		ctx.Units = append(ctx.Units, pipeline.Unit{Filename: filename, Source: unit.Render()})
		return nil
	})
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
	}
	return ctx
}
