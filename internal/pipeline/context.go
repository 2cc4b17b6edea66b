package pipeline

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// PipelineContext carries the state of one compilation run between stages.
type PipelineContext struct {
	RunID    string
	FilePath string
	Source   []byte
	Config   *config.Config
	Logger   *slog.Logger

	Registry    *typesystem.Registry
	Script      *ast.Script
	ScriptClass *typesystem.Class

	// Units are the rendered compilation units, filled by code generation.
	Units []Unit
	// Emitted lists where units were written.
	Emitted []string

	Errors []error
}

// Unit is one generated source file.
type Unit struct {
	Filename string
	Source   string
}

// NewPipelineContext starts a run for the tree at path. Nil cfg and logger
// select the defaults.
func NewPipelineContext(path string, source []byte, cfg *config.Config, logger *slog.Logger) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &PipelineContext{
		RunID:    id,
		FilePath: path,
		Source:   source,
		Config:   cfg,
		Logger:   logger.With("run", id, "file", path),
		Registry: typesystem.NewRegistry(),
	}
}

// Failed reports whether any stage recorded an error.
func (c *PipelineContext) Failed() bool { return len(c.Errors) > 0 }

// Err joins the recorded errors, or returns nil.
func (c *PipelineContext) Err() error { return errors.Join(c.Errors...) }
