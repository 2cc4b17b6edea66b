package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/dubyc/internal/analyzer"
	"github.com/funvibe/dubyc/internal/backend"
	"github.com/funvibe/dubyc/internal/codegen"
	"github.com/funvibe/dubyc/internal/config"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/pipeline"
)

// options tweak the loaded configuration from the command line.
type options struct {
	outputDir string
	stdout    bool
	checkOnly bool
}

// runFiles pushes every tree through the pipeline and prints the
// diagnostics of failed runs. It reports whether all of them succeeded.
func runFiles(paths []string, opts options, stdout, stderr io.Writer) bool {
	ok := true
	for _, path := range paths {
		if !runFile(path, opts, stdout, stderr) {
			ok = false
		}
	}
	return ok
}

func runFile(path string, opts options, stdout, stderr io.Writer) bool {
	cfg, err := config.Load(filepath.Dir(path), configPath)
	if err != nil {
		diagnostics.NewPrinter(stderr, useColor("auto", stderr)).Print(err)
		return false
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	printer := diagnostics.NewPrinter(stderr, useColor(cfg.Color, stderr))

	data, err := os.ReadFile(path)
	if err != nil {
		printer.Print(err)
		return false
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	ctx := pipeline.NewPipelineContext(path, data, cfg, logger)
	pipeline.New(stages(cfg, opts, stdout)...).Run(ctx)

	if ctx.Failed() {
		printer.Print(ctx.Err())
		return false
	}
	if opts.checkOnly {
		fmt.Fprintf(stdout, "%s: ok (%s)\n", path, ctx.ScriptClass.Name())
	}
	return true
}

func stages(cfg *config.Config, opts options, stdout io.Writer) []pipeline.Processor {
	steps := []pipeline.Processor{
		&pipeline.DecodeProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	}
	if opts.checkOnly {
		return steps
	}

	var out backend.Backend = backend.NewFileBackend(cfg.OutputDir)
	if opts.stdout {
		out = &backend.StreamBackend{Out: stdout}
	}
	return append(steps, &codegen.CodeGeneratorProcessor{}, backend.NewEmitProcessor(out))
}

// useColor resolves the color setting against the output stream.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
