package config

import (
	"path/filepath"
	"strings"
)

const SourceFileExt = ".duby"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".duby", ".mirah", ".rb"}

// TreeFileExtensions are the extensions of serialized input trees
var TreeFileExtensions = []string{".yaml", ".yml"}

// TargetFileExt is the extension of generated compilation units.
const TargetFileExt = ".java"

// Well-known method and variable names
const (
	InitializeMethodName = "initialize"
	MainMethodName       = "main"
	MainArgsName         = "argv"
	NilCheckMethodName   = "nil?"
)

// Prefixes of compiler-generated identifiers. The $ keeps them apart from
// names the source language can spell.
const (
	FieldPrefix     = "@"
	TempPrefix      = "temp$"
	LoopLabelPrefix = "loop$"
	RedoFlagPrefix  = "redo$"
	CatchVarPrefix  = "ex$"
)

// Configuration file lookup
const (
	ConfigFileName    = "dubyc.yaml"
	AltConfigFileName = "dubyc.yml"
	EnvFileName       = ".env"
	EnvPrefix         = "DUBYC_"
)

// HasSourceExt reports whether path ends in a source or tree extension.
func HasSourceExt(path string) bool {
	return TrimSourceExt(path) != path
}

// TrimSourceExt strips a tree extension and then a source extension, so
// both hello.duby and hello.duby.yaml become hello.
func TrimSourceExt(path string) string {
	ext := filepath.Ext(path)
	for _, e := range TreeFileExtensions {
		if strings.EqualFold(ext, e) {
			path = strings.TrimSuffix(path, ext)
			ext = filepath.Ext(path)
			break
		}
	}
	for _, e := range SourceFileExtensions {
		if ext == e {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}
