// Package backend writes generated compilation units somewhere: a source
// tree on disk, a stream, or memory.
package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Backend is the interface for emission targets
type Backend interface {
	// Emit stores one unit and returns where it went
	Emit(filename, source string) (string, error)

	// Name returns the backend name for display
	Name() string
}

// FileBackend writes units under Dir, creating package directories as
// needed.
type FileBackend struct {
	Dir string
}

func NewFileBackend(dir string) *FileBackend {
	if dir == "" {
		dir = "."
	}
	return &FileBackend{Dir: dir}
}

func (b *FileBackend) Name() string { return "file" }

func (b *FileBackend) Emit(filename, source string) (string, error) {
	path := filepath.Join(b.Dir, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// StreamBackend prints units to a writer, each preceded by a banner line
// naming the file.
type StreamBackend struct {
	Out io.Writer
}

func (b *StreamBackend) Name() string { return "stream" }

func (b *StreamBackend) Emit(filename, source string) (string, error) {
	if _, err := fmt.Fprintf(b.Out, "// ==> %s\n%s", filepath.ToSlash(filename), source); err != nil {
		return "", err
	}
	return filename, nil
}

// MemoryBackend keeps units in a map. It is safe for concurrent use.
type MemoryBackend struct {
	mu    sync.Mutex
	units map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{units: make(map[string]string)}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Emit(filename, source string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	name := filepath.ToSlash(filename)
	b.units[name] = source
	return name, nil
}

// Source returns the unit stored under filename.
func (b *MemoryBackend) Source(filename string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.units[filepath.ToSlash(filename)]
	return s, ok
}

// Filenames lists the stored units in sorted order.
func (b *MemoryBackend) Filenames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.units))
	for name := range b.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
