package builder

import (
	"github.com/funvibe/dubyc/internal/typesystem"
)

// Options control the layout of generated files.
type Options struct {
	// Indent is the number of spaces per block level.
	Indent int
	// Header is written as a line comment at the top of every unit.
	Header string
}

// File is the output of compiling one script: the script class plus one
// class per class definition, each rendered as its own unit.
type File struct {
	Filename string
	Package  string

	registry *typesystem.Registry
	opts     Options
	classes  []*Class
	byName   map[string]*Class
}

// NewFile creates an empty output file for the script at filename.
func NewFile(filename, pkg string, reg *typesystem.Registry, opts Options) *File {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	return &File{
		Filename: filename,
		Package:  pkg,
		registry: reg,
		opts:     opts,
		byName:   make(map[string]*Class),
	}
}

// Class returns the class called name, creating it with the given
// superclass on first use.
func (f *File) Class(name, super string) *Class {
	if c, ok := f.byName[name]; ok {
		return c
	}
	c := &Class{
		Name:    name,
		Package: f.Package,
		Super:   super,
		file:    f,
		indent:  f.opts.Indent,
		known:   make(map[string]bool),
	}
	f.classes = append(f.classes, c)
	f.byName[name] = c
	return c
}

// Classes lists the classes in creation order.
func (f *File) Classes() []*Class {
	return append([]*Class(nil), f.classes...)
}

// Generate calls fn once per class with the unit's relative path.
func (f *File) Generate(fn func(filename string, unit *Class) error) error {
	for _, c := range f.classes {
		if err := fn(c.Filename(), c); err != nil {
			return err
		}
	}
	return nil
}
