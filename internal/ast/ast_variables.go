package ast

import "github.com/funvibe/dubyc/internal/typesystem"

// LocalDeclaration declares a local with an explicit type, e.g. x = int
type LocalDeclaration struct {
	base
	Name     string
	TypeName string
}

func (l *LocalDeclaration) Children() []Node                 { return nil }
func (l *LocalDeclaration) Infer(v Inferrer) typesystem.Type { return v.InferLocalDeclaration(l) }
func (l *LocalDeclaration) Compile(c Compiler, expression bool) error {
	return c.CompileLocalDeclaration(l, expression)
}
func (l *LocalDeclaration) String() string {
	return "LocalDeclaration(" + l.Name + ":" + l.TypeName + ")"
}

// LocalAssignment stores a value into a local, e.g. x = 1
type LocalAssignment struct {
	base
	Name  string
	Value Node
}

func (l *LocalAssignment) Children() []Node                 { return nonNil(l.Value) }
func (l *LocalAssignment) Infer(v Inferrer) typesystem.Type { return v.InferLocalAssignment(l) }
func (l *LocalAssignment) Compile(c Compiler, expression bool) error {
	return c.CompileLocalAssignment(l, expression)
}
func (l *LocalAssignment) String() string { return "LocalAssignment(" + l.Name + ")" }

// Local reads a local variable.
type Local struct {
	base
	Name string
}

func (l *Local) Children() []Node                          { return nil }
func (l *Local) Infer(v Inferrer) typesystem.Type          { return v.InferLocal(l) }
func (l *Local) Compile(c Compiler, expression bool) error { return c.CompileLocal(l, expression) }
func (l *Local) String() string                            { return "Local(" + l.Name + ")" }

// FieldDeclaration declares the type of an instance (or static) field,
// e.g. @x = int
type FieldDeclaration struct {
	base
	Name     string
	TypeName string
	Static   bool
}

func (f *FieldDeclaration) Children() []Node                 { return nil }
func (f *FieldDeclaration) Infer(v Inferrer) typesystem.Type { return v.InferFieldDeclaration(f) }
func (f *FieldDeclaration) Compile(c Compiler, expression bool) error {
	return c.CompileFieldDeclaration(f, expression)
}
func (f *FieldDeclaration) String() string {
	return "FieldDeclaration(@" + f.Name + ":" + f.TypeName + ")"
}

// FieldAssignment stores into a field, e.g. @x = 1
type FieldAssignment struct {
	base
	Name   string
	Value  Node
	Static bool
}

func (f *FieldAssignment) Children() []Node                 { return nonNil(f.Value) }
func (f *FieldAssignment) Infer(v Inferrer) typesystem.Type { return v.InferFieldAssignment(f) }
func (f *FieldAssignment) Compile(c Compiler, expression bool) error {
	return c.CompileFieldAssignment(f, expression)
}
func (f *FieldAssignment) String() string { return "FieldAssignment(@" + f.Name + ")" }

// Field reads a field, e.g. @x
type Field struct {
	base
	Name   string
	Static bool
}

func (f *Field) Children() []Node                          { return nil }
func (f *Field) Infer(v Inferrer) typesystem.Type          { return v.InferField(f) }
func (f *Field) Compile(c Compiler, expression bool) error { return c.CompileField(f, expression) }
func (f *Field) String() string                            { return "Field(@" + f.Name + ")" }

// Self is the receiver of the current method.
type Self struct {
	base
}

func (s *Self) Children() []Node                          { return nil }
func (s *Self) Infer(v Inferrer) typesystem.Type          { return v.InferSelf(s) }
func (s *Self) Compile(c Compiler, expression bool) error { return c.CompileSelf(s, expression) }
func (s *Self) String() string                            { return "Self" }

// Constant names a type used as a value, e.g. the receiver in Foo.new
type Constant struct {
	base
	Name string
}

func (k *Constant) Children() []Node                 { return nil }
func (k *Constant) Infer(v Inferrer) typesystem.Type { return v.InferConstant(k) }
func (k *Constant) Compile(c Compiler, expression bool) error {
	return c.CompileConstant(k, expression)
}
func (k *Constant) String() string { return "Constant(" + k.Name + ")" }
