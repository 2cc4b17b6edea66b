package ast

import "github.com/funvibe/dubyc/internal/typesystem"

// Inferrer holds one inference rule per node kind. Adding a kind without
// adding its rule does not compile.
type Inferrer interface {
	InferScript(n *Script) typesystem.Type
	InferBody(n *Body) typesystem.Type
	InferFixnum(n *Fixnum) typesystem.Type
	InferFloat(n *Float) typesystem.Type
	InferString(n *String) typesystem.Type
	InferBoolean(n *Boolean) typesystem.Type
	InferNull(n *Null) typesystem.Type
	InferRegexp(n *Regexp) typesystem.Type
	InferArray(n *Array) typesystem.Type
	InferStringConcat(n *StringConcat) typesystem.Type
	InferToString(n *ToString) typesystem.Type
	InferLocalDeclaration(n *LocalDeclaration) typesystem.Type
	InferLocalAssignment(n *LocalAssignment) typesystem.Type
	InferLocal(n *Local) typesystem.Type
	InferFieldDeclaration(n *FieldDeclaration) typesystem.Type
	InferFieldAssignment(n *FieldAssignment) typesystem.Type
	InferField(n *Field) typesystem.Type
	InferIf(n *If) typesystem.Type
	InferLoop(n *Loop) typesystem.Type
	InferBreak(n *Break) typesystem.Type
	InferNext(n *Next) typesystem.Type
	InferRedo(n *Redo) typesystem.Type
	InferReturn(n *Return) typesystem.Type
	InferRaise(n *Raise) typesystem.Type
	InferRescue(n *Rescue) typesystem.Type
	InferRescueClause(n *RescueClause) typesystem.Type
	InferCall(n *Call) typesystem.Type
	InferFunctionalCall(n *FunctionalCall) typesystem.Type
	InferSelf(n *Self) typesystem.Type
	InferConstant(n *Constant) typesystem.Type
	InferEmptyArray(n *EmptyArray) typesystem.Type
	InferPrint(n *Print) typesystem.Type
	InferMethodDefinition(n *MethodDefinition) typesystem.Type
	InferArgument(n *Argument) typesystem.Type
	InferClassDefinition(n *ClassDefinition) typesystem.Type
}

// Compiler holds one lowering rule per node kind. expression asks for the
// node's value as an inline fragment; otherwise the node is emitted as
// statements, storing its value through the current lvalue when one is set.
type Compiler interface {
	CompileScript(n *Script, expression bool) error
	CompileBody(n *Body, expression bool) error
	CompileFixnum(n *Fixnum, expression bool) error
	CompileFloat(n *Float, expression bool) error
	CompileString(n *String, expression bool) error
	CompileBoolean(n *Boolean, expression bool) error
	CompileNull(n *Null, expression bool) error
	CompileRegexp(n *Regexp, expression bool) error
	CompileArray(n *Array, expression bool) error
	CompileStringConcat(n *StringConcat, expression bool) error
	CompileToString(n *ToString, expression bool) error
	CompileLocalDeclaration(n *LocalDeclaration, expression bool) error
	CompileLocalAssignment(n *LocalAssignment, expression bool) error
	CompileLocal(n *Local, expression bool) error
	CompileFieldDeclaration(n *FieldDeclaration, expression bool) error
	CompileFieldAssignment(n *FieldAssignment, expression bool) error
	CompileField(n *Field, expression bool) error
	CompileIf(n *If, expression bool) error
	CompileLoop(n *Loop, expression bool) error
	CompileBreak(n *Break, expression bool) error
	CompileNext(n *Next, expression bool) error
	CompileRedo(n *Redo, expression bool) error
	CompileReturn(n *Return, expression bool) error
	CompileRaise(n *Raise, expression bool) error
	CompileRescue(n *Rescue, expression bool) error
	CompileRescueClause(n *RescueClause, expression bool) error
	CompileCall(n *Call, expression bool) error
	CompileFunctionalCall(n *FunctionalCall, expression bool) error
	CompileSelf(n *Self, expression bool) error
	CompileConstant(n *Constant, expression bool) error
	CompileEmptyArray(n *EmptyArray, expression bool) error
	CompilePrint(n *Print, expression bool) error
	CompileMethodDefinition(n *MethodDefinition, expression bool) error
	CompileArgument(n *Argument, expression bool) error
	CompileClassDefinition(n *ClassDefinition, expression bool) error
}
