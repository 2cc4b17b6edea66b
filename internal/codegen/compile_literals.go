package codegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// CompileFixnum renders the literal in the width inference settled on:
// an L suffix for long, a cast for byte and short.
func (g *Generator) CompileFixnum(n *ast.Fixnum, expression bool) error {
	text := strconv.FormatInt(n.Value, 10)
	prec := builder.PrecPrimary
	if n.Value < 0 {
		prec = builder.PrecUnary
	}
	p, _ := typesystem.AsPrimitive(n.InferredType())
	switch p {
	case typesystem.Long:
		text += "L"
	case typesystem.Byte, typesystem.Short:
		text = "(" + p.Name() + ") " + text
		prec = builder.PrecUnary
	case typesystem.Float:
		text += ".0f"
	case typesystem.Double:
		text += ".0"
	}
	return g.result(n, expression, text, prec, false)
}

func (g *Generator) CompileFloat(n *ast.Float, expression bool) error {
	var text string
	switch {
	case math.IsNaN(n.Value):
		text = "Double.NaN"
	case math.IsInf(n.Value, 1):
		text = "Double.POSITIVE_INFINITY"
	case math.IsInf(n.Value, -1):
		text = "Double.NEGATIVE_INFINITY"
	default:
		text = strconv.FormatFloat(n.Value, 'g', -1, 64)
		if !strings.ContainsAny(text, ".e") {
			text += ".0"
		}
	}
	prec := builder.PrecPrimary
	if n.Value < 0 || math.IsInf(n.Value, -1) {
		prec = builder.PrecUnary
	}
	if typesystem.Equal(n.InferredType(), typesystem.Float) {
		text += "f"
	}
	return g.result(n, expression, text, prec, false)
}

func (g *Generator) CompileString(n *ast.String, expression bool) error {
	return g.result(n, expression, builder.Quote(n.Value), builder.PrecPrimary, false)
}

func (g *Generator) CompileBoolean(n *ast.Boolean, expression bool) error {
	return g.result(n, expression, strconv.FormatBool(n.Value), builder.PrecPrimary, false)
}

func (g *Generator) CompileNull(n *ast.Null, expression bool) error {
	return g.result(n, expression, "null", builder.PrecPrimary, false)
}

func (g *Generator) CompileRegexp(n *ast.Regexp, expression bool) error {
	text := "java.util.regex.Pattern.compile(" + builder.Quote(n.Pattern) + ")"
	return g.result(n, expression, text, builder.PrecPrimary, false)
}

// CompileArray builds a mutable list holding the elements.
func (g *Generator) CompileArray(n *ast.Array, expression bool) error {
	if !expression {
		return g.statements(n.Elements...)
	}
	elems, err := g.operands(n.Elements...)
	if err != nil {
		return err
	}
	text := "new java.util.ArrayList()"
	if len(elems) > 0 {
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.paren(builder.PrecAssign, false)
		}
		text = "new java.util.ArrayList(java.util.Arrays.asList(new Object[]{" + strings.Join(parts, ", ") + "}))"
	}
	return g.result(n, expression, text, builder.PrecPrimary, false)
}

// CompileStringConcat joins the parts with +. A leading empty string makes
// the first + a string concatenation whatever the part types are.
func (g *Generator) CompileStringConcat(n *ast.StringConcat, expression bool) error {
	if !expression {
		return g.statements(n.Parts...)
	}
	parts, err := g.operands(n.Parts...)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return g.result(n, expression, `""`, builder.PrecPrimary, false)
	}
	if len(parts) == 1 && isString(n.Parts[0], g.Registry) {
		return g.result(n, expression, parts[0].text, parts[0].prec, false)
	}

	plus := builder.Precedence("+")
	var b strings.Builder
	if !isString(n.Parts[0], g.Registry) && (len(parts) == 1 || !isString(n.Parts[1], g.Registry)) {
		b.WriteString(`"" + `)
	}
	for i, p := range parts {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(p.paren(plus, i > 0 || b.Len() > 0))
	}
	return g.result(n, expression, b.String(), plus, false)
}

func isString(n ast.Node, reg *typesystem.Registry) bool {
	return typesystem.Equal(n.InferredType(), reg.String)
}

// CompileToString renders String.valueOf(body).
func (g *Generator) CompileToString(n *ast.ToString, expression bool) error {
	if !expression {
		return g.statements(n.Body)
	}
	if n.Body == nil {
		return g.result(n, expression, `""`, builder.PrecPrimary, false)
	}
	body, err := g.operand(n.Body)
	if err != nil {
		return err
	}
	return g.result(n, expression, "String.valueOf("+body.text+")", builder.PrecPrimary, false)
}

// CompileEmptyArray renders new T[size]; for array element types the new
// dimension comes first, as in new int[n][].
func (g *Generator) CompileEmptyArray(n *ast.EmptyArray, expression bool) error {
	if !expression {
		return g.statements(n.Size)
	}
	size, err := g.operand(n.Size)
	if err != nil {
		return err
	}
	arr, ok := n.InferredType().(*typesystem.Array)
	if !ok {
		return diagnostics.NewFault(ast.Kind(n), n.Pos(), "empty array typed %s, not an array type", n.InferredType())
	}
	elem := builder.TypeName(arr.Elem)
	base, dims, _ := strings.Cut(elem, "[")
	if dims != "" {
		dims = "[" + dims
	}
	return g.result(n, expression, "new "+base+"["+size.text+"]"+dims, builder.PrecPrimary, false)
}
