// Package builder assembles generated Java source: files, classes, methods
// and the statements inside them.
package builder

import (
	"bytes"
	"strings"
)

// Operator precedence (higher = binds tighter)
const (
	PrecAssign  = 1
	PrecTernary = 2
	PrecUnary   = 14
	PrecPrimary = 15
)

var operatorPrecedence = map[string]int{
	"||":  3,
	"&&":  4,
	"|":   5,
	"^":   6,
	"&":   7,
	"==":  8,
	"!=":  8,
	"<":   9,
	">":   9,
	"<=":  9,
	">=":  9,
	"<<":  10,
	">>":  10,
	">>>": 10,
	"+":   11,
	"-":   11,
	"*":   12,
	"/":   12,
	"%":   12,
}

// Precedence returns the binding strength of a binary operator.
func Precedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return PrecPrimary
}

// Parenthesize wraps an operand rendered at precedence prec when it appears
// under an operator of precedence parent. Binary operators are left
// associative, so a right operand of equal precedence needs parentheses.
func Parenthesize(operand string, prec, parent int, isRight bool) string {
	needParens := prec < parent
	if prec == parent && isRight {
		needParens = true
	}
	if needParens {
		return "(" + operand + ")"
	}
	return operand
}

// printer accumulates indented lines.
type printer struct {
	buf    bytes.Buffer
	indent int
	width  int
}

func newPrinter(width int) *printer {
	if width <= 0 {
		width = 2
	}
	return &printer{width: width}
}

func (p *printer) writeIndent() {
	p.buf.WriteString(strings.Repeat(" ", p.indent*p.width))
}

func (p *printer) line(s string) {
	if s == "" {
		p.buf.WriteByte('\n')
		return
	}
	p.writeIndent()
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// lines writes pre-rendered text, re-indenting each of its lines.
func (p *printer) lines(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		p.line(l)
	}
}

func (p *printer) String() string {
	return p.buf.String()
}
