package ast

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/token"
)

// Decode reads a program tree serialized as YAML by the front end:
//
//	file: demo/hello.duby
//	body:
//	  - {kind: local_assign, name: x, value: {kind: fixnum, value: 5}}
//	  - {kind: print, value: {kind: local, name: x}}
//
// Node positions are taken from the YAML document unless a node carries
// explicit line/column keys. path names the tree when the document has no
// file key. All malformed nodes are reported, not just the first.
func Decode(data []byte, path string) (*Script, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrD001, token.Position{File: path}, "%v", err)
	}
	d := &decoder{file: path}
	if len(doc.Content) == 0 {
		return nil, d.fail(&doc, "empty document")
	}
	root := doc.Content[0]

	script := &Script{File: path}
	switch root.Kind {
	case yaml.SequenceNode:
		script.Body = d.body(root)
	case yaml.MappingNode:
		fields := d.fields(root)
		if f, ok := fields["file"]; ok && f.Value != "" {
			script.File = f.Value
			d.file = f.Value
		}
		script.Body = d.body(fields["body"])
	default:
		return nil, d.fail(root, "expected a mapping or a sequence at the top level")
	}
	script.pos = token.Position{File: d.file, Line: 1, Column: 1}
	if len(d.errs) > 0 {
		d.errs.Sort()
		return nil, d.errs
	}
	Link(script)
	return script, nil
}

type decoder struct {
	file string
	errs diagnostics.List
}

func (d *decoder) pos(y *yaml.Node) token.Position {
	return token.Position{File: d.file, Line: y.Line, Column: y.Column}
}

func (d *decoder) fail(y *yaml.Node, format string, args ...any) error {
	err := diagnostics.NewError(diagnostics.ErrD001, d.pos(y), format, args...)
	d.errs = append(d.errs, err)
	return err
}

func (d *decoder) fields(y *yaml.Node) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		out[y.Content[i].Value] = y.Content[i+1]
	}
	return out
}

// body accepts a sequence, a single node or nothing.
func (d *decoder) body(y *yaml.Node) *Body {
	b := &Body{}
	if y == nil {
		return b
	}
	b.pos = d.pos(y)
	switch y.Kind {
	case yaml.SequenceNode:
		b.Statements = d.list(y)
	case yaml.MappingNode:
		n := d.node(y)
		if inner, ok := n.(*Body); ok {
			return inner
		}
		if n != nil {
			b.Statements = []Node{n}
		}
	default:
		if y.Tag != "!!null" {
			d.fail(y, "expected a list of nodes")
		}
	}
	return b
}

func (d *decoder) list(y *yaml.Node) []Node {
	if y == nil {
		return nil
	}
	if y.Kind != yaml.SequenceNode {
		d.fail(y, "expected a list of nodes")
		return nil
	}
	out := make([]Node, 0, len(y.Content))
	for _, c := range y.Content {
		if n := d.node(c); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (d *decoder) optional(y *yaml.Node) Node {
	if y == nil || (y.Kind == yaml.ScalarNode && y.Tag == "!!null") {
		return nil
	}
	return d.node(y)
}

func (d *decoder) strings(y *yaml.Node) []string {
	if y == nil {
		return nil
	}
	if y.Kind == yaml.ScalarNode {
		return []string{y.Value}
	}
	var out []string
	if err := y.Decode(&out); err != nil {
		d.fail(y, "expected a list of names")
	}
	return out
}

func (d *decoder) node(y *yaml.Node) Node {
	if y.Kind == yaml.AliasNode {
		y = y.Alias
	}
	if y.Kind != yaml.MappingNode {
		d.fail(y, "expected a node mapping, got %s", describe(y))
		return nil
	}
	f := d.fields(y)
	kindNode, ok := f["kind"]
	if !ok {
		d.fail(y, "node has no kind")
		return nil
	}
	str := func(key string) string {
		if v, ok := f[key]; ok {
			return v.Value
		}
		return ""
	}
	flag := func(key string) bool {
		v, ok := f[key]
		if !ok {
			return false
		}
		b, err := strconv.ParseBool(v.Value)
		if err != nil {
			d.fail(v, "%s: expected a boolean, got %q", key, v.Value)
		}
		return b
	}
	required := func(key string) Node {
		v, ok := f[key]
		if !ok {
			d.fail(y, "%s node requires %q", kindNode.Value, key)
			return nil
		}
		return d.node(v)
	}
	name := func() string {
		n := str("name")
		if n == "" {
			d.fail(y, "%s node requires a name", kindNode.Value)
		}
		return n
	}

	var n Node
	switch kindNode.Value {
	case "fixnum":
		n = &Fixnum{Value: d.integer(f["value"], y)}
	case "float":
		v, err := strconv.ParseFloat(str("value"), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			d.fail(y, "invalid float literal %q", str("value"))
		}
		n = &Float{Value: v}
	case "string":
		n = &String{Value: str("value")}
	case "boolean":
		n = &Boolean{Value: flag("value")}
	case "null":
		n = &Null{}
	case "regexp":
		n = &Regexp{Pattern: str("value")}
	case "array":
		n = &Array{Elements: d.list(f["elements"])}
	case "concat":
		n = &StringConcat{Parts: d.list(f["parts"])}
	case "to_s":
		n = &ToString{Body: required("body")}
	case "empty_array":
		n = &EmptyArray{TypeName: str("type"), Size: required("size")}
	case "local_decl":
		n = &LocalDeclaration{Name: name(), TypeName: str("type")}
	case "local_assign":
		n = &LocalAssignment{Name: name(), Value: required("value")}
	case "local":
		n = &Local{Name: name()}
	case "field_decl":
		n = &FieldDeclaration{Name: name(), TypeName: str("type"), Static: flag("static")}
	case "field_assign":
		n = &FieldAssignment{Name: name(), Value: required("value"), Static: flag("static")}
	case "field":
		n = &Field{Name: name(), Static: flag("static")}
	case "self":
		n = &Self{}
	case "constant":
		n = &Constant{Name: name()}
	case "body":
		n = &Body{Statements: d.list(f["statements"])}
	case "if":
		n = &If{Condition: required("condition"), Then: d.optionalBody(f["then"]), Else: d.optionalBody(f["else"])}
	case "loop":
		checkFirst := true
		if _, ok := f["check_first"]; ok {
			checkFirst = flag("check_first")
		}
		n = &Loop{Condition: required("condition"), Body: d.body(f["body"]), CheckFirst: checkFirst, Negative: flag("negative")}
	case "break":
		n = &Break{}
	case "next":
		n = &Next{}
	case "redo":
		n = &Redo{}
	case "return":
		n = &Return{Value: d.optional(f["value"])}
	case "raise":
		n = &Raise{Value: required("value")}
	case "rescue":
		r := &Rescue{Body: d.body(f["body"])}
		if cs, ok := f["clauses"]; ok && cs.Kind == yaml.SequenceNode {
			for _, c := range cs.Content {
				r.Clauses = append(r.Clauses, d.clause(c))
			}
		}
		n = r
	case "call":
		n = &Call{Target: required("target"), Name: name(), Args: d.list(f["args"])}
	case "fcall":
		n = &FunctionalCall{Name: name(), Args: d.list(f["args"])}
	case "print":
		n = &Print{Value: d.optional(f["value"])}
	case "def":
		m := &MethodDefinition{
			Name:       name(),
			ReturnType: str("returns"),
			Throws:     d.strings(f["throws"]),
			Body:       d.body(f["body"]),
			Static:     flag("static"),
		}
		if as, ok := f["args"]; ok {
			for _, a := range as.Content {
				m.Args = append(m.Args, d.argument(a))
			}
		}
		n = m
	case "class":
		n = &ClassDefinition{Name: name(), Superclass: str("superclass"), Body: d.body(f["body"])}
	default:
		d.fail(kindNode, "unknown node kind %q", kindNode.Value)
		return nil
	}

	pos := d.pos(y)
	if v, ok := f["line"]; ok {
		pos.Line = d.coordinate(v, "line")
		pos.Column = 0
	}
	if v, ok := f["column"]; ok {
		pos.Column = d.coordinate(v, "column")
	}
	n.(Positioned).SetPos(pos)
	return n
}

func (d *decoder) optionalBody(y *yaml.Node) Node {
	if y == nil {
		return nil
	}
	return d.body(y)
}

// integer parses a fixnum value. Values beyond 64 bits saturate.
func (d *decoder) integer(v, owner *yaml.Node) int64 {
	if v == nil {
		d.fail(owner, "fixnum node requires a value")
		return 0
	}
	i, err := strconv.ParseInt(v.Value, 0, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		d.fail(v, "invalid integer literal %q", v.Value)
	}
	return i
}

// coordinate reads an explicit line or column key.
func (d *decoder) coordinate(v *yaml.Node, key string) int {
	n, err := strconv.Atoi(v.Value)
	if err != nil || n < 0 {
		d.fail(v, "%s must be a non-negative integer, got %q", key, v.Value)
		return 0
	}
	return n
}

func (d *decoder) clause(y *yaml.Node) *RescueClause {
	c := &RescueClause{}
	c.pos = d.pos(y)
	if y.Kind != yaml.MappingNode {
		d.fail(y, "expected a rescue clause mapping")
		return c
	}
	f := d.fields(y)
	c.Types = d.strings(f["types"])
	if v, ok := f["name"]; ok {
		c.Name = v.Value
	}
	c.Body = d.body(f["body"])
	return c
}

func (d *decoder) argument(y *yaml.Node) *Argument {
	a := &Argument{}
	a.pos = d.pos(y)
	if y.Kind != yaml.MappingNode {
		d.fail(y, "expected an argument mapping")
		return a
	}
	f := d.fields(y)
	if v, ok := f["name"]; ok {
		a.Name = v.Value
	}
	if v, ok := f["type"]; ok {
		a.TypeName = v.Value
	}
	if a.Name == "" || a.TypeName == "" {
		d.fail(y, "argument requires a name and a type")
	}
	return a
}

func describe(y *yaml.Node) string {
	switch y.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", y.Value)
	case yaml.SequenceNode:
		return "sequence"
	case yaml.DocumentNode:
		return "document"
	}
	return "mapping"
}
