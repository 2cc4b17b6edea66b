package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dubyc/internal/typesystem"
)

func newTestFile(t *testing.T) (*File, *typesystem.Registry) {
	t.Helper()
	reg := typesystem.NewRegistry()
	return NewFile("demo/test.duby", "demo", reg, Options{Indent: 2}), reg
}

func TestParenthesize(t *testing.T) {
	tests := []struct {
		operand string
		prec    int
		parent  int
		right   bool
		want    string
	}{
		{"a + b", Precedence("+"), Precedence("*"), false, "(a + b)"},
		{"a * b", Precedence("*"), Precedence("+"), false, "a * b"},
		{"a - b", Precedence("-"), Precedence("-"), false, "a - b"},
		{"a - b", Precedence("-"), Precedence("-"), true, "(a - b)"},
		{"x", PrecPrimary, Precedence("=="), true, "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parenthesize(tt.operand, tt.prec, tt.parent, tt.right))
	}
}

func TestJavaName(t *testing.T) {
	assert.Equal(t, "empty_p", JavaName("empty?"))
	assert.Equal(t, "save_bang", JavaName("save!"))
	assert.Equal(t, "name_set", JavaName("name="))
	assert.Equal(t, "class_", JavaName("class"))
	assert.Equal(t, "total", JavaName("total"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\n\t"`, Quote("a\"b\\c\n\t"))
	assert.Equal(t, `"\u0001"`, Quote("\x01"))
}

func TestDeclareLocalAtTopLevel(t *testing.T) {
	f, _ := newTestFile(t)
	m := f.Class("Test", "").NewMethod("foo", Signature{Return: typesystem.Int, Static: true})

	assert.False(t, m.IsLocal("x"))
	m.DeclareLocal("x", typesystem.Int, "5")
	assert.True(t, m.IsLocal("x"))
	m.Puts("return x;")

	assert.Equal(t, "public static int foo() {\n  int x = 5;\n  return x;\n}\n", m.Render())
}

func TestDeclareLocalInNestedBlockIsHoisted(t *testing.T) {
	f, reg := newTestFile(t)
	m := f.Class("Test", "").NewMethod("foo", Signature{Return: typesystem.Void})

	require.NoError(t, m.Block("if (true)", func() error {
		m.DeclareLocal("s", reg.String, `"hi"`)
		return nil
	}))
	m.Puts("System.out.println(s);")

	want := "public void foo() {\n" +
		"  String s = null;\n" +
		"  if (true) {\n" +
		"    s = \"hi\";\n" +
		"  }\n" +
		"  System.out.println(s);\n" +
		"}\n"
	assert.Equal(t, want, m.Render())
}

func TestTemporariesAndLabels(t *testing.T) {
	f, _ := newTestFile(t)
	m := f.Class("Test", "").NewMethod("foo", Signature{})

	assert.Equal(t, "temp$1", m.Tmp(typesystem.Long))
	assert.Equal(t, "temp$2", m.Tmp(typesystem.Boolean))
	assert.Equal(t, "loop$1", m.Label())
	assert.Equal(t, "loop$2", m.Label())
	assert.True(t, m.IsLocal("temp$1"))
	assert.Equal(t, typesystem.Long, m.LocalType("temp$1"))

	out := m.Render()
	assert.Contains(t, out, "  long temp$1 = 0L;\n")
	assert.Contains(t, out, "  boolean temp$2 = false;\n")
}

func TestParametersAreLocals(t *testing.T) {
	f, reg := newTestFile(t)
	sig := Signature{
		Return: reg.String,
		Params: []Param{{Name: "a", Type: typesystem.Int}, {Name: "b", Type: reg.String}},
		Throws: []typesystem.Type{reg.Exception},
	}
	m := f.Class("Test", "").NewMethod("join", sig)

	assert.True(t, m.IsLocal("a"))
	assert.Equal(t, "public String join(int a, String b) throws Exception", m.Declaration())
}

func TestBlockClosesOnError(t *testing.T) {
	f, _ := newTestFile(t)
	m := f.Class("Test", "").NewMethod("foo", Signature{})

	err := m.Block("while (true)", func() error {
		m.Puts("x();")
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
	m.Puts("y();")
	want := "public void foo() {\n" +
		"  while (true) {\n" +
		"    x();\n" +
		"  }\n" +
		"  y();\n" +
		"}\n"
	assert.Equal(t, want, m.Render())
}

func TestContinueAndCloseSuffix(t *testing.T) {
	f, _ := newTestFile(t)
	m := f.Class("Test", "").NewMethod("foo", Signature{})

	m.Open("if (a)")
	m.Puts("x();")
	m.Continue("else")
	m.Puts("y();")
	m.Close("")
	m.Open("do")
	m.Close(" while (b);")

	want := "public void foo() {\n" +
		"  if (a) {\n" +
		"    x();\n" +
		"  } else {\n" +
		"    y();\n" +
		"  }\n" +
		"  do {\n" +
		"  } while (b);\n" +
		"}\n"
	assert.Equal(t, want, m.Render())
}

func TestClassRender(t *testing.T) {
	reg := typesystem.NewRegistry()
	f := NewFile("demo/test.duby", "demo", reg, Options{Indent: 2, Header: "generated"})
	c := f.Class("Dog", "demo.Animal")

	c.DeclareField("name", reg.String, false)
	c.DeclareField("name", reg.String, false)
	c.DeclareField("count", typesystem.Int, true)

	ctor := c.NewConstructor(Signature{Params: []Param{{Name: "name", Type: reg.String}}})
	ctor.Puts("this.name = name;")
	c.StaticInit().Puts("Dog.count = 0;")

	want := "// generated\n" +
		"package demo;\n" +
		"\n" +
		"public class Dog extends demo.Animal {\n" +
		"  private String name;\n" +
		"  private static int count;\n" +
		"\n" +
		"  static {\n" +
		"    Dog.count = 0;\n" +
		"  }\n" +
		"\n" +
		"  public Dog(String name) {\n" +
		"    this.name = name;\n" +
		"  }\n" +
		"}\n"
	assert.Equal(t, want, c.Render())
	assert.Equal(t, "demo.Dog", c.FullName())
}

func TestMainMethod(t *testing.T) {
	f, _ := newTestFile(t)
	c := f.Class("Test", "")
	main := c.Main()
	assert.Same(t, main, c.Main())
	assert.Equal(t, "public static void main(String[] argv)", main.Declaration())
	assert.True(t, main.IsLocal("argv"))
}

func TestFileGenerate(t *testing.T) {
	f, _ := newTestFile(t)
	f.Class("Test", "")
	f.Class("Dog", "")
	assert.Same(t, f.Class("Test", ""), f.Classes()[0])

	var names []string
	require.NoError(t, f.Generate(func(filename string, unit *Class) error {
		names = append(names, filename)
		return nil
	}))
	assert.Equal(t, []string{"demo/Test.java", "demo/Dog.java"}, names)
}
