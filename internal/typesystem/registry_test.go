package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"int", "boolean", "String", "java.lang.String", "Object", "java.util.regex.Pattern"} {
		_, ok := r.Lookup(name)
		assert.True(t, ok, name)
	}

	arr, ok := r.Lookup("int[][]")
	require.True(t, ok)
	assert.Equal(t, "int[][]", arr.Name())
	assert.True(t, IsArray(arr))

	_, ok = r.Lookup("Missing")
	assert.False(t, ok)
	_, ok = r.Lookup("void[]")
	assert.False(t, ok)
}

func TestClassNames(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, "String", r.String.Name())
	assert.Equal(t, "java.lang.String", r.String.Key())
	assert.Equal(t, "java.util.regex.Pattern", r.Pattern.Name())

	c := r.DefineClass("demo.shapes.Circle", nil)
	assert.Equal(t, "Circle", c.SimpleName())
	assert.Equal(t, "demo.shapes", c.Package())
	assert.Same(t, c, r.DefineClass("demo.shapes.Circle", nil))
	got, ok := r.Lookup("Circle")
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Same(t, r.Object, c.Super)
}

func TestFindMethodExactAndWidening(t *testing.T) {
	r := NewRegistry()
	m, err := r.FindMethod(r.String, "substring", []Type{Int})
	require.NoError(t, err)
	assert.Equal(t, Type(r.String), m.Return)

	m, err = r.FindMethod(r.String, "charAt", []Type{Byte})
	require.NoError(t, err)
	assert.Equal(t, Type(Char), m.Return)

	m, err = r.FindMethod(r.String, "hashCode", nil)
	require.NoError(t, err, "inherited from Object")
	assert.Same(t, r.Object, m.Owner)

	_, err = r.FindMethod(r.String, "nope", nil)
	var notFound *MethodNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "no method java.lang.String.nope()")
}

func TestFindMethodStaticAndConstructors(t *testing.T) {
	r := NewRegistry()
	math, _ := r.Lookup("Math")
	cls, _ := AsClass(math)

	m, err := r.FindMethod(cls.Meta(), "max", []Type{Int, Int})
	require.NoError(t, err)
	assert.True(t, m.Static)

	_, err = r.FindMethod(cls, "max", []Type{Int, Int})
	assert.Error(t, err, "static methods are not found on instances")

	user := r.DefineClass("Point", nil)
	ctor, err := r.FindMethod(user.Meta(), ConstructorName, nil)
	require.NoError(t, err)
	assert.True(t, ctor.Constructor)
	assert.Equal(t, Type(user), ctor.ResultType())
	assert.False(t, ctor.ReturnsVoid())

	ctor, err = r.FindMethod(r.RuntimeException.Meta(), ConstructorName, []Type{r.String})
	require.NoError(t, err)
	assert.Len(t, ctor.Params, 1)
}

func TestFindMethodNarrowsLiteralArguments(t *testing.T) {
	r := NewRegistry()
	c := r.DefineClass("Sink", nil)
	c.AddMethod(&Method{Name: "put", Params: []Type{Byte}, Return: Void, Static: true})

	lit := NewFixnumLiteral(7)
	m, err := r.FindMethod(c.Meta(), "put", []Type{lit})
	require.NoError(t, err)
	assert.True(t, m.ReturnsVoid())
	assert.Equal(t, "byte", lit.Name(), "matching a byte parameter commits the literal")

	big := NewFixnumLiteral(1000)
	_, err = r.FindMethod(c.Meta(), "put", []Type{big})
	assert.Error(t, err)
	assert.Equal(t, "int", big.Name(), "failed lookups never narrow")
}

func TestFindMethodPrefersExactOverload(t *testing.T) {
	r := NewRegistry()
	c := r.DefineClass("Over", nil)
	c.AddMethod(&Method{Name: "f", Params: []Type{Byte}, Return: Byte})
	c.AddMethod(&Method{Name: "f", Params: []Type{Int}, Return: Int})

	lit := NewFixnumLiteral(1)
	m, err := r.FindMethod(c, "f", []Type{lit})
	require.NoError(t, err)
	assert.Equal(t, Type(Int), m.Return)
	assert.Equal(t, "int", lit.Name())
	assert.Len(t, c.methods["f"], 2)
}
