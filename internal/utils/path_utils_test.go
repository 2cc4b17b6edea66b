package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassName(t *testing.T) {
	tests := map[string]string{
		"hello.duby":                 "Hello",
		"demo/hello_world.duby":      "HelloWorld",
		"demo/hello_world.duby.yaml": "HelloWorld",
		"2fast.rb":                   "_2fast",
		"cafe\u0301.duby":            "Caf\u00e9",
		"my-script":                  "MyScript",
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassName(in), in)
	}
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "", PackageName("hello.duby"))
	assert.Equal(t, "demo", PackageName("./demo/hello.duby"))
	assert.Equal(t, "org.demo", PackageName("org/demo/hello.duby"))
	assert.Equal(t, "my_lib", PackageName("my-lib/x.duby"))
}

func TestUnitPath(t *testing.T) {
	assert.Equal(t, "Hello.java", UnitPath("", "Hello"))
	assert.Equal(t, filepath.Join("org", "demo", "Hello.java"), UnitPath("org.demo", "Hello"))
	assert.Equal(t, "org.demo.Hello", QualifiedName("org.demo", "Hello"))
}
