package codegen

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/funvibe/dubyc/internal/analyzer"
	"github.com/funvibe/dubyc/internal/ast"
	"github.com/funvibe/dubyc/internal/builder"
	"github.com/funvibe/dubyc/internal/typesystem"
)

// Each testdata/*.txtar archive holds input.yaml and, per generated file,
// the lines expected in it. Expected lines must appear as one contiguous
// run of the generated lines; indentation and blank lines are ignored.
func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			var input []byte
			want := make(map[string]string)
			for _, f := range ar.Files {
				if f.Name == "input.yaml" {
					input = f.Data
					continue
				}
				want[f.Name] = string(f.Data)
			}
			require.NotNil(t, input, "archive has no input.yaml")

			units := generate(t, input)
			for filename, expected := range want {
				got, ok := units[filename]
				require.True(t, ok, "no unit %s among %v", filename, unitNames(units))
				assertContainsRun(t, expected, got)
			}
		})
	}
}

func generate(t *testing.T, src []byte) map[string]string {
	t.Helper()
	script, err := ast.Decode(src, "demo/test.duby")
	require.NoError(t, err)

	reg := typesystem.NewRegistry()
	require.NoError(t, analyzer.New(reg, nil).Check(script))

	g := New(reg, script.File, builder.Options{Indent: 2}, nil)
	require.NoError(t, g.Compile(script))

	units := make(map[string]string)
	require.NoError(t, g.Generate(func(filename string, unit *builder.Class) error {
		units[filepath.ToSlash(filename)] = unit.Render()
		return nil
	}))
	return units
}

func unitNames(units map[string]string) []string {
	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func significantLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func assertContainsRun(t *testing.T, expected, got string) {
	t.Helper()
	want := significantLines(expected)
	have := significantLines(got)
	for start := 0; start+len(want) <= len(have); start++ {
		match := true
		for i := range want {
			if have[start+i] != want[i] {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	assert.Fail(t, "generated code does not contain the expected lines",
		"expected:\n%s\ngenerated:\n%s", strings.Join(want, "\n"), got)
}
