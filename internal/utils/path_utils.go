package utils

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/funvibe/dubyc/internal/config"
)

// ClassName derives the script class name from a source path: the last path
// segment with its extension stripped, turned into a valid identifier.
// "demo/hello_world.duby" becomes "HelloWorld".
func ClassName(path string) string {
	base := config.TrimSourceExt(filepath.Base(filepath.ToSlash(path)))
	return identifier(camelize(base))
}

// PackageName derives the package from the directory segments of path,
// joined with dots. Relative markers are dropped.
func PackageName(path string) string {
	dir := filepath.ToSlash(filepath.Dir(path))
	var parts []string
	for _, seg := range strings.Split(dir, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		parts = append(parts, identifier(seg))
	}
	return strings.Join(parts, ".")
}

// QualifiedName joins a package and a simple class name.
func QualifiedName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// UnitPath is the relative file path of a class: package directories plus
// the class name and the target extension.
func UnitPath(pkg, name string) string {
	if pkg == "" {
		return name + config.TargetFileExt
	}
	return filepath.Join(append(strings.Split(pkg, "."), name+config.TargetFileExt)...)
}

func camelize(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// identifier normalizes s to NFC and replaces characters that cannot appear
// in an identifier with underscores.
func identifier(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_' || r == '$':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
