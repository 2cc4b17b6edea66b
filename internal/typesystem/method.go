package typesystem

import "strings"

// Method describes a callable member of a class.
type Method struct {
	Name        string
	Owner       *Class
	Params      []Type
	Return      Type
	Static      bool
	Constructor bool
	Exceptions  []Type
}

// ReturnsVoid reports whether a call to m yields no value.
func (m *Method) ReturnsVoid() bool {
	return !m.Constructor && (m.Return == nil || IsVoid(m.Return))
}

// ResultType is the type a call expression to m evaluates to.
func (m *Method) ResultType() Type {
	if m.Constructor {
		return m.Owner
	}
	if m.Return == nil {
		return Void
	}
	return m.Return
}

func (m *Method) String() string {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String()
	}
	sep := "."
	if m.Static {
		sep = "::"
	}
	return m.Owner.FullName + sep + m.Name + "(" + strings.Join(params, ", ") + ")"
}

// AddMethod registers m on the class. A method with the same name,
// static-ness and parameter keys replaces the earlier definition.
func (c *Class) AddMethod(m *Method) {
	m.Owner = c
	list := c.methods[m.Name]
	for i, existing := range list {
		if existing.Static == m.Static && sameParams(existing.Params, m.Params) {
			list[i] = m
			return
		}
	}
	c.methods[m.Name] = append(list, m)
}

func sameParams(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
