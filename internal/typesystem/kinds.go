package typesystem

// Kind classifies types for code generation and lookup decisions.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindArray
	KindMeta
	KindNull
	KindVoid
	KindUnreachable
)

var kindNames = [...]string{
	KindPrimitive:   "primitive",
	KindClass:       "class",
	KindArray:       "array",
	KindMeta:        "meta",
	KindNull:        "null",
	KindVoid:        "void",
	KindUnreachable: "unreachable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsReference reports whether values of this kind are object references.
func (k Kind) IsReference() bool {
	return k == KindClass || k == KindArray || k == KindNull
}
