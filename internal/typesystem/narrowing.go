package typesystem

import "math"

// Narrowing is the type of a numeric literal that may later be committed to
// the smallest type able to hold its value.
//
// Until Narrow is called the cell behaves as its default type; afterwards it
// behaves as the narrowed type. The cell is shared: every holder of the
// pointer observes the same state, so it must never be copied.
type Narrowing struct {
	current  Type
	narrowed Type
}

func newNarrowing(defaultType, narrowedType Type) *Narrowing {
	n := &Narrowing{current: defaultType}
	if !Equal(defaultType, narrowedType) {
		n.narrowed = narrowedType
	}
	return n
}

// NewFixnumLiteral types an integer literal: int or long by default, with
// the smallest of byte, short, int, long as the narrowing candidate.
func NewFixnumLiteral(v int64) *Narrowing {
	def := Type(Long)
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		def = Int
	}
	var narrowed Type
	switch {
	case v >= math.MinInt8 && v <= math.MaxInt8:
		narrowed = Byte
	case v >= math.MinInt16 && v <= math.MaxInt16:
		narrowed = Short
	case v >= math.MinInt32 && v <= math.MaxInt32:
		narrowed = Int
	default:
		narrowed = Long
	}
	return newNarrowing(def, narrowed)
}

// NewFloatLiteral types a floating point literal. Floats are always double;
// no narrower candidate is computed.
func NewFloatLiteral(float64) *Narrowing {
	return newNarrowing(Double, Double)
}

// Narrow commits the cell to its narrowed type. It returns true only when the
// effective type actually changed, so every call after the first is false.
func (n *Narrowing) Narrow() bool {
	if n.narrowed == nil || Equal(n.narrowed, n.current) {
		return false
	}
	n.current = n.narrowed
	return true
}

// Candidate is the type Narrow would switch to, or the current type when no
// narrower candidate exists.
func (n *Narrowing) Candidate() Type {
	if n.narrowed == nil {
		return n.current
	}
	return n.narrowed
}

func (n *Narrowing) Kind() Kind     { return n.current.Kind() }
func (n *Narrowing) Name() string   { return n.current.Name() }
func (n *Narrowing) Key() string    { return n.current.Key() }
func (n *Narrowing) String() string { return n.current.String() }
