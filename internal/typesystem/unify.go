package typesystem

// Assignable reports whether a value of type from may be stored in a
// variable (or passed as a parameter) of type to without a cast.
func Assignable(to, from Type) bool {
	if to == nil || from == nil {
		return false
	}
	if Equal(to, from) {
		return true
	}
	switch from.Kind() {
	case KindUnreachable:
		return true
	case KindNull:
		return to.Kind() == KindClass || to.Kind() == KindArray
	}
	if pf, ok := AsPrimitive(from); ok {
		pt, ok := AsPrimitive(to)
		if !ok || !pf.numeric || !pt.numeric {
			return false
		}
		if pf == Char {
			return pt.rank >= Int.rank
		}
		if pt == Char {
			return false
		}
		return pt.rank > pf.rank
	}
	ct, ok := AsClass(to)
	if !ok {
		return false
	}
	if ct.FullName == "java.lang.Object" {
		return from.Kind() == KindClass || from.Kind() == KindArray
	}
	if cf, ok := AsClass(from); ok {
		return cf.IsSubclassOf(ct)
	}
	return false
}

// Promote applies binary numeric promotion: double, float, long, else int.
func Promote(a, b Type) (Type, bool) {
	pa, okA := AsPrimitive(a)
	pb, okB := AsPrimitive(b)
	if !okA || !okB || !pa.numeric || !pb.numeric {
		return nil, false
	}
	for _, p := range []*Primitive{Double, Float, Long} {
		if pa == p || pb == p {
			return p, true
		}
	}
	return Int, true
}

// PromoteUnary widens byte, short and char to int.
func PromoteUnary(t Type) (Type, bool) {
	p, ok := AsPrimitive(t)
	if !ok || !p.numeric {
		return nil, false
	}
	if p.rank < Int.rank {
		return Int, true
	}
	return p, true
}

// Merge computes the type of a value that may come from either a or b,
// as for the two arms of a conditional.
func Merge(a, b Type, object *Class) Type {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case IsUnreachable(a):
		return b
	case IsUnreachable(b):
		return a
	case Equal(a, b):
		return a
	case IsVoid(a) || IsVoid(b):
		return Void
	case a.Kind() == KindNull && b.Kind().IsReference():
		return b
	case b.Kind() == KindNull && a.Kind().IsReference():
		return a
	}
	if IsNumeric(a) && IsNumeric(b) {
		pa, _ := AsPrimitive(a)
		pb, _ := AsPrimitive(b)
		if pa.rank >= pb.rank {
			return a
		}
		return b
	}
	ca, okA := AsClass(a)
	cb, okB := AsClass(b)
	if okA && okB {
		for k := ca; k != nil; k = k.Super {
			if cb.IsSubclassOf(k) {
				return k
			}
		}
	}
	return object
}
