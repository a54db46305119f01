package memories

// Value is a cell content: either a Felt or an Address.
type Value interface {
	isValue()
	String() string
}

func ValuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case Felt:
		b, ok := b.(Felt)
		return ok && a.Equal(b)
	case Address:
		b, ok := b.(Address)
		return ok && a == b
	}
	return false
}
