package memories

import (
	"math/big"
)

// Prime is the Cairo field modulus, 2^251 + 17*2^192 + 1.
var Prime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	return p.Add(p, big.NewInt(1))
}()

// Felt is an immutable non-negative integer cell value.
// Cells are not reduced on storage: builtins may keep wider payloads such as
// SEC1 keys. Negative inputs are mapped into the field.
type Felt struct {
	n *big.Int
}

var _ Value = Felt{}

func (Felt) isValue() {}

func NewFelt(i int64) Felt {
	return FeltFromBig(big.NewInt(i))
}

func FeltFromBig(i *big.Int) Felt {
	n := new(big.Int).Set(i)
	if n.Sign() < 0 {
		n.Mod(n, Prime)
	}
	return Felt{
		n: n,
	}
}

func FeltFromBytes(b []byte) Felt {
	return Felt{
		n: new(big.Int).SetBytes(b),
	}
}

func (f Felt) Big() *big.Int {
	if f.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(f.n)
}

// Bytes returns the big-endian representation. Zero encodes as a single zero byte.
func (f Felt) Bytes() []byte {
	if f.n == nil || f.n.Sign() == 0 {
		return []byte{0}
	}
	return f.n.Bytes()
}

func (f Felt) Equal(g Felt) bool {
	return f.Big().Cmp(g.Big()) == 0
}

func (f Felt) String() string {
	return f.Big().String()
}

// Reduced returns f modulo the field prime.
func (f Felt) Reduced() Felt {
	return Felt{
		n: new(big.Int).Mod(f.Big(), Prime),
	}
}
