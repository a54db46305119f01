package memories

import (
	"errors"
	"testing"
)

func TestAddressArithmetic(t *testing.T) {
	a := Address{Segment: 2, Offset: 5}
	if str := a.Add(3).String(); str != "2:8" {
		t.Fatalf("got %s", str)
	}
	b, err := a.Sub(5)
	if err != nil {
		t.Fatal(err)
	}
	if b.Offset != 0 {
		t.Fatalf("got %v", b)
	}
	if _, err := a.Sub(6); !errors.Is(err, ErrOffsetUnderflow) {
		t.Fatalf("got %v", err)
	}
	d, err := a.Distance(b)
	if err != nil {
		t.Fatal(err)
	}
	if d != 5 {
		t.Fatalf("got %v", d)
	}
	if _, err := a.Distance(Address{Segment: 1}); err == nil {
		t.Fatal()
	}
}

func TestFeltNegative(t *testing.T) {
	f := NewFelt(-1)
	if f.Big().Cmp(Prime) >= 0 || f.Big().Sign() < 0 {
		t.Fatalf("got %v", f)
	}
	if !f.Equal(FeltFromBig(f.Big())) {
		t.Fatal()
	}
	if b := NewFelt(0).Bytes(); len(b) != 1 || b[0] != 0 {
		t.Fatalf("got %v", b)
	}
}

func TestSegmentsUsedSize(t *testing.T) {
	segments := NewSegments()
	a := segments.Add()
	b := segments.Add()
	if a.Segment != 0 || b.Segment != 1 {
		t.Fatalf("got %v %v", a, b)
	}

	if _, err := segments.UsedSize(0); !errors.Is(err, ErrMissingSegmentUsedSizes) {
		t.Fatalf("got %v", err)
	}

	end, err := segments.LoadData(a, []Value{NewFelt(1), NewFelt(2), b})
	if err != nil {
		t.Fatal(err)
	}
	if end != a.Add(3) {
		t.Fatalf("got %v", end)
	}

	sizes := segments.ComputeEffectiveSizes()
	if len(sizes) != 2 || sizes[0] != 3 || sizes[1] != 0 {
		t.Fatalf("got %v", sizes)
	}
	size, err := segments.UsedSize(0)
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 {
		t.Fatalf("got %v", size)
	}
}

func TestSegmentsRelocate(t *testing.T) {
	segments := NewSegments()
	a := segments.Add()
	b := segments.Add()
	if _, err := segments.LoadData(a, []Value{NewFelt(7), b.Add(1)}); err != nil {
		t.Fatal(err)
	}
	if _, err := segments.LoadData(b, []Value{NewFelt(8), NewFelt(9)}); err != nil {
		t.Fatal(err)
	}
	segments.ComputeEffectiveSizes()

	table, err := segments.RelocationTable()
	if err != nil {
		t.Fatal(err)
	}
	if table[0] != 1 || table[1] != 3 {
		t.Fatalf("got %v", table)
	}

	cells, err := segments.Relocate()
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 4 {
		t.Fatalf("got %v", cells)
	}
	// 1 -> 7, 2 -> address of b+1 = 4, 3 -> 8, 4 -> 9
	expected := []int64{7, 4, 8, 9}
	for i, cell := range cells {
		if cell.Index != i+1 {
			t.Fatalf("got %v", cell.Index)
		}
		if cell.Value.Int64() != expected[i] {
			t.Fatalf("got %v", cell.Value)
		}
	}
}
