package minimize

import "testing"

func TestBitsetSetAndIndices(t *testing.T) {
	b := newBitset(70).set(3).set(65)
	got := b.indices()
	want := []int{3, 65}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("indices = %v, want %v", got, want)
	}
}

func TestBitsetSubsetOf(t *testing.T) {
	a := newBitset(10).set(1).set(2)
	b := newBitset(10).set(1).set(2).set(3)
	if !a.subsetOf(b) {
		t.Fatalf("a should be a subset of b")
	}
	if b.subsetOf(a) {
		t.Fatalf("b should not be a subset of a")
	}
}

func TestBitsetUnionAndPopcount(t *testing.T) {
	a := newBitset(10).set(1)
	b := newBitset(10).set(2)
	u := a.union(b)
	if u.popcount() != 2 {
		t.Fatalf("popcount = %d, want 2", u.popcount())
	}
}

func TestBitsetIndices(t *testing.T) {
	b := newBitset(70).set(0).set(64).set(69)
	got := b.indices()
	want := []int{0, 64, 69}
	if len(got) != len(want) {
		t.Fatalf("indices = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("indices = %v, want %v", got, want)
		}
	}
}

func TestBitsetIsEmpty(t *testing.T) {
	b := newBitset(10)
	if !b.isEmpty() {
		t.Fatalf("fresh bitset should be empty")
	}
	if b.set(0).isEmpty() {
		t.Fatalf("bitset with bit 0 set should not be empty")
	}
}
