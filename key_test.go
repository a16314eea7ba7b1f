package shapecache

import "testing"

func TestKeyInternalizeCopiesCodeUnits(t *testing.T) {
	borrowed := []uint16{1, 2, 3}
	k := NewKey(FontConfig{}, borrowed, LTR)
	k.internalize()
	borrowed[0] = 99
	if k.CodeUnits()[0] == 99 {
		t.Fatalf("internalize did not copy code units: got shared slice")
	}
}

func TestKeyInternalizeIsIdempotent(t *testing.T) {
	k := NewKey(FontConfig{}, []uint16{1, 2}, LTR)
	k.internalize()
	owned := k.CodeUnits()
	k.internalize()
	if &owned[0] != &k.CodeUnits()[0] {
		t.Fatalf("second internalize call re-copied code units")
	}
}

func TestKeyEqualityIsFieldwise(t *testing.T) {
	a := NewKey(FontConfig{TextSize: 12}, []uint16{1, 2}, LTR)
	b := NewKey(FontConfig{TextSize: 12}, []uint16{1, 2}, LTR)
	c := NewKey(FontConfig{TextSize: 14}, []uint16{1, 2}, LTR)
	if !a.Equal(b) {
		t.Fatalf("expected keys with identical fields to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected keys with different text size to be unequal")
	}
}

func TestKeySize(t *testing.T) {
	k := NewKey(FontConfig{}, []uint16{1, 2, 3, 4}, LTR)
	got := k.size()
	want := 64 + 2*4
	if got != want {
		t.Fatalf("expected key size %d, got %d", want, got)
	}
}

func TestKeyDigestStableAcrossBorrowAndOwned(t *testing.T) {
	a := NewKey(FontConfig{}, []uint16{1, 2}, LTR)
	digestBorrowed := a.digest()
	a.internalize()
	if a.digest() != digestBorrowed {
		t.Fatalf("digest changed after internalize, got %q want %q", a.digest(), digestBorrowed)
	}
}
