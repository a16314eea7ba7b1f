package shapecache

import "testing"

func putTestEntry(s *store, codeUnits []uint16, bytes int) Key {
	k := NewKey(FontConfig{}, codeUnits, LTR)
	k.internalize()
	s.Put(k, newArtifact(0), bytes)
	return k
}

func TestStoreGetMiss(t *testing.T) {
	s := newStore()
	k := NewKey(FontConfig{}, []uint16{1}, LTR)
	if _, ok := s.Get(&k); ok {
		t.Fatalf("expected miss on empty store")
	}
}

func TestStoreGetHitAfterPut(t *testing.T) {
	s := newStore()
	k := putTestEntry(s, []uint16{1, 2}, 10)
	if _, ok := s.Get(&k); !ok {
		t.Fatalf("expected hit after put")
	}
}

func TestStoreRemoveOldestIsInsertionOrder(t *testing.T) {
	s := newStore()
	k1 := putTestEntry(s, []uint16{1}, 10)
	putTestEntry(s, []uint16{2}, 10)
	putTestEntry(s, []uint16{3}, 10)

	removed, _, _, ok := s.RemoveOldest()
	if !ok || !removed.Equal(k1) {
		t.Fatalf("expected oldest entry (k1) to be evicted first")
	}
}

func TestStoreGetDoesNotPromote(t *testing.T) {
	s := newStore()
	k1 := putTestEntry(s, []uint16{1}, 10)
	putTestEntry(s, []uint16{2}, 10)
	s.Get(&k1) // a hit on the oldest entry must not change eviction order

	removed, _, _, ok := s.RemoveOldest()
	if !ok || !removed.Equal(k1) {
		t.Fatalf("expected get() to not promote recency; k1 should still be oldest")
	}
}

func TestStoreOnRemovedFiresOnEviction(t *testing.T) {
	s := newStore()
	var removedCount int
	s.SetOnRemoved(func(Key, *Artifact) { removedCount++ })
	putTestEntry(s, []uint16{1}, 10)
	putTestEntry(s, []uint16{2}, 10)
	s.RemoveOldest()
	if removedCount != 1 {
		t.Fatalf("expected removal callback to fire exactly once, fired %d times", removedCount)
	}
}

func TestStoreClearFiresCallbackForEveryEntry(t *testing.T) {
	s := newStore()
	var removedCount int
	s.SetOnRemoved(func(Key, *Artifact) { removedCount++ })
	putTestEntry(s, []uint16{1}, 10)
	putTestEntry(s, []uint16{2}, 10)
	putTestEntry(s, []uint16{3}, 10)
	s.Clear()
	if removedCount != 3 {
		t.Fatalf("expected 3 removal callbacks, got %d", removedCount)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store after Clear, got len=%d", s.Len())
	}
}
