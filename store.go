package shapecache

import "container/list"

// storeEntry is the tuple (Key, Artifact, entry_bytes) held in the store's
// recency list. The list's own position encodes recency-rank: front is most
// recently inserted, back is oldest.
type storeEntry struct {
	key      Key
	artifact *Artifact
	bytes    int
}

// store is a byte-budget-agnostic, insertion-order-recency mapping from Key
// to Artifact. It does not enforce any capacity itself — that is the cache
// facade's job (see cache.go) — it only provides get/put/remove-oldest over a
// doubly-linked list plus an index map, the same shape the gioui-gio and
// tinne26-etxt LRU caches use, generalized to hold arbitrary entry byte sizes.
//
// get does not promote on hit: ordering is insertion-recency only, matching
// the behavior of the source this design is modeled on (see SPEC_FULL.md
// §4.5).
type store struct {
	index     map[string]*list.Element
	order     *list.List // front = most recently inserted, back = oldest
	onRemoved func(Key, *Artifact)
}

func newStore() *store {
	return &store{
		index: make(map[string]*list.Element),
		order: list.New(),
	}
}

// SetOnRemoved installs the callback invoked whenever an entry leaves the
// store, whether by explicit eviction or by Clear. It is called with the
// removed entry's key and artifact before the storage is reclaimed.
func (s *store) SetOnRemoved(fn func(Key, *Artifact)) {
	s.onRemoved = fn
}

// Get looks up an entry by key without mutating recency order.
func (s *store) Get(key *Key) (*Artifact, bool) {
	el, ok := s.index[key.digest()]
	if !ok {
		return nil, false
	}
	return el.Value.(*storeEntry).artifact, true
}

// Put inserts an owned key and its artifact as the most-recently-inserted
// entry. The caller must have called key.internalize() already; bytes is the
// precomputed entry_bytes (key.size() + artifact.size()).
func (s *store) Put(key Key, artifact *Artifact, bytes int) {
	entry := &storeEntry{key: key, artifact: artifact, bytes: bytes}
	el := s.order.PushFront(entry)
	s.index[key.digest()] = el
}

// RemoveOldest evicts the least-recently-inserted entry, invoking the
// removal callback before reclaiming it. ok is false if the store is empty.
func (s *store) RemoveOldest() (key Key, artifact *Artifact, bytes int, ok bool) {
	el := s.order.Back()
	if el == nil {
		return Key{}, nil, 0, false
	}
	entry := el.Value.(*storeEntry)
	s.order.Remove(el)
	delete(s.index, entry.key.digest())
	if s.onRemoved != nil {
		s.onRemoved(entry.key, entry.artifact)
	}
	return entry.key, entry.artifact, entry.bytes, true
}

// Clear removes every entry, firing the removal callback for each.
func (s *store) Clear() {
	for el := s.order.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*storeEntry)
		if s.onRemoved != nil {
			s.onRemoved(entry.key, entry.artifact)
		}
	}
	s.order.Init()
	s.index = make(map[string]*list.Element)
}

// Len reports the number of entries currently stored.
func (s *store) Len() int {
	return s.order.Len()
}
