/**
 * Filename: pathstore.go
 * Path: allhic-merge
 */

package allhicmerge

import "sort"

// PathStore is an exclusive-ownership mapping from root-contig key to its
// current canonical path. Unlike the original C++ ContigPathMap (a
// map<LinearNumKey, ContigPath*> whose pointers can alias and be
// double-freed across keys), a PathStore holds Path
// values directly, so there is nothing to double-free: Erase simply drops
// the map entry.
type PathStore struct {
	paths map[ContigKey]Path
}

// NewPathStore returns an empty PathStore.
func NewPathStore() *PathStore {
	return &PathStore{paths: make(map[ContigKey]Path)}
}

// Get returns the path stored under key, if any.
func (s *PathStore) Get(key ContigKey) (Path, bool) {
	p, ok := s.paths[key]
	return p, ok
}

// Set installs path under key, replacing any previous entry.
func (s *PathStore) Set(key ContigKey, path Path) {
	s.paths[key] = path
}

// Erase removes the entry under key. It is a no-op if key is absent, which
// makes repeated erasure of an already-removed alias safe.
func (s *PathStore) Erase(key ContigKey) {
	delete(s.paths, key)
}

// Has reports whether key has a stored path.
func (s *PathStore) Has(key ContigKey) bool {
	_, ok := s.paths[key]
	return ok
}

// Len returns the number of stored entries.
func (s *PathStore) Len() int {
	return len(s.paths)
}

// SortedKeys returns the store's keys in ascending order, giving
// deterministic iteration regardless of Go's randomized map order.
func (s *PathStore) SortedKeys() []ContigKey {
	keys := make([]ContigKey, 0, len(s.paths))
	for k := range s.paths {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// UniquePaths dedupes the store's contents by path value (not storage
// identity) and returns them sorted lexicographically over their element
// sequence. This is the Go analogue of the
// original's `set<ContigPath*> uniquePtr` -> dereference -> `sort`.
func (s *PathStore) UniquePaths() []Path {
	seen := make(map[string]Path)
	for _, p := range s.paths {
		seen[p.sortKey()] = p
	}
	out := make([]Path, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		p, q := out[i], out[j]
		for n := 0; n < len(p) && n < len(q); n++ {
			if p[n].ID != q[n].ID {
				return p[n].ID < q[n].ID
			}
			if p[n].Reverse != q[n].Reverse {
				return !p[n].Reverse
			}
		}
		return len(p) < len(q)
	})
	return out
}
