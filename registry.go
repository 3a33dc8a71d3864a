/**
 * Filename: registry.go
 * Path: allhic-merge
 */

package allhicmerge

// ContigKey is a dense non-negative integer assigned in first-seen order.
type ContigKey int

// ContigIDRegistry interns textual contig names to dense numeric keys,
// bidirectionally, the way extract.go keeps a parallel
// contigToIdx map[string]int alongside a []*ContigInfo slice -- generalized
// here into a standalone, lockable type.
type ContigIDRegistry struct {
	keyOf  map[string]ContigKey
	nameOf []string
	locked bool
}

// NewContigIDRegistry returns an empty, unlocked registry.
func NewContigIDRegistry() *ContigIDRegistry {
	return &ContigIDRegistry{
		keyOf: make(map[string]ContigKey),
	}
}

// Intern returns the existing key for name, or allocates the next dense key.
// It returns a *LockedError if the registry has already been locked.
func (r *ContigIDRegistry) Intern(name string) (ContigKey, error) {
	if key, ok := r.keyOf[name]; ok {
		return key, nil
	}
	if r.locked {
		return 0, &LockedError{Name: name}
	}
	key := ContigKey(len(r.nameOf))
	r.keyOf[name] = key
	r.nameOf = append(r.nameOf, name)
	return key, nil
}

// Lookup returns the key for name without allocating, reporting whether it
// has been interned yet.
func (r *ContigIDRegistry) Lookup(name string) (ContigKey, bool) {
	key, ok := r.keyOf[name]
	return key, ok
}

// Name returns the interned name for key. It is total on allocated keys and
// returns an *UnknownKeyError otherwise.
func (r *ContigIDRegistry) Name(key ContigKey) (string, error) {
	if key < 0 || int(key) >= len(r.nameOf) {
		return "", &UnknownKeyError{Key: key}
	}
	return r.nameOf[key], nil
}

// Lock freezes the mapping; subsequent Intern calls for unseen names fail.
func (r *ContigIDRegistry) Lock() {
	r.locked = true
}

// Len returns the number of interned names.
func (r *ContigIDRegistry) Len() int {
	return len(r.nameOf)
}
