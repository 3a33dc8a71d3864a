/**
 * Filename: path.go
 * Path: allhic-merge
 */

package allhicmerge

import (
	"strconv"
	"strings"
)

// OrientedContig is a single element of a Path: a contig key plus whether
// it is read reverse-complemented in context. Two
// OrientedContigs are equal iff both fields match.
type OrientedContig struct {
	ID      ContigKey
	Reverse bool
}

// Path is an ordered, non-empty sequence of OrientedContig. A path filed in
// a PathStore contains its root, unreversed, whose ID is the key it is filed
// under; the root starts out as element 0, but PathParser and LinkPaths may
// prepend elements ahead of it.
type Path []OrientedContig

// Root returns the first element of the path.
func (p Path) Root() OrientedContig {
	return p[0]
}

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Reversed returns the reverse-complement of p: the sequence reversed and
// every element's Reverse flag toggled. Reversing twice yields the
// original path.
func (p Path) Reversed() Path {
	out := make(Path, len(p))
	n := len(p)
	for i, oc := range p {
		out[n-1-i] = OrientedContig{ID: oc.ID, Reverse: !oc.Reverse}
	}
	return out
}

// Equal reports whether two paths have identical element sequences.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// ContainsKey reports whether id appears anywhere in the path, regardless
// of orientation.
func (p Path) ContainsKey(id ContigKey) bool {
	for _, oc := range p {
		if oc.ID == id {
			return true
		}
	}
	return false
}

// KeySet returns the distinct set of contig keys appearing in the path.
func (p Path) KeySet() map[ContigKey]struct{} {
	set := make(map[ContigKey]struct{}, len(p))
	for _, oc := range p {
		set[oc.ID] = struct{}{}
	}
	return set
}

// sign renders the +/- orientation marker for a single element.
func sign(reverse bool) byte {
	if reverse {
		return '-'
	}
	return '+'
}

// Format renders the path as "<name0><sign0> <name1><sign1> ..." using
// resolve to turn each ContigKey into its textual name, mirroring the
// "<id><sign>" tokens the original MergePaths toString(ContigPath&) helper
// emits.
func (p Path) Format(resolve func(ContigKey) (string, error)) (string, error) {
	var b strings.Builder
	for i, oc := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		name, err := resolve(oc.ID)
		if err != nil {
			return "", err
		}
		b.WriteString(name)
		b.WriteByte(sign(oc.Reverse))
	}
	return b.String(), nil
}

// sortKey renders a canonical string encoding used to dedupe paths by value
// rather than by storage identity.
func (p Path) sortKey() string {
	var b strings.Builder
	for i, oc := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(oc.ID)))
		b.WriteByte(sign(oc.Reverse))
	}
	return b.String()
}

// Alignment is the result of comparing two paths: the inclusive index
// ranges of the maximal common subpath, and whether path B had to be
// reverse-complemented to align with path A.
type Alignment struct {
	StartA, EndA int
	StartB, EndB int
	Flipped      bool
}
