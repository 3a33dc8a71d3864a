/**
 * Filename: splicer.go
 * Path: allhic-merge
 *
 * Grounded on mergeSequences/mergePath in the original MergePaths.cpp:
 * seed with the (possibly reverse-complemented) root sequence, then fold
 * in each subsequent contig subject to a strict k-1 overlap check.
 */

package allhicmerge

// SequenceSplicer stitches a Path's contig sequences into one sequence
// under the k-1 overlap contract.
type SequenceSplicer struct {
	K        int
	Alphabet Alphabet
}

// NewSequenceSplicer returns a splicer configured for the given k-mer size
// and alphabet.
func NewSequenceSplicer(k int, alphabet Alphabet) *SequenceSplicer {
	return &SequenceSplicer{K: k, Alphabet: alphabet}
}

// Splice merges path's contigs, drawn from table, into a single sequence
// and returns it together with the summed coverage. path must be
// non-empty; every element's ID must resolve in table or Splice returns an
// *UnknownContigError.
func (s *SequenceSplicer) Splice(path Path, table *ContigTable) ([]byte, uint32, error) {
	if len(path) == 0 {
		return nil, 0, &InconsistentMergeState{Message: "cannot splice an empty path"}
	}

	overlap := s.K - 1

	root := path[0]
	rootContig, ok := table.Get(root.ID)
	if !ok {
		name, _ := table.Registry.Name(root.ID)
		return nil, 0, &UnknownContigError{Name: name}
	}

	accumulator := s.orient(rootContig.Sequence, root.Reverse)
	coverage := rootContig.Coverage

	for _, elem := range path[1:] {
		contig, ok := table.Get(elem.ID)
		if !ok {
			name, _ := table.Registry.Name(elem.ID)
			return nil, 0, &UnknownContigError{Name: name}
		}
		incoming := s.orient(contig.Sequence, elem.Reverse)

		if len(accumulator) < overlap || len(incoming) < overlap {
			return nil, 0, &OverlapViolation{
				LeftName: "(accumulator)", RightName: contig.Name,
				LeftEnd: string(tail(accumulator, overlap)), RightBegin: string(head(incoming, overlap)),
			}
		}

		left := tail(accumulator, overlap)
		right := head(incoming, overlap)
		if string(left) != string(right) {
			return nil, 0, &OverlapViolation{
				LeftName: "(accumulator)", RightName: contig.Name,
				LeftEnd: string(left), RightBegin: string(right),
			}
		}

		accumulator = append(accumulator, incoming[overlap:]...)
		coverage += contig.Coverage
	}

	return accumulator, coverage, nil
}

// orient returns seq reverse-complemented iff reverse is set.
func (s *SequenceSplicer) orient(seq []byte, reverse bool) []byte {
	if !reverse {
		return append([]byte(nil), seq...)
	}
	return ReverseComplement(seq, s.Alphabet)
}

func tail(b []byte, n int) []byte {
	if n > len(b) {
		n = len(b)
	}
	return b[len(b)-n:]
}

func head(b []byte, n int) []byte {
	if n > len(b) {
		n = len(b)
	}
	return b[:n]
}
