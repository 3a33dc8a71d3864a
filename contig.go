/**
 * Filename: contig.go
 * Path: allhic-merge
 */

package allhicmerge

// Contig is an immutable input record: its name, its sequence bytes (DNA or
// color-space, per Alphabet), and the read coverage reported in the FASTA
// comment.
type Contig struct {
	Name     string
	Sequence []byte
	Coverage uint32
}

// ContigTable is the in-memory table of all input contigs, keyed by their
// ContigIDRegistry key, the way extract.go keeps a parallel
// []*ContigInfo + contigToIdx map -- collapsed here into a single slice
// indexed directly by ContigKey since keys are dense and allocated in
// first-seen order.
type ContigTable struct {
	Registry *ContigIDRegistry
	Alphabet Alphabet
	contigs  []Contig
}

// NewContigTable returns an empty table bound to registry.
func NewContigTable(registry *ContigIDRegistry) *ContigTable {
	return &ContigTable{Registry: registry}
}

// Add stores contig under key, the dense key the table's registry
// allocated for its name. Callers must add contigs in the same
// first-seen order the registry assigns keys, i.e. immediately after
// interning the name.
func (t *ContigTable) Add(key ContigKey, contig Contig) {
	if int(key) != len(t.contigs) {
		// Grow to keep the slice dense; a gap would mean a key was
		// interned without a corresponding contig, which never
		// happens on the ContigReader's read path.
		for len(t.contigs) < int(key) {
			t.contigs = append(t.contigs, Contig{})
		}
	}
	t.contigs = append(t.contigs, contig)
}

// Get returns the contig stored under key.
func (t *ContigTable) Get(key ContigKey) (Contig, bool) {
	if key < 0 || int(key) >= len(t.contigs) {
		return Contig{}, false
	}
	return t.contigs[key], true
}

// Len returns the number of contigs in the table.
func (t *ContigTable) Len() int {
	return len(t.contigs)
}

// PerKmerCoverage returns contig.Coverage / (len(contig.Sequence) - k + 1),
// and whether the contig is long enough (longer than k-1) to have a defined
// value.
func PerKmerCoverage(c Contig, k int) (float64, bool) {
	denom := len(c.Sequence) - k + 1
	if denom <= 0 {
		return 0, false
	}
	return float64(c.Coverage) / float64(denom), true
}
