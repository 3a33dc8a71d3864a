/**
 * Filename: stats.go
 * Path: allhic-merge
 *
 * Cross-checks the coverage figure declared in a contig FASTA's defline
 * against the actual number of primary alignments a BAM file records for
 * that contig, the way anchor.go's ExtractInterContigLinks walks a BAM's
 * reference list and per-read positions.
 */

package allhicmerge

import (
	"fmt"
	"io"
	"sort"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// CoverageDiscrepancy reports one contig whose declared coverage disagrees
// with its observed alignment count by more than the auditor's tolerance.
type CoverageDiscrepancy struct {
	Name            string
	Declared        uint32
	ObservedReads   int
	ObservedPerKmer float64
}

// CoverageAuditor cross-checks a ContigTable's declared per-contig coverage
// against primary alignment counts drawn from a BAM file.
type CoverageAuditor struct {
	Bamfile   string
	Table     *ContigTable
	K         int
	Tolerance float64 // fractional disagreement that still counts as consistent
}

// NewCoverageAuditor returns an auditor with a default 50% tolerance.
func NewCoverageAuditor(bamfile string, table *ContigTable, k int) *CoverageAuditor {
	return &CoverageAuditor{Bamfile: bamfile, Table: table, K: k, Tolerance: 0.5}
}

// Audit opens r, counts primary alignments per reference, and returns one
// CoverageDiscrepancy per contig whose declared coverage disagrees with the
// observed alignment density by more than a.Tolerance.
func (a *CoverageAuditor) Audit(r io.Reader) ([]CoverageDiscrepancy, error) {
	br, err := bam.NewReader(r, 0)
	if err != nil {
		return nil, &IOError{Path: a.Bamfile, Err: err}
	}
	defer br.Close()

	refs := br.Header().Refs()
	counts := make(map[string]int, len(refs))
	for _, ref := range refs {
		counts[ref.Name()] = 0
	}

	for {
		rec, err := br.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Path: a.Bamfile, Err: err}
		}
		if rec.Ref == nil || rec.Flags&(sam.Unmapped|sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		counts[rec.Ref.Name()]++
	}

	var discrepancies []CoverageDiscrepancy
	for i := 0; i < a.Table.Len(); i++ {
		contig, ok := a.Table.Get(ContigKey(i))
		if !ok {
			continue
		}
		observed, ok := counts[contig.Name]
		if !ok {
			continue
		}
		perKmer, hasPerKmer := PerKmerCoverage(contig, a.K)
		observedPerKmer := float64(observed)
		if hasPerKmer && perKmer > 0 {
			ratio := observedPerKmer / perKmer
			if ratio < 1-a.Tolerance || ratio > 1+a.Tolerance {
				discrepancies = append(discrepancies, CoverageDiscrepancy{
					Name: contig.Name, Declared: contig.Coverage,
					ObservedReads: observed, ObservedPerKmer: observedPerKmer,
				})
			}
		}
	}

	sort.Slice(discrepancies, func(i, j int) bool { return discrepancies[i].Name < discrepancies[j].Name })
	return discrepancies, nil
}

// Report formats discrepancies as one line per contig.
func Report(w io.Writer, discrepancies []CoverageDiscrepancy) error {
	for _, d := range discrepancies {
		if _, err := fmt.Fprintf(w, "%s\tdeclared=%d\tobserved_reads=%d\tobserved_per_kmer=%.2f\n",
			d.Name, d.Declared, d.ObservedReads, d.ObservedPerKmer); err != nil {
			return &IOError{Path: "<stats output>", Err: err}
		}
	}
	return nil
}
