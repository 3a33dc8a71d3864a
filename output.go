/**
 * Filename: output.go
 * Path: allhic-merge
 *
 * Writes the two output modes described below: a plain path listing, and
 * a spliced FASTA. The FASTA writer uses bufio+fmt rather than the
 * shenwei356/bio FASTA library, since only its read-side API
 * (fastx.NewDefaultReader) appears anywhere in the reference material --
 * there is no verified write-side API to build against. The defline
 * layout otherwise follows the original MergePaths tool's
 * `>id len coverage path` convention.
 */

package allhicmerge

import (
	"bufio"
	"fmt"
	"io"
)

// OutputFormatter renders a linked, deduped PathStore either as a plain
// path listing or as spliced FASTA records.
type OutputFormatter struct {
	Table   *ContigTable
	Splicer *SequenceSplicer
}

// NewOutputFormatter returns a formatter bound to table and splicer.
func NewOutputFormatter(table *ContigTable, splicer *SequenceSplicer) *OutputFormatter {
	return &OutputFormatter{Table: table, Splicer: splicer}
}

// WritePaths writes one line per unique path in store, numbered from 0,
// in the "<ordinal> name0+ name1- ..." textual form.
func (f *OutputFormatter) WritePaths(w io.Writer, store *PathStore) error {
	bw := bufio.NewWriter(w)
	for i, path := range store.UniquePaths() {
		text, err := path.Format(f.Table.Registry.Name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%d %s\n", i, text); err != nil {
			return &IOError{Path: "<path output>", Err: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Path: "<path output>", Err: err}
	}
	return nil
}

// WriteFasta splices every unique path in store into a FASTA record whose
// id is a fresh integer seeded one past the highest pre-existing contig id,
// passes through every input contig not used by any path unchanged, and
// always reports the minimum per-k-mer coverage across all input contigs
// and across contigs used in a canonical path, suggesting a higher
// coverage threshold when the former falls below the latter.
func (f *OutputFormatter) WriteFasta(w io.Writer, store *PathStore) error {
	bw := bufio.NewWriter(w)

	used := make(map[ContigKey]bool)
	paths := store.UniquePaths()

	var mergedMinCoverage float64
	mergedMinSet := false
	var overallMinCoverage float64
	overallMinSet := false

	nextID := f.Table.Registry.Len()

	for _, path := range paths {
		sequence, coverage, err := f.Splicer.Splice(path, f.Table)
		if err != nil {
			return err
		}
		for _, oc := range path {
			used[oc.ID] = true
		}

		text, err := path.Format(f.Table.Registry.Name)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(bw, ">%d %d %d %s\n", nextID, len(sequence), coverage, text); err != nil {
			return &IOError{Path: "<fasta output>", Err: err}
		}
		nextID++
		if _, err := bw.Write(sequence); err != nil {
			return &IOError{Path: "<fasta output>", Err: err}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return &IOError{Path: "<fasta output>", Err: err}
		}

		if cov, ok := PerKmerCoverage(Contig{Coverage: coverage, Sequence: sequence}, f.Splicer.K); ok {
			if !mergedMinSet || cov < mergedMinCoverage {
				mergedMinCoverage, mergedMinSet = cov, true
			}
		}
	}

	for key := 0; key < f.Table.Len(); key++ {
		contig, ok := f.Table.Get(ContigKey(key))
		if !ok {
			continue
		}
		if cov, ok := PerKmerCoverage(contig, f.Splicer.K); ok {
			if !overallMinSet || cov < overallMinCoverage {
				overallMinCoverage, overallMinSet = cov, true
			}
		}
		if used[ContigKey(key)] {
			continue
		}
		if _, err := fmt.Fprintf(bw, ">%s %d %d\n", contig.Name, len(contig.Sequence), contig.Coverage); err != nil {
			return &IOError{Path: "<fasta output>", Err: err}
		}
		if _, err := bw.Write(contig.Sequence); err != nil {
			return &IOError{Path: "<fasta output>", Err: err}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return &IOError{Path: "<fasta output>", Err: err}
		}
	}

	if err := bw.Flush(); err != nil {
		return &IOError{Path: "<fasta output>", Err: err}
	}

	log.Noticef("Minimum per-k-mer coverage across all input contigs: %.2f", overallMinCoverage)
	log.Noticef("Minimum per-k-mer coverage across contigs used in a canonical path: %.2f", mergedMinCoverage)
	if overallMinSet && mergedMinSet && overallMinCoverage < mergedMinCoverage {
		log.Noticef("Consider raising the coverage threshold to %.2f", mergedMinCoverage)
	}

	return nil
}
