/**
 * Filename: contigreader.go
 * Path: allhic-merge
 *
 * Reads the input FASTA the way extract.go's readFastaAndWriteRE does
 * (fastx.NewDefaultReader + seq.ValidateSeq=false for parse speed), and
 * cross-checks contig lengths against a .fai index the way build.go's
 * GetFastaSizes does.
 */

package allhicmerge

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fai"
	"github.com/shenwei356/bio/seqio/fastx"
)

// ContigReader loads the contig FASTA, interning every contig name into a
// ContigIDRegistry and parsing the "<length> <coverage>" comment convention
// described below.
type ContigReader struct {
	Fastafile string
}

// Read parses r.Fastafile into a ContigTable, locking its registry once
// every contig has been interned.
func (r *ContigReader) Read() (*ContigTable, error) {
	if _, err := os.Stat(r.Fastafile); err != nil {
		return nil, &IOError{Path: r.Fastafile, Err: err}
	}

	seq.ValidateSeq = false

	reader, err := fastx.NewDefaultReader(r.Fastafile)
	if err != nil {
		return nil, &IOError{Path: r.Fastafile, Err: err}
	}

	registry := NewContigIDRegistry()
	table := NewContigTable(registry)
	var alphabet Alphabet
	first := true

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &IOError{Path: r.Fastafile, Err: err}
		}

		nameAndComment := string(rec.Name)
		name := strings.Fields(nameAndComment)[0]
		length, coverage := parseContigComment(nameAndComment)

		sequence := append([]byte(nil), rec.Seq.Seq...)
		if first {
			if len(sequence) > 0 {
				alphabet = InferAlphabet(sequence[0])
			}
			first = false
		}

		if length > 0 && length != len(sequence) {
			log.Debugf("Contig `%s`: declared length %d, FASTA length %d", name, length, len(sequence))
		}

		key, err := registry.Intern(name)
		if err != nil {
			return nil, err
		}
		table.Add(key, Contig{Name: name, Sequence: sequence, Coverage: uint32(coverage)})
	}

	registry.Lock()
	table.Alphabet = alphabet

	log.Noticef("Parsed %d contigs from `%s` (alphabet: %s)", table.Len(), r.Fastafile, alphabet)

	r.crossCheckFai(table)

	return table, nil
}

// crossCheckFai builds a .fai index the way build.go's GetFastaSizes does
// and logs a warning if any contig's read sequence length disagrees with
// the indexed length. The index file is rebuilt whenever it is older than the
// FASTA it describes, mirroring build.go's IsNewerFile staleness check.
func (r *ContigReader) crossCheckFai(table *ContigTable) {
	faifile := r.Fastafile + ".fai"
	if !IsNewerFile(faifile, r.Fastafile) {
		os.Remove(faifile)
	}

	faidx, err := fai.New(r.Fastafile)
	if err != nil {
		log.Debugf("Could not build FASTA index for `%s`: %v", r.Fastafile, err)
		return
	}
	defer faidx.Close()

	for i := 0; i < table.Len(); i++ {
		contig, _ := table.Get(ContigKey(i))
		rec, ok := faidx.Index[contig.Name]
		if !ok {
			continue
		}
		if rec.Length != len(contig.Sequence) {
			log.Warningf("Contig `%s`: .fai length %d disagrees with read length %d",
				contig.Name, rec.Length, len(contig.Sequence))
		}
	}
}

// parseContigComment extracts the "<length> <coverage>" pair following the
// id on the defline. Missing or malformed fields
// default to zero, matching the original MergePaths tool's
// `ss >> length >> coverage` best-effort parse.
func parseContigComment(nameAndComment string) (length, coverage int) {
	fields := strings.Fields(nameAndComment)
	if len(fields) < 2 {
		return 0, 0
	}
	length, _ = strconv.Atoi(fields[1])
	if len(fields) >= 3 {
		coverage, _ = strconv.Atoi(fields[2])
	}
	return length, coverage
}

// IsNewerFile checks if file a is newer than file b, the same helper
// build.go defines for deciding whether a cached .fai index is stale.
func IsNewerFile(a, b string) bool {
	af, aerr := os.Stat(a)
	bf, berr := os.Stat(b)
	if os.IsNotExist(aerr) || os.IsNotExist(berr) {
		return false
	}
	return af.ModTime().After(bf.ModTime())
}
