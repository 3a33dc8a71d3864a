package allhicmerge_test

import (
	"testing"

	"github.com/tanghaibao/allhic-merge"
)

func newTestTable() *allhicmerge.ContigTable {
	registry := allhicmerge.NewContigIDRegistry()
	table := allhicmerge.NewContigTable(registry)
	contigs := []allhicmerge.Contig{
		{Name: "a", Sequence: []byte("AAAACCCC"), Coverage: 10},
		{Name: "b", Sequence: []byte("CCCCGGGG"), Coverage: 20},
		{Name: "c", Sequence: []byte("GGGGTTTT"), Coverage: 30},
	}
	for _, c := range contigs {
		key, _ := registry.Intern(c.Name)
		table.Add(key, c)
	}
	registry.Lock()
	return table
}

func TestSpliceConcatenatesUnderOverlapContract(t *testing.T) {
	table := newTestTable()
	splicer := allhicmerge.NewSequenceSplicer(5, allhicmerge.Nucleotide)

	path := allhicmerge.Path{{ID: 0}, {ID: 1}, {ID: 2}}
	seq, coverage, err := splicer.Splice(path, table)
	if err != nil {
		t.Fatalf("Splice returned error: %v", err)
	}

	want := "AAAACCCCGGGGTTTT"
	if string(seq) != want {
		t.Errorf("Splice() = %q; want %q", seq, want)
	}

	wantLen := 8 + 8 + 8 - 2*4 // three 8-base contigs, k-1=4 overlap trimmed twice
	if len(seq) != wantLen {
		t.Errorf("len(Splice()) = %d; want %d", len(seq), wantLen)
	}
	if coverage != 60 {
		t.Errorf("coverage = %d; want 60", coverage)
	}
}

func TestSpliceRejectsMismatchedOverlap(t *testing.T) {
	registry := allhicmerge.NewContigIDRegistry()
	table := allhicmerge.NewContigTable(registry)
	a, _ := registry.Intern("a")
	b, _ := registry.Intern("b")
	table.Add(a, allhicmerge.Contig{Name: "a", Sequence: []byte("AAAACCCC")})
	table.Add(b, allhicmerge.Contig{Name: "b", Sequence: []byte("TTTTGGGG")})
	registry.Lock()

	splicer := allhicmerge.NewSequenceSplicer(5, allhicmerge.Nucleotide)
	path := allhicmerge.Path{{ID: a}, {ID: b}}

	if _, _, err := splicer.Splice(path, table); err == nil {
		t.Error("Splice on contigs with disagreeing overlap returned nil error")
	}
}

func TestSpliceHonoursReverseOrientation(t *testing.T) {
	registry := allhicmerge.NewContigIDRegistry()
	table := allhicmerge.NewContigTable(registry)
	a, _ := registry.Intern("a")
	table.Add(a, allhicmerge.Contig{Name: "a", Sequence: []byte("AAGGTT")})
	registry.Lock()

	splicer := allhicmerge.NewSequenceSplicer(3, allhicmerge.Nucleotide)
	path := allhicmerge.Path{{ID: a, Reverse: true}}

	seq, _, err := splicer.Splice(path, table)
	if err != nil {
		t.Fatalf("Splice returned error: %v", err)
	}
	want := "AACCTT"
	if string(seq) != want {
		t.Errorf("Splice() = %q; want %q", seq, want)
	}
}
