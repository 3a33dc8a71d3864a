package allhicmerge_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tanghaibao/allhic-merge"
)

// writeFile writes contents to name under dir and returns the full path.
func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}

// twoArmFasta builds five contigs a..e, each k-1=2 overlapping with the
// next under k=3, the way S1/S6 hand-construct their overlaps.
const twoArmFasta = `>a 5 10
AAAAA
>b 5 20
AATTT
>c 5 30
TTGGG
>d 5 40
GGCCC
>e 5 50
CCAAA
`

// S1: a two-arm merge over `@a+ -> b+ c+` and `@b+ -> c+ d+ e+`, spliced
// into FASTA under k=3, reconciles down to the single canonical path
// a+ b+ c+ d+ e+.
func TestMergerRunSplicesTwoArmMergeIntoFasta(t *testing.T) {
	dir := t.TempDir()
	contigsfile := writeFile(t, dir, "contigs.fasta", twoArmFasta)
	pathsfile := writeFile(t, dir, "paths.txt", "@a+ -> b+ c+\n@b+ -> c+ d+ e+\n")
	outfile := filepath.Join(dir, "out.fasta")

	cfg := &allhicmerge.Config{
		ContigsFile: contigsfile,
		PathsFile:   pathsfile,
		OutputFile:  outfile,
		K:           3,
		Mode:        allhicmerge.Fasta,
	}
	if err := allhicmerge.NewMerger(cfg).Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := readFile(t, outfile)
	// a..e occupy registry ids 0..4; the merged record's id is the next
	// fresh one (5). Splicing under k=3 (overlap 2) trims 2 bases per
	// join across 4 joins: 5*5 - 4*2 = 17 bases, coverage 10+20+30+40+50.
	wantHeader := ">5 17 150 a+ b+ c+ d+ e+\n"
	wantSeq := "AAAAATTTGGGCCCAAA\n"
	if !strings.Contains(out, wantHeader+wantSeq) {
		t.Errorf("Run() fasta output = %q; want header %q followed by %q", out, wantHeader, wantSeq)
	}
}

// S6: the same two-arm linking without a contigs file numbers and renders
// the single canonical path as a plain listing.
func TestMergerRunPathsOnlyNumbersFromZero(t *testing.T) {
	dir := t.TempDir()
	pathsfile := writeFile(t, dir, "paths.txt", "@a+ -> b+ c+\n@b+ -> c+ d+ e+\n")
	outfile := filepath.Join(dir, "out.txt")

	cfg := &allhicmerge.Config{
		PathsFile:  pathsfile,
		OutputFile: outfile,
		Mode:       allhicmerge.PathsOnly,
	}
	if err := allhicmerge.NewMerger(cfg).Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := readFile(t, outfile)
	want := "0 a+ b+ c+ d+ e+\n"
	if out != want {
		t.Errorf("Run() paths-only output = %q; want %q", out, want)
	}
}

// S2: orientation reconcile. `@a+ -> b+ c+` and `@c- -> b- a-` describe the
// same chain from opposite ends; linking must reconcile them to a single
// canonical a+ b+ c+.
func TestMergerRunReconcilesOppositeOrientations(t *testing.T) {
	dir := t.TempDir()
	pathsfile := writeFile(t, dir, "paths.txt", "@a+ -> b+ c+\n@c- -> b- a-\n")
	outfile := filepath.Join(dir, "out.txt")

	cfg := &allhicmerge.Config{
		PathsFile:  pathsfile,
		OutputFile: outfile,
		Mode:       allhicmerge.PathsOnly,
	}
	if err := allhicmerge.NewMerger(cfg).Run(); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	out := readFile(t, outfile)
	want := "0 a+ b+ c+\n"
	if out != want {
		t.Errorf("Run() paths-only output = %q; want %q", out, want)
	}
}

// S5: contigs declared overlapping under k=5 but disagreeing in the
// overlap window must surface an *OverlapViolation and exit non-zero.
func TestMergerRunReportsOverlapViolation(t *testing.T) {
	dir := t.TempDir()
	contigsfile := writeFile(t, dir, "contigs.fasta", ">a 8 10\nAAAACCCC\n>b 8 20\nTTTTGGGG\n")
	pathsfile := writeFile(t, dir, "paths.txt", "@a+ -> b+\n")
	outfile := filepath.Join(dir, "out.fasta")

	cfg := &allhicmerge.Config{
		ContigsFile: contigsfile,
		PathsFile:   pathsfile,
		OutputFile:  outfile,
		K:           5,
		Mode:        allhicmerge.Fasta,
	}
	err := allhicmerge.NewMerger(cfg).Run()
	if err == nil {
		t.Fatal("Run returned nil error for a mismatched overlap")
	}
	violation, ok := err.(*allhicmerge.OverlapViolation)
	if !ok {
		t.Fatalf("Run() error = %T; want *OverlapViolation", err)
	}
	if violation.ExitCode() != 6 {
		t.Errorf("ExitCode() = %d; want 6", violation.ExitCode())
	}
}

// S3: the anchor contig (100) occurs twice in both a and b, each time with
// matching flanking material on one side, so two distinct seed pairs both
// produce a genuine, equal-length maximal alignment (length 3, i.e.
// bestCount=2) without either one spanning the full 7 elements of either
// path. That duplicate at less than the full length is the ambiguity
// CheckPathConsistency's duplicateSize check exists to reject.
func TestCheckPathConsistencyRejectsDuplicateMaximalAlignment(t *testing.T) {
	e := allhicmerge.NewConsistencyEngine()
	a := allhicmerge.Path{{ID: 100}, {ID: 11}, {ID: 12}, {ID: 90}, {ID: 100}, {ID: 21}, {ID: 22}}
	b := allhicmerge.Path{{ID: 100}, {ID: 21}, {ID: 22}, {ID: 91}, {ID: 100}, {ID: 11}, {ID: 12}}

	_, _, matched, err := e.CheckPathConsistency(a, b, 100)
	if err != nil {
		t.Fatalf("CheckPathConsistency returned error: %v", err)
	}
	if matched {
		t.Error("CheckPathConsistency matched a duplicate maximal alignment instead of rejecting it")
	}
}

// A circular chain stored twice, once under each rotation's root key,
// has equal contig sets from either direction. Dedupe cannot erase either
// side outright, so it must warn about the unresolved pair rather than
// silently keeping both as if they were unrelated.
func TestDedupeWarnsOnCircularSubsumption(t *testing.T) {
	store := allhicmerge.NewPathStore()
	store.Set(0, allhicmerge.Path{{ID: 0}, {ID: 1}, {ID: 2}}) // p -> q -> r
	store.Set(1, allhicmerge.Path{{ID: 1}, {ID: 2}, {ID: 0}}) // q -> r -> p

	e := allhicmerge.NewConsistencyEngine()
	warnings, err := e.Dedupe(store)
	if err != nil {
		t.Fatalf("Dedupe returned error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("Dedupe produced %d warnings; want 1", len(warnings))
	}
	if !store.Has(0) || !store.Has(1) {
		t.Error("Dedupe erased one side of an unresolved circular pair instead of warning")
	}
}
