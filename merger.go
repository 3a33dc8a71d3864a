/**
 * Filename: merger.go
 * Path: allhic-merge
 *
 * Wires the reader, parser, consistency engine, splicer and formatter into
 * the single pipeline main() drives in the original MergePaths tool: read
 * contigs, read paths, link to a fixed point, dedupe, then write.
 */

package allhicmerge

import (
	"io"
	"os"
)

// Merger runs the full contig/path merge pipeline described by a Config.
type Merger struct {
	Config *Config
}

// NewMerger returns a Merger bound to cfg.
func NewMerger(cfg *Config) *Merger {
	return &Merger{Config: cfg}
}

// Run executes the pipeline end to end, writing results to cfg.OutputFile
// (or stdout if empty). Any returned error implements ExitCoder.
func (m *Merger) Run() error {
	if err := m.Config.Validate(); err != nil {
		return err
	}

	registry := NewContigIDRegistry()
	var table *ContigTable
	var alphabet Alphabet = Nucleotide

	if m.Config.ContigsFile != "" {
		reader := &ContigReader{Fastafile: m.Config.ContigsFile}
		read, err := reader.Read()
		if err != nil {
			return err
		}
		table = read
		registry = table.Registry
		alphabet = table.Alphabet
	}

	pathsFile, err := os.Open(m.Config.PathsFile)
	if err != nil {
		return &IOError{Path: m.Config.PathsFile, Err: err}
	}
	defer pathsFile.Close()

	parser := NewPathParser(registry)
	source := NewPathStore()
	n, err := parser.ParseFile(pathsFile, source)
	if err != nil {
		return err
	}
	log.Noticef("Parsed %d path records from `%s`", n, m.Config.PathsFile)

	engine := NewConsistencyEngine()
	linked, warnings, err := engine.Link(source)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warning(w)
	}
	log.Noticef("Linked %d paths down to %d after deduplication", source.Len(), linked.Len())

	var out io.Writer = os.Stdout
	if m.Config.OutputFile != "" {
		f, err := os.Create(m.Config.OutputFile)
		if err != nil {
			return &IOError{Path: m.Config.OutputFile, Err: err}
		}
		defer f.Close()
		out = f
	}

	switch m.Config.Mode {
	case Fasta:
		splicer := NewSequenceSplicer(m.Config.K, alphabet)
		formatter := NewOutputFormatter(table, splicer)
		return formatter.WriteFasta(out, linked)
	default:
		formatter := &OutputFormatter{Table: &ContigTable{Registry: registry}}
		return formatter.WritePaths(out, linked)
	}
}
