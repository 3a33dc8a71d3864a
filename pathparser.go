/**
 * Filename: pathparser.go
 * Path: allhic-merge
 *
 * Grammar: '@' WS? NAME SIGN WS "->" WS (NAME SIGN WS?)+
 *
 * Grounded on readPathsFromFile in the original MergePaths.cpp (which
 * tokenizes "@ <root><sign> -> <tail>" via operator>> on a MergeNode/
 * ContigPath pair) and on build.go's ParseTour, which already splits
 * "<name><sign>" tokens by peeling off the trailing sign byte.
 */

package allhicmerge

import (
	"bufio"
	"io"
	"strings"
)

// PathParser parses one path record per line into a PathStore.
type PathParser struct {
	Registry *ContigIDRegistry
}

// NewPathParser returns a parser that interns contig names into registry.
func NewPathParser(registry *ContigIDRegistry) *PathParser {
	return &PathParser{Registry: registry}
}

// ParseFile reads every line of r into store, returning the number of
// records parsed.
func (p *PathParser) ParseFile(r io.Reader, store *PathStore) (int, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	records := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.parseLine(line, lineNo, store); err != nil {
			return records, err
		}
		records++
	}
	if err := scanner.Err(); err != nil {
		return records, &IOError{Path: "<path file>", Err: err}
	}
	return records, nil
}

// parseLine parses a single "@ root<sign> -> elem<sign> ..." record and
// folds it into store.
func (p *PathParser) parseLine(line string, lineNo int, store *PathStore) error {
	fields := strings.Fields(line)
	if len(fields) > 0 && len(fields[0]) > 1 && fields[0][0] == '@' {
		// '@' written directly against the root name, as in "@a+ -> b+".
		fields = append([]string{"@", fields[0][1:]}, fields[1:]...)
	}
	if len(fields) < 3 {
		return &MalformedPathError{Line: lineNo, Record: line, Reason: "expected '@ root -> tail...'"}
	}
	if fields[0] != "@" {
		return &MalformedPathError{Line: lineNo, Record: line, Reason: "record must start with '@'"}
	}
	if fields[2] != "->" {
		return &MalformedPathError{Line: lineNo, Record: line, Reason: "expected '->' after root"}
	}

	rootName, rootReverse, err := splitSign(fields[1])
	if err != nil {
		return &MalformedPathError{Line: lineNo, Record: line, Reason: err.Error()}
	}

	tailTokens := fields[3:]
	if len(tailTokens) == 0 {
		return &MalformedPathError{Line: lineNo, Record: line, Reason: "path has no elements after '->'"}
	}
	tail := make(Path, 0, len(tailTokens))
	for _, tok := range tailTokens {
		name, reverse, err := splitSign(tok)
		if err != nil {
			return &MalformedPathError{Line: lineNo, Record: line, Reason: err.Error()}
		}
		key, ierr := p.intern(name)
		if ierr != nil {
			return ierr
		}
		tail = append(tail, OrientedContig{ID: key, Reverse: reverse})
	}

	rootKey, err := p.intern(rootName)
	if err != nil {
		return err
	}

	existing, ok := store.Get(rootKey)
	if !ok {
		existing = Path{{ID: rootKey, Reverse: false}}
	} else if existing[0].ID != rootKey || existing[0].Reverse {
		return &InconsistentMergeState{
			Message: "stored path for root " + rootName + " does not start with the unreversed root",
		}
	}

	if !rootReverse {
		if ok && len(existing) != 1 {
			return &InconsistentMergeState{
				Message: "root " + rootName + " already has a forward record applied",
			}
		}
		merged := make(Path, 0, len(existing)+len(tail))
		merged = append(merged, existing...)
		merged = append(merged, tail...)
		store.Set(rootKey, merged)
	} else {
		reversedTail := make(Path, len(tail))
		for i, oc := range tail {
			reversedTail[len(tail)-1-i] = oc
		}
		merged := make(Path, 0, len(existing)+len(reversedTail))
		merged = append(merged, reversedTail...)
		merged = append(merged, existing...)
		store.Set(rootKey, merged)
	}

	return nil
}

// intern looks up name in the registry, reporting a name absent from an
// already-locked registry as an *UnknownContigError rather than the
// *LockedError Intern itself raises: once the contig FASTA has locked the
// registry, a path element the registry has never seen is a path
// referencing an unknown contig, not an attempt to register a new one.
func (p *PathParser) intern(name string) (ContigKey, error) {
	key, err := p.Registry.Intern(name)
	if err == nil {
		return key, nil
	}
	if _, locked := err.(*LockedError); locked {
		return 0, &UnknownContigError{Name: name}
	}
	return 0, err
}

// splitSign peels the trailing '+'/'-' orientation marker off a token.
func splitSign(tok string) (name string, reverse bool, err error) {
	if len(tok) < 2 {
		return "", false, &signError{tok}
	}
	sign := tok[len(tok)-1]
	switch sign {
	case '+':
		return tok[:len(tok)-1], false, nil
	case '-':
		return tok[:len(tok)-1], true, nil
	default:
		return "", false, &signError{tok}
	}
}

type signError struct{ tok string }

func (e *signError) Error() string {
	return "element `" + e.tok + "` is missing a trailing '+' or '-' orientation sign"
}
