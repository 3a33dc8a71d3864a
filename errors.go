/**
 * Filename: errors.go
 * Path: allhic-merge
 */

package allhicmerge

import "fmt"

// ExitCoder is implemented by every error kind this package returns from
// Run() so that cmd/allhic-merge can map it to a process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError signals missing or conflicting command-line arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// ExitCode returns the process exit status for a UsageError.
func (e *UsageError) ExitCode() int { return 2 }

// IOError wraps a failure to open or write a file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("cannot access `%s`: %v", e.Path, e.Err) }

// ExitCode returns the process exit status for an IOError.
func (e *IOError) ExitCode() int { return 3 }

// MalformedPathError signals a path file grammar violation.
type MalformedPathError struct {
	Line   int
	Record string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path record at line %d (%q): %s", e.Line, e.Record, e.Reason)
}

// ExitCode returns the process exit status for a MalformedPathError.
func (e *MalformedPathError) ExitCode() int { return 4 }

// UnknownContigError signals a path referencing a name never seen in the
// contig input. Only raised in FASTA mode.
type UnknownContigError struct {
	Name string
}

func (e *UnknownContigError) Error() string {
	return fmt.Sprintf("path references unknown contig `%s`", e.Name)
}

// ExitCode returns the process exit status for an UnknownContigError.
func (e *UnknownContigError) ExitCode() int { return 5 }

// OverlapViolation signals that the splicer's k-1 window did not match
// between two consecutive contigs.
type OverlapViolation struct {
	LeftName, RightName string
	LeftEnd, RightBegin string
}

func (e *OverlapViolation) Error() string {
	return fmt.Sprintf("overlap mismatch between `%s` and `%s`: tail %q != head %q",
		e.LeftName, e.RightName, e.LeftEnd, e.RightBegin)
}

// ExitCode returns the process exit status for an OverlapViolation.
func (e *OverlapViolation) ExitCode() int { return 6 }

// InconsistentMergeState signals an internal invariant violation, such as a
// winning alignment that does not touch either path boundary.
type InconsistentMergeState struct {
	Message string
}

func (e *InconsistentMergeState) Error() string { return e.Message }

// ExitCode returns the process exit status for an InconsistentMergeState.
func (e *InconsistentMergeState) ExitCode() int { return 7 }

// LockedError signals Intern() was called on a registry already locked.
type LockedError struct {
	Name string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("cannot intern `%s`: registry is locked", e.Name)
}

// ExitCode returns the process exit status for a LockedError.
func (e *LockedError) ExitCode() int { return 8 }

// UnknownKeyError signals Name() was called with a key never allocated.
type UnknownKeyError struct {
	Key ContigKey
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown contig key %d", e.Key)
}

// ExitCode returns the process exit status for an UnknownKeyError.
func (e *UnknownKeyError) ExitCode() int { return 8 }
