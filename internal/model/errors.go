package model

import "fmt"

// InputError reports an unusable input path: missing, unreadable, or of a
// file type no registered language claims.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input path %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseError reports syntactically invalid source. It aborts the whole run:
// no report is produced for the offending file.
type ParseError struct {
	Path string
	Line int // 1-based; 0 when the parser gave no location
	Col  int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: syntax error", e.Path, e.Line, e.Col)
	}
	return fmt.Sprintf("%s: syntax error", e.Path)
}

// PersistenceError reports a failure writing a saved report. It is downgraded
// to a warning by the caller; console output already produced stays valid.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving report to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
