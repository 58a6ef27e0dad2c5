// Package source holds the position and span types shared by every stage of
// the pipeline (lexer, expression parser, template parser, interpreter) and
// the Diagnostic error type used to report them.
package source

import "fmt"

// Pos is a single point in a source file. Line and Column are 1-based;
// Index is a 0-based byte offset.
type Pos struct {
	Index  int
	Line   int
	Column int
}

// Span covers a half-open-in-spirit range [Start, End] within a single
// named file. Parent spans must cover every child span (see template tree
// invariants).
type Span struct {
	Filename string
	Start    Pos
	End      Pos
}

// Cover returns the smallest span that contains both s and other. Both
// must share the same Filename; Cover panics otherwise, since spans never
// cross files in this pipeline.
func (s Span) Cover(other Span) Span {
	if s.Filename != other.Filename {
		panic("source: Cover across different files")
	}
	out := s
	if other.Start.Index < out.Start.Index {
		out.Start = other.Start
	}
	if other.End.Index > out.End.Index {
		out.End = other.End
	}
	return out
}

// Diagnostic is an error carrying the span of the construct that caused it.
// Its Error() string is exactly "<file>:<line>:<col> <message>" per the
// external diagnostics format.
type Diagnostic struct {
	Span    Span
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d %s", d.Span.Filename, d.Span.Start.Line, d.Span.Start.Column, d.Message)
}

// Errorf builds a *Diagnostic at span with a formatted message.
func Errorf(span Span, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Span: span, Message: fmt.Sprintf(format, args...)}
}
