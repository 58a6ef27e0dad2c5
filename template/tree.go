// Package template defines the annotated template tree (SPEC_FULL.md §3,
// "Template tree") and the parser that builds one by layering exprparse
// over the streaming YAML event source (internal/parserc), the same
// event-driven shape value.Decode uses one layer below.
package template

import (
	"github.com/willabides/yamltmpl/exprast"
	"github.com/willabides/yamltmpl/source"
)

// FileTemplate is the parse of one template file: a stream of documents.
type FileTemplate struct {
	Span source.Span
	Docs []DocumentTemplate
}

// DocumentTemplate is a single top-level YAML document.
type DocumentTemplate struct {
	Span source.Span
	Node NodeTemplate
}

// NodeKind discriminates the NodeTemplate sum type.
type NodeKind int

const (
	SequenceNode NodeKind = iota
	MapNode
	ScalarNode
)

// NodeTemplate is a parsed YAML node: a sequence, a map, or a scalar.
type NodeTemplate struct {
	Kind NodeKind
	Span source.Span

	Sequence *SequenceTemplate
	Map      *MapTemplate
	Scalar   *ScalarTemplate
}

// SequenceTemplate is a parsed YAML sequence.
type SequenceTemplate struct {
	Span  source.Span
	Items []NodeTemplate
}

// MapEntry is one key/value pair of a MapTemplate, in input order.
type MapEntry struct {
	Key   NodeTemplate
	Value NodeTemplate
}

// MapTemplate is a parsed YAML mapping.
type MapTemplate struct {
	Span    source.Span
	Entries []MapEntry
}

// SegmentKind discriminates a ScalarTemplate segment.
type SegmentKind int

const (
	LiteralSegment SegmentKind = iota
	ExprSegment
)

// Segment is one piece of a scalar's text: either literal text or a
// parsed "${{ ... }}" expression statement.
type Segment struct {
	Kind    SegmentKind
	Span    source.Span
	Literal string
	Expr    *exprast.Statement
}

// ScalarTemplate is a scalar's text split into literal/expression
// segments (SPEC_FULL.md: "never empty: at least one literal or
// expression segment").
type ScalarTemplate struct {
	Span     source.Span
	Segments []Segment
}
