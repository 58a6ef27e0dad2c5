// Package interp is the recursive tree-walking interpreter over a
// template.FileTemplate (SPEC_FULL.md §4.4). Its structure — a small
// set of mutually-recursive eval* methods threading error returns,
// backed by a scope stack pushed/popped around loop bodies — follows
// the same shape as robfig/soy's execute.go tree walker
// (other_examples/91df43d7_robfig-soy__parse.go.go shows the sibling
// parse half of that same package).
package interp

import (
	"github.com/willabides/yamltmpl/exprast"
	"github.com/willabides/yamltmpl/source"
	"github.com/willabides/yamltmpl/value"
)

// Kind discriminates the NodeValue sum type (SPEC_FULL.md §4.4).
type Kind int

const (
	Yaml Kind = iota
	InlineYaml
	Inline
	Drop
	Nothing
	For
)

func (k Kind) String() string {
	switch k {
	case Yaml:
		return "yaml value"
	case InlineYaml:
		return "inline yaml value"
	case Inline:
		return "inline"
	case Drop:
		return "drop"
	case Nothing:
		return "nothing"
	case For:
		return "for"
	default:
		return "unknown"
	}
}

// NodeValue is the result of evaluating one template node. It tells the
// parent how to place the child: as an ordinary value, spliced in, or
// dropped entirely. Inline/Drop/For are directives and are only legal
// as a map-entry key; seeing one anywhere else is an error produced by
// expectValue.
type NodeValue struct {
	Kind Kind
	Span source.Span

	Value value.Value // Yaml, InlineYaml

	Bindings []exprast.VarName // For
	Iterable value.Value       // For
}

// expectValue narrows nv to {Yaml, InlineYaml, Nothing}, the set legal
// anywhere other than a map-entry key.
func expectValue(nv NodeValue) (NodeValue, error) {
	switch nv.Kind {
	case Yaml, InlineYaml, Nothing:
		return nv, nil
	default:
		return NodeValue{}, source.Errorf(nv.Span, "directive %s can only be used as a map key", nv.Kind)
	}
}
