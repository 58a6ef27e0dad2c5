package interp

import (
	"strings"

	"github.com/willabides/yamltmpl/exprast"
	"github.com/willabides/yamltmpl/source"
	"github.com/willabides/yamltmpl/template"
	"github.com/willabides/yamltmpl/value"
)

// Run interprets every document in ft against config and the initial
// variable bindings vars (typically the command line's --arg/--argyaml
// values), returning the output documents in order.
func Run(ft *template.FileTemplate, config value.Value, vars Variables) ([]value.Value, error) {
	it := &interpreter{config: config, scopes: []Variables{vars}}
	var docs []value.Value
	for _, doc := range ft.Docs {
		nv, err := it.evalNode(doc.Node)
		if err != nil {
			return nil, err
		}
		switch nv.Kind {
		case Yaml, InlineYaml:
			docs = append(docs, nv.Value)
		case Nothing:
			// contributes no document
		default:
			return nil, source.Errorf(nv.Span, "directive %s can only be used as a map key", nv.Kind)
		}
	}
	return docs, nil
}

func (it *interpreter) evalNode(nt template.NodeTemplate) (NodeValue, error) {
	switch nt.Kind {
	case template.SequenceNode:
		return it.evalSequence(nt)
	case template.MapNode:
		return it.evalMap(nt)
	case template.ScalarNode:
		return it.evalScalar(nt)
	default:
		return NodeValue{}, source.Errorf(nt.Span, "unsupported template node")
	}
}

// evalSequence implements SPEC_FULL.md §4.4.2.
func (it *interpreter) evalSequence(nt template.NodeTemplate) (NodeValue, error) {
	var out []value.Value
	for _, item := range nt.Sequence.Items {
		nv, err := it.evalNode(item)
		if err != nil {
			return NodeValue{}, err
		}
		nv, err = expectValue(nv)
		if err != nil {
			return NodeValue{}, err
		}
		switch nv.Kind {
		case Nothing:
			continue
		case Yaml:
			out = append(out, nv.Value)
		case InlineYaml:
			if nv.Value.Kind() != value.Array {
				if nv.Value.Kind() == value.Hash {
					return NodeValue{}, source.Errorf(nv.Span, "cannot inline maps into lists")
				}
				return NodeValue{}, source.Errorf(nv.Span, "cannot inline values into lists")
			}
			out = append(out, nv.Value.AsArray()...)
		}
	}
	return NodeValue{Kind: Yaml, Span: nt.Span, Value: value.NewArray(out)}, nil
}

// evalMap implements SPEC_FULL.md §4.4.3.
func (it *interpreter) evalMap(nt template.NodeTemplate) (NodeValue, error) {
	entries := nt.Map.Entries
	single := len(entries) == 1
	b := value.NewBuilder()

	for _, entry := range entries {
		keyNV, err := it.evalNode(entry.Key)
		if err != nil {
			return NodeValue{}, err
		}

		switch keyNV.Kind {
		case Yaml:
			valNV, err := it.evalNode(entry.Value)
			if err != nil {
				return NodeValue{}, err
			}
			valNV, err = expectValue(valNV)
			if err != nil {
				return NodeValue{}, err
			}
			var v value.Value
			switch valNV.Kind {
			case Nothing:
				v = value.NewNull()
			default: // Yaml, InlineYaml
				v = valNV.Value
			}
			b.Insert(keyNV.Value, v)

		case Inline:
			valNV, err := it.evalNode(entry.Value)
			if err != nil {
				return NodeValue{}, err
			}
			valNV, err = expectValue(valNV)
			if err != nil {
				return NodeValue{}, err
			}
			if single {
				return upgradeSingleton(valNV, nt.Span), nil
			}
			if err := mergeInlineInto(b, valNV); err != nil {
				return NodeValue{}, err
			}

		case Drop:
			if single {
				return NodeValue{Kind: Nothing, Span: nt.Span}, nil
			}
			// entry vanishes; its value is never evaluated

		case For:
			result, err := it.runFor(keyNV.Bindings, keyNV.Iterable, keyNV.Span, entry.Value, keyNV.Span)
			if err != nil {
				return NodeValue{}, err
			}
			if single {
				return upgradeSingleton(result, nt.Span), nil
			}
			if err := mergeInlineInto(b, result); err != nil {
				return NodeValue{}, err
			}

		case Nothing:
			// key contributed nothing; skip the entry entirely

		default:
			return NodeValue{}, source.Errorf(keyNV.Span, "directive %s can only be used as a map key", keyNV.Kind)
		}
	}

	return NodeValue{Kind: Yaml, Span: nt.Span, Value: b.Build()}, nil
}

// upgradeSingleton implements the single-entry collapse rule shared by
// `inline` and `for`: the evaluated child value replaces the enclosing
// map, with a Yaml result upgraded to InlineYaml so the grandparent
// container can splice it in turn.
func upgradeSingleton(nv NodeValue, span source.Span) NodeValue {
	switch nv.Kind {
	case Yaml:
		return NodeValue{Kind: InlineYaml, Span: span, Value: nv.Value}
	case InlineYaml:
		return NodeValue{Kind: InlineYaml, Span: span, Value: nv.Value}
	default: // Nothing
		return NodeValue{Kind: Nothing, Span: span}
	}
}

// mergeInlineInto merges nv's entries into b in place, preserving order
// and letting later keys override earlier ones (the non-singleton
// `inline`/`for` case).
func mergeInlineInto(b *value.Builder, nv NodeValue) error {
	if nv.Kind == Nothing {
		return nil
	}
	v := nv.Value
	if v.Kind() != value.Hash {
		if v.Kind() == value.Array {
			return source.Errorf(nv.Span, "cannot inline lists into maps")
		}
		return source.Errorf(nv.Span, "cannot inline values into maps")
	}
	for _, e := range v.Entries() {
		b.Insert(e.Key, e.Value)
	}
	return nil
}

// evalScalar implements SPEC_FULL.md §4.4.4.
func (it *interpreter) evalScalar(nt template.NodeTemplate) (NodeValue, error) {
	segs := nt.Scalar.Segments
	if len(segs) == 1 {
		return it.evalSingleSegment(segs[0], nt.Span)
	}
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Kind == template.LiteralSegment {
			sb.WriteString(seg.Literal)
			continue
		}
		stmt := seg.Expr
		if stmt.Kind != exprast.ExprStmt {
			return NodeValue{}, source.Errorf(stmt.Span, "directive %s cannot be concatenated into a string", stmt.Kind)
		}
		nv, err := it.evalExpr(stmt.Expr)
		if err != nil {
			return NodeValue{}, err
		}
		if nv.Kind != Yaml || nv.Value.Kind() != value.String {
			typ := "directive"
			if nv.Kind == Yaml {
				typ = nv.Value.Kind().TypeName()
			}
			return NodeValue{}, source.Errorf(seg.Span, "cannot concatenate value of type %s into a string", typ)
		}
		sb.WriteString(nv.Value.AsString())
	}
	return NodeValue{Kind: Yaml, Span: nt.Span, Value: value.NewString(sb.String())}, nil
}

func (it *interpreter) evalSingleSegment(seg template.Segment, span source.Span) (NodeValue, error) {
	if seg.Kind == template.LiteralSegment {
		return NodeValue{Kind: Yaml, Span: span, Value: value.NewString(seg.Literal)}, nil
	}
	stmt := seg.Expr
	switch stmt.Kind {
	case exprast.ExprStmt:
		nv, err := it.evalExpr(stmt.Expr)
		if err != nil {
			return NodeValue{}, err
		}
		nv.Span = span
		return nv, nil
	case exprast.IfStmt:
		cond, err := it.evalExpr(stmt.Condition)
		if err != nil {
			return NodeValue{}, err
		}
		b, err := coerceBool(cond)
		if err != nil {
			return NodeValue{}, err
		}
		if b {
			return NodeValue{Kind: Inline, Span: span}, nil
		}
		return NodeValue{Kind: Drop, Span: span}, nil
	case exprast.ForStmt:
		iterNV, err := it.evalExpr(stmt.Iterable)
		if err != nil {
			return NodeValue{}, err
		}
		if iterNV.Kind != Yaml {
			return NodeValue{}, source.Errorf(iterNV.Span, "a for-loop's iterable cannot be a directive")
		}
		return NodeValue{Kind: For, Span: span, Bindings: stmt.Bindings, Iterable: iterNV.Value}, nil
	default:
		return NodeValue{}, source.Errorf(stmt.Span, "unsupported statement")
	}
}

// runFor implements SPEC_FULL.md §4.4.5.
func (it *interpreter) runFor(bindings []exprast.VarName, iterVal value.Value, iterSpan source.Span, body template.NodeTemplate, forSpan source.Span) (NodeValue, error) {
	var frames []Variables
	switch iterVal.Kind() {
	case value.Array:
		if len(bindings) != 1 {
			return NodeValue{}, source.Errorf(forSpan, "for loop over an array requires 1 binding, found %d", len(bindings))
		}
		for _, item := range iterVal.AsArray() {
			frames = append(frames, Variables{bindings[0]: item})
		}
	case value.Hash:
		if len(bindings) != 2 {
			return NodeValue{}, source.Errorf(forSpan, "for loop over a map requires 2 bindings, found %d", len(bindings))
		}
		for _, e := range iterVal.Entries() {
			frames = append(frames, Variables{bindings[0]: e.Key, bindings[1]: e.Value})
		}
	default:
		return NodeValue{}, source.Errorf(iterSpan, "value type %s is not iterable", iterVal.Kind().TypeName())
	}

	const (
		shapeUnknown = iota
		shapeArray
		shapeHash
	)
	shape := shapeUnknown
	any := false
	var accumArray []value.Value
	accumHash := value.NewBuilder()

	for _, frame := range frames {
		it.pushScope(frame)
		nv, err := it.evalNode(body)
		it.popScope()
		if err != nil {
			return NodeValue{}, err
		}
		nv, err = expectValue(nv)
		if err != nil {
			return NodeValue{}, err
		}
		if nv.Kind == Nothing {
			continue
		}
		v := nv.Value
		switch v.Kind() {
		case value.Array:
			if shape == shapeUnknown {
				shape = shapeArray
			} else if shape != shapeArray {
				return NodeValue{}, source.Errorf(nv.Span, "for loop child item must be either an array or a map")
			}
			accumArray = append(accumArray, v.AsArray()...)
			any = true
		case value.Hash:
			if shape == shapeUnknown {
				shape = shapeHash
			} else if shape != shapeHash {
				return NodeValue{}, source.Errorf(nv.Span, "for loop child item must be either an array or a map")
			}
			for _, e := range v.Entries() {
				accumHash.Insert(e.Key, e.Value)
			}
			any = true
		default:
			return NodeValue{}, source.Errorf(nv.Span, "for loop child item must be either an array or a map")
		}
	}

	if !any {
		return NodeValue{Kind: Nothing, Span: forSpan}, nil
	}
	if shape == shapeArray {
		return NodeValue{Kind: Yaml, Span: forSpan, Value: value.NewArray(accumArray)}, nil
	}
	return NodeValue{Kind: Yaml, Span: forSpan, Value: accumHash.Build()}, nil
}
