package interp

import (
	"strconv"

	"github.com/willabides/yamltmpl/exprast"
	"github.com/willabides/yamltmpl/source"
	"github.com/willabides/yamltmpl/value"
)

// Variables is a single scope frame: a binding of names to values.
type Variables map[exprast.VarName]value.Value

type interpreter struct {
	config value.Value
	scopes []Variables
}

func (it *interpreter) pushScope(v Variables) { it.scopes = append(it.scopes, v) }

func (it *interpreter) popScope() { it.scopes = it.scopes[:len(it.scopes)-1] }

// lookup walks the scope stack innermost-first (SPEC_FULL.md §4.4.8).
func (it *interpreter) lookup(name exprast.VarName) (value.Value, bool) {
	for i := len(it.scopes) - 1; i >= 0; i-- {
		if v, ok := it.scopes[i][name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// evalExpr evaluates an expression to a NodeValue. Only Yaml, Inline,
// and Drop ever arise from an Expr (For only arises from a ForStmt via
// evalScalar).
func (it *interpreter) evalExpr(e *exprast.Expr) (NodeValue, error) {
	switch e.Kind {
	case exprast.Str:
		return NodeValue{Kind: Yaml, Span: e.Span, Value: value.NewString(e.Text)}, nil
	case exprast.Int:
		return NodeValue{Kind: Yaml, Span: e.Span, Value: value.NewInteger(e.IntVal)}, nil
	case exprast.Real:
		return NodeValue{Kind: Yaml, Span: e.Span, Value: value.NewReal(e.Text)}, nil
	case exprast.True:
		return NodeValue{Kind: Yaml, Span: e.Span, Value: value.NewBool(true)}, nil
	case exprast.False:
		return NodeValue{Kind: Yaml, Span: e.Span, Value: value.NewBool(false)}, nil
	case exprast.Inline:
		return NodeValue{Kind: Inline, Span: e.Span}, nil
	case exprast.Drop:
		return NodeValue{Kind: Drop, Span: e.Span}, nil
	case exprast.QueryExpr:
		return it.evalQuery(e.Query)
	case exprast.Eq, exprast.Ne:
		left, err := it.evalExpr(e.Left)
		if err != nil {
			return NodeValue{}, err
		}
		right, err := it.evalExpr(e.Right)
		if err != nil {
			return NodeValue{}, err
		}
		eq := nodeValueEqual(left, right)
		if e.Kind == exprast.Ne {
			eq = !eq
		}
		return NodeValue{Kind: Yaml, Span: e.Span, Value: value.NewBool(eq)}, nil
	default:
		return NodeValue{}, source.Errorf(e.Span, "unsupported expression")
	}
}

// nodeValueEqual compares two expression results structurally. Inline
// and Drop are distinct sentinels: equal only to their own kind, so
// `${{ inline == drop }}` is false but `${{ inline == inline }}` is true.
func nodeValueEqual(a, b NodeValue) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == Yaml {
		return value.Equal(a.Value, b.Value)
	}
	return true
}

func (it *interpreter) evalQuery(q *exprast.Query) (NodeValue, error) {
	switch q.Kind {
	case exprast.Root:
		return NodeValue{Kind: Yaml, Span: q.Span, Value: it.config}, nil
	case exprast.Var:
		v, ok := it.lookup(q.Name)
		if !ok {
			return NodeValue{}, source.Errorf(q.Span, "cannot find variable '%s'", q.Name)
		}
		return NodeValue{Kind: Yaml, Span: q.Span, Value: v}, nil
	case exprast.Index:
		objNV, err := it.evalQuery(q.Object)
		if err != nil {
			return NodeValue{}, err
		}
		obj := objNV.Value
		idxNV, err := it.evalExpr(q.Idx)
		if err != nil {
			return NodeValue{}, err
		}
		switch obj.Kind() {
		case value.Hash:
			if idxNV.Kind != Yaml || idxNV.Value.Kind() != value.String {
				return NodeValue{}, source.Errorf(q.Span, "hash index must be a string")
			}
			key := idxNV.Value
			v, ok := obj.Get(key)
			if !ok {
				return NodeValue{}, source.Errorf(q.Span, "index %s not found", debugValue(key))
			}
			return NodeValue{Kind: Yaml, Span: q.Span, Value: v}, nil
		case value.Array:
			if idxNV.Kind != Yaml || idxNV.Value.Kind() != value.Integer {
				return NodeValue{}, source.Errorf(q.Span, "array index must be an integer")
			}
			i := idxNV.Value.AsInteger()
			if i < 0 {
				return NodeValue{}, source.Errorf(q.Span, "array index %d cannot be negative", i)
			}
			items := obj.AsArray()
			if int(i) >= len(items) {
				return NodeValue{}, source.Errorf(q.Span, "index %d is out of bounds", i)
			}
			return NodeValue{Kind: Yaml, Span: q.Span, Value: items[i]}, nil
		default:
			return NodeValue{}, source.Errorf(q.Span, "value type %s is not indexable", obj.Kind().TypeName())
		}
	default:
		return NodeValue{}, source.Errorf(q.Span, "unsupported query")
	}
}

// coerceBool applies the truthiness rule used by `if` (SPEC_FULL.md
// §4.4.7): Null and Boolean(false) are false, every other Value is
// true, and a directive result is an error.
func coerceBool(nv NodeValue) (bool, error) {
	if nv.Kind != Yaml {
		return false, source.Errorf(nv.Span, "cannot coerce %s to a boolean", nv.Kind)
	}
	switch nv.Value.Kind() {
	case value.Null:
		return false, nil
	case value.Boolean:
		return nv.Value.AsBool(), nil
	default:
		return true, nil
	}
}

// debugValue renders a Value for inclusion in a lookup-error message.
func debugValue(v value.Value) string {
	switch v.Kind() {
	case value.String:
		return strconv.Quote(v.AsString())
	case value.Integer:
		return strconv.FormatInt(v.AsInteger(), 10)
	case value.Boolean:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case value.Null:
		return "null"
	default:
		return v.Kind().TypeName()
	}
}
