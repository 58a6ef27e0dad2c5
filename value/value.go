// Package value implements the runtime YAML value model: an immutable,
// structurally-shared tagged union over {Real, Integer, String, Boolean,
// Null, Array, Hash}. Values are built once (by decoding a document or by
// interpreting a template) and never mutated afterward; Array and Hash
// bodies are plain Go slices/maps shared by copy of the header only, which
// is safe precisely because nothing ever mutates through an existing
// Value.
package value

import (
	"fmt"
	"strings"
)

// Kind identifies which variant of the union a Value holds.
type Kind int

const (
	Real Kind = iota
	Integer
	String
	Boolean
	Null
	Array
	Hash
)

// TypeName returns the lowercase name used in diagnostics (e.g. "value type
// hash is not indexable").
func (k Kind) TypeName() string {
	switch k {
	case Real:
		return "real"
	case Integer:
		return "integer"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Array:
		return "array"
	case Hash:
		return "hash"
	default:
		return "unknown"
	}
}

// Value is the immutable runtime representation of a YAML value.
// The zero Value has Kind Real and empty text; use NewNull for Null.
type Value struct {
	kind Kind
	text string // Real (decimal source text), String (contents)
	i    int64  // Integer
	b    bool   // Boolean
	arr  []Value
	hash *hashBody
}

// Entry is a single key/value pair of a Hash, in insertion order.
type Entry struct {
	Key   Value
	Value Value
}

type hashBody struct {
	entries []Entry
	index   map[string]int // structuralKey(entry.Key) -> index into entries
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// NewNull returns the Null value.
func NewNull() Value { return Value{kind: Null} }

// NewBool wraps a boolean.
func NewBool(b bool) Value { return Value{kind: Boolean, b: b} }

// NewInteger wraps a signed 64-bit integer.
func NewInteger(i int64) Value { return Value{kind: Integer, i: i} }

// NewString wraps a string.
func NewString(s string) Value { return Value{kind: String, text: s} }

// NewReal wraps the source text of a real-number literal, unparsed.
func NewReal(text string) Value { return Value{kind: Real, text: text} }

// NewArray wraps an ordered slice of values. The caller must not mutate
// items after passing it in; NewArray takes ownership of the backing array.
func NewArray(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, arr: items}
}

// NewHash wraps a slice of entries already deduplicated by key (last
// occurrence of a given key wins, in the position of its first
// occurrence), as produced by a Builder.
func NewHash(entries []Entry) Value {
	b := NewBuilder()
	for _, e := range entries {
		b.Insert(e.Key, e.Value)
	}
	return b.Build()
}

// AsBool returns the wrapped boolean; only valid when Kind() == Boolean.
func (v Value) AsBool() bool { return v.b }

// AsInteger returns the wrapped int64; only valid when Kind() == Integer.
func (v Value) AsInteger() int64 { return v.i }

// AsString returns the wrapped text; only valid when Kind() is String or Real.
func (v Value) AsString() string { return v.text }

// AsArray returns the wrapped items; only valid when Kind() == Array.
func (v Value) AsArray() []Value { return v.arr }

// Len returns the number of items/entries; only valid for Array or Hash.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Hash:
		return len(v.hash.entries)
	default:
		return 0
	}
}

// Entries returns the Hash's entries in insertion order; only valid when
// Kind() == Hash.
func (v Value) Entries() []Entry {
	if v.kind != Hash {
		return nil
	}
	return v.hash.entries
}

// Get looks up key in a Hash by structural equality, returning (value, true)
// on a hit.
func (v Value) Get(key Value) (Value, bool) {
	if v.kind != Hash {
		return Value{}, false
	}
	idx, ok := v.hash.index[structuralKey(key)]
	if !ok {
		return Value{}, false
	}
	return v.hash.entries[idx].Value, true
}

// Builder incrementally constructs a Hash value, overwriting the value of a
// repeated key in place (preserving the position of its first occurrence),
// which is the rule used by both map-literal evaluation and `for`/`inline`
// merging (see the interpreter).
type Builder struct {
	entries []Entry
	index   map[string]int
}

// NewBuilder returns an empty hash Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Insert adds key/val, overwriting the value of an existing key in place.
func (b *Builder) Insert(key, val Value) {
	k := structuralKey(key)
	if idx, ok := b.index[k]; ok {
		b.entries[idx].Value = val
		return
	}
	b.index[k] = len(b.entries)
	b.entries = append(b.entries, Entry{Key: key, Value: val})
}

// Len reports the number of distinct keys inserted so far.
func (b *Builder) Len() int { return len(b.entries) }

// Build finalizes the Hash value.
func (b *Builder) Build() Value {
	return Value{kind: Hash, hash: &hashBody{entries: b.entries, index: b.index}}
}

// Equal reports structural equality: same variant and, recursively, the
// same contents. Array comparison is order-sensitive; Hash comparison is
// not (two hashes with the same key/value pairs in different insertion
// order are equal). Real values compare by their source text, since no
// arithmetic is defined on them.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Boolean:
		return a.b == b.b
	case Integer:
		return a.i == b.i
	case Real, String:
		return a.text == b.text
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Hash:
		if len(a.hash.entries) != len(b.hash.entries) {
			return false
		}
		for _, ea := range a.hash.entries {
			bv, ok := b.Get(ea.Key)
			if !ok || !Equal(ea.Value, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// structuralKey renders v into a string that's unique per distinct value
// (up to Kind+contents), suitable as a Go map key for Hash's key index.
// It is an internal hashing scheme, not a YAML representation.
func structuralKey(v Value) string {
	var sb strings.Builder
	writeStructuralKey(&sb, v)
	return sb.String()
}

func writeStructuralKey(sb *strings.Builder, v Value) {
	switch v.kind {
	case Null:
		sb.WriteString("n:")
	case Boolean:
		fmt.Fprintf(sb, "b:%v;", v.b)
	case Integer:
		fmt.Fprintf(sb, "i:%d;", v.i)
	case Real:
		fmt.Fprintf(sb, "r:%s;", v.text)
	case String:
		fmt.Fprintf(sb, "s:%d:%s;", len(v.text), v.text)
	case Array:
		sb.WriteString("a:[")
		for _, item := range v.arr {
			writeStructuralKey(sb, item)
		}
		sb.WriteString("];")
	case Hash:
		sb.WriteString("h:{")
		for _, e := range v.hash.entries {
			writeStructuralKey(sb, e.Key)
			sb.WriteString("=")
			writeStructuralKey(sb, e.Value)
			sb.WriteString(",")
		}
		sb.WriteString("};")
	}
}
