package value

import (
	"bytes"
	"fmt"
	"io"

	"github.com/willabides/yamltmpl/internal/parserc"
	"github.com/willabides/yamltmpl/internal/resolve"
	"github.com/willabides/yamltmpl/internal/yamlh"
	"github.com/willabides/yamltmpl/source"
)

// decoder drives a libyaml-derived event stream (internal/parserc) into
// Value trees, rejecting aliases and tagged plain scalars exactly as the
// template parser does (see package template) — this is the same
// event-driven shape, one layer below: the target here is the closed
// Value union rather than an annotated template tree, so there is no
// segment-splitting and no Statement parsing.
type decoder struct {
	filename string
	p        *parserc.YamlParser
	event    *yamlh.Event
	have     bool
}

func newDecoder(filename string, r io.Reader) *decoder {
	return &decoder{filename: filename, p: parserc.New(r)}
}

func (d *decoder) pos(m yamlh.Position) source.Pos {
	return source.Pos{Index: m.Index, Line: m.Line + 1, Column: m.Column + 1}
}

func (d *decoder) spanOf(ev *yamlh.Event) source.Span {
	return source.Span{Filename: d.filename, Start: d.pos(ev.Start_mark), End: d.pos(ev.End_mark)}
}

func (d *decoder) peek() (*yamlh.Event, error) {
	if d.have {
		return d.event, nil
	}
	ev, err := parserc.Parse(d.p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.filename, err)
	}
	d.event = ev
	d.have = true
	return ev, nil
}

func (d *decoder) advance() {
	d.have = false
}

func (d *decoder) expect(t yamlh.EventType) (*yamlh.Event, error) {
	ev, err := d.peek()
	if err != nil {
		return nil, err
	}
	if ev.Type != t {
		return nil, source.Errorf(d.spanOf(ev), "expected %s but found %s", t, ev.Type)
	}
	d.advance()
	return ev, nil
}

// Decode parses data as a single YAML document and converts it to a Value.
// An empty stream decodes to Null (the rule used for an absent/empty
// config document and for --argyaml). More than one document is an error.
func Decode(filename string, data []byte) (Value, error) {
	d := newDecoder(filename, bytes.NewReader(data))
	if _, err := d.expect(yamlh.STREAM_START_EVENT); err != nil {
		return Value{}, err
	}
	ev, err := d.peek()
	if err != nil {
		return Value{}, err
	}
	if ev.Type == yamlh.STREAM_END_EVENT {
		return NewNull(), nil
	}
	v, err := d.document()
	if err != nil {
		return Value{}, err
	}
	ev, err = d.peek()
	if err != nil {
		return Value{}, err
	}
	if ev.Type != yamlh.STREAM_END_EVENT {
		return Value{}, source.Errorf(d.spanOf(ev), "expected a single document but found more than one")
	}
	return v, nil
}

func (d *decoder) document() (Value, error) {
	if _, err := d.expect(yamlh.DOCUMENT_START_EVENT); err != nil {
		return Value{}, err
	}
	v, err := d.node()
	if err != nil {
		return Value{}, err
	}
	if _, err := d.expect(yamlh.DOCUMENT_END_EVENT); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (d *decoder) node() (Value, error) {
	ev, err := d.peek()
	if err != nil {
		return Value{}, err
	}
	switch ev.Type {
	case yamlh.SCALAR_EVENT:
		return d.scalar()
	case yamlh.SEQUENCE_START_EVENT:
		return d.sequence()
	case yamlh.MAPPING_START_EVENT:
		return d.mapping()
	case yamlh.ALIAS_EVENT:
		return Value{}, source.Errorf(d.spanOf(ev), "YAML aliases are not supported")
	default:
		return Value{}, source.Errorf(d.spanOf(ev), "unexpected %s", ev.Type)
	}
}

func (d *decoder) scalar() (Value, error) {
	ev, err := d.peek()
	if err != nil {
		return Value{}, err
	}
	plain := ev.Scalar_style() == yamlh.PLAIN_SCALAR_STYLE || ev.Scalar_style() == yamlh.ANY_SCALAR_STYLE
	tag := string(ev.Tag)
	text := string(ev.Value)
	if tag != "" && !plain {
		// Non-plain scalars carrying an explicit tag are accepted as plain
		// strings (tags ignored) — see the template package's scalar parsing for the identical
		// rule and its rationale.
		d.advance()
		return NewString(text), nil
	}
	if tag != "" && plain {
		return Value{}, source.Errorf(d.spanOf(ev), "tagged plain scalars are not supported: %s", tag)
	}
	d.advance()
	return resolvePlainScalar(text), nil
}

// resolvePlainScalar classifies an untagged scalar's text into the
// Value kind implied by the YAML core schema, exactly as
// internal/resolve.Resolve does for the teacher's decoder — folding
// Timestamp/Binary/Merge (which this module's closed Value union has no
// variant for) into String.
func resolvePlainScalar(text string) Value {
	tag, resolved, err := resolve.Resolve("", text)
	if err != nil {
		return NewString(text)
	}
	switch tag {
	case resolve.BoolTag:
		return NewBool(resolved.(bool))
	case resolve.NullTag:
		return NewNull()
	case resolve.IntTag:
		switch n := resolved.(type) {
		case int:
			return NewInteger(int64(n))
		case int64:
			return NewInteger(n)
		case uint64:
			if n <= 1<<63-1 {
				return NewInteger(int64(n))
			}
			return NewReal(text)
		default:
			return NewString(text)
		}
	case resolve.FloatTag:
		return NewReal(text)
	default:
		return NewString(text)
	}
}

func (d *decoder) sequence() (Value, error) {
	if _, err := d.expect(yamlh.SEQUENCE_START_EVENT); err != nil {
		return Value{}, err
	}
	var items []Value
	for {
		ev, err := d.peek()
		if err != nil {
			return Value{}, err
		}
		if ev.Type == yamlh.SEQUENCE_END_EVENT {
			d.advance()
			return NewArray(items), nil
		}
		item, err := d.node()
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
}

func (d *decoder) mapping() (Value, error) {
	if _, err := d.expect(yamlh.MAPPING_START_EVENT); err != nil {
		return Value{}, err
	}
	b := NewBuilder()
	for {
		ev, err := d.peek()
		if err != nil {
			return Value{}, err
		}
		if ev.Type == yamlh.MAPPING_END_EVENT {
			d.advance()
			return b.Build(), nil
		}
		k, err := d.node()
		if err != nil {
			return Value{}, err
		}
		v, err := d.node()
		if err != nil {
			return Value{}, err
		}
		b.Insert(k, v)
	}
}
