package template

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/willabides/yamltmpl/exprparse"
	"github.com/willabides/yamltmpl/internal/parserc"
	"github.com/willabides/yamltmpl/internal/yamlh"
	"github.com/willabides/yamltmpl/source"
)

// sentinel marks the start of an embedded expression in scalar text
// (SPEC_FULL.md §6, "Scalar escape for expressions").
const sentinel = "${{"

// Parse reads data (named filename in diagnostics) as a stream of YAML
// documents and builds a FileTemplate, rejecting aliases and tagged
// plain scalars.
func Parse(filename string, data []byte) (*FileTemplate, error) {
	p := &parser{filename: filename, p: parserc.New(bytes.NewReader(data))}
	if _, err := p.expect(yamlh.STREAM_START_EVENT); err != nil {
		return nil, err
	}
	start := p.lastStart
	var docs []DocumentTemplate
	for {
		ev, err := p.peek()
		if err != nil {
			return nil, err
		}
		if ev.Type == yamlh.STREAM_END_EVENT {
			p.advance()
			break
		}
		doc, err := p.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	end := p.lastEnd
	span := source.Span{Filename: filename, Start: start, End: end}
	return &FileTemplate{Span: span, Docs: docs}, nil
}

// parser drives internal/parserc's event stream with a one-event
// lookahead, the same peek/advance/expect shape as value.decoder and
// internal/parserc itself.
type parser struct {
	filename  string
	p         *parserc.YamlParser
	event     *yamlh.Event
	have      bool
	lastStart source.Pos
	lastEnd   source.Pos
}

func (p *parser) pos(m yamlh.Position) source.Pos {
	return source.Pos{Index: m.Index, Line: m.Line + 1, Column: m.Column + 1}
}

func (p *parser) spanOf(ev *yamlh.Event) source.Span {
	return source.Span{Filename: p.filename, Start: p.pos(ev.Start_mark), End: p.pos(ev.End_mark)}
}

func (p *parser) peek() (*yamlh.Event, error) {
	if p.have {
		return p.event, nil
	}
	ev, err := parserc.Parse(p.p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.filename, err)
	}
	p.event = ev
	p.have = true
	return ev, nil
}

func (p *parser) advance() {
	if p.event != nil {
		p.lastStart = p.pos(p.event.Start_mark)
		p.lastEnd = p.pos(p.event.End_mark)
	}
	p.have = false
}

func (p *parser) expect(t yamlh.EventType) (*yamlh.Event, error) {
	ev, err := p.peek()
	if err != nil {
		return nil, err
	}
	if ev.Type != t {
		return nil, source.Errorf(p.spanOf(ev), "expected %s but found %s", t, ev.Type)
	}
	p.advance()
	return ev, nil
}

func (p *parser) document() (DocumentTemplate, error) {
	startEv, err := p.expect(yamlh.DOCUMENT_START_EVENT)
	if err != nil {
		return DocumentTemplate{}, err
	}
	node, err := p.node()
	if err != nil {
		return DocumentTemplate{}, err
	}
	endEv, err := p.expect(yamlh.DOCUMENT_END_EVENT)
	if err != nil {
		return DocumentTemplate{}, err
	}
	span := source.Span{Filename: p.filename, Start: p.pos(startEv.Start_mark), End: p.pos(endEv.End_mark)}
	return DocumentTemplate{Span: span, Node: node}, nil
}

func (p *parser) node() (NodeTemplate, error) {
	ev, err := p.peek()
	if err != nil {
		return NodeTemplate{}, err
	}
	switch ev.Type {
	case yamlh.SCALAR_EVENT:
		return p.scalar()
	case yamlh.SEQUENCE_START_EVENT:
		return p.sequence()
	case yamlh.MAPPING_START_EVENT:
		return p.mapping()
	case yamlh.ALIAS_EVENT:
		return NodeTemplate{}, source.Errorf(p.spanOf(ev), "YAML aliases are not supported")
	default:
		return NodeTemplate{}, source.Errorf(p.spanOf(ev), "unexpected %s", ev.Type)
	}
}

// scalar rejects plain-style scalars bearing a tag; a non-plain scalar
// with a tag is accepted as plain text (tag ignored), per SPEC_FULL.md
// §4.3's parse-time rejection rules.
func (p *parser) scalar() (NodeTemplate, error) {
	ev, err := p.peek()
	if err != nil {
		return NodeTemplate{}, err
	}
	plain := ev.Scalar_style() == yamlh.PLAIN_SCALAR_STYLE || ev.Scalar_style() == yamlh.ANY_SCALAR_STYLE
	tag := string(ev.Tag)
	if tag != "" && plain {
		return NodeTemplate{}, source.Errorf(p.spanOf(ev), "plain scalars with a tag are not supported: %s", tag)
	}
	text := string(ev.Value)
	span := p.spanOf(ev)
	p.advance()
	segs, err := splitSegments(p.filename, span, text)
	if err != nil {
		return NodeTemplate{}, err
	}
	return NodeTemplate{Kind: ScalarNode, Span: span, Scalar: &ScalarTemplate{Span: span, Segments: segs}}, nil
}

// splitSegments scans text left-to-right for the sentinel, splitting it
// into literal and parsed-expression segments (SPEC_FULL.md §4.3,
// "Scalar"). origin is the span of the whole scalar; byte offsets into
// text are translated into absolute positions by walking the text and
// counting newlines, mirroring the line/column bookkeeping exprlex.Lexer
// performs for the expression body itself.
func splitSegments(filename string, origin source.Span, text string) ([]Segment, error) {
	var segs []Segment
	pos := origin.Start
	remaining := text
	for {
		idx := strings.Index(remaining, sentinel)
		if idx < 0 {
			if remaining != "" || len(segs) == 0 {
				segs = append(segs, Segment{
					Kind:    LiteralSegment,
					Span:    source.Span{Filename: filename, Start: pos, End: advancePos(pos, remaining)},
					Literal: remaining,
				})
			}
			return segs, nil
		}
		if idx > 0 {
			lit := remaining[:idx]
			segs = append(segs, Segment{
				Kind:    LiteralSegment,
				Span:    source.Span{Filename: filename, Start: pos, End: advancePos(pos, lit)},
				Literal: lit,
			})
			pos = advancePos(pos, lit)
			remaining = remaining[idx:]
		}
		stmt, consumed, err := exprparse.Parse(filename, pos, []byte(remaining))
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{Kind: ExprSegment, Span: stmt.Span, Expr: stmt})
		pos = advancePos(pos, remaining[:consumed])
		remaining = remaining[consumed:]
	}
}

func advancePos(p source.Pos, s string) source.Pos {
	for _, r := range s {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Index += len(s)
	return p
}

func (p *parser) sequence() (NodeTemplate, error) {
	startEv, err := p.expect(yamlh.SEQUENCE_START_EVENT)
	if err != nil {
		return NodeTemplate{}, err
	}
	var items []NodeTemplate
	for {
		ev, err := p.peek()
		if err != nil {
			return NodeTemplate{}, err
		}
		if ev.Type == yamlh.SEQUENCE_END_EVENT {
			break
		}
		item, err := p.node()
		if err != nil {
			return NodeTemplate{}, err
		}
		items = append(items, item)
	}
	endEv, err := p.expect(yamlh.SEQUENCE_END_EVENT)
	if err != nil {
		return NodeTemplate{}, err
	}
	span := source.Span{Filename: p.filename, Start: p.pos(startEv.Start_mark), End: p.pos(endEv.End_mark)}
	return NodeTemplate{Kind: SequenceNode, Span: span, Sequence: &SequenceTemplate{Span: span, Items: items}}, nil
}

// mapping corrects the recorded span's start to the first key's start:
// the underlying event stream places MappingStart at the ':' of the
// first entry (SPEC_FULL.md §9, "Spans corrected for maps").
func (p *parser) mapping() (NodeTemplate, error) {
	startEv, err := p.expect(yamlh.MAPPING_START_EVENT)
	if err != nil {
		return NodeTemplate{}, err
	}
	spanStart := p.pos(startEv.Start_mark)
	var entries []MapEntry
	first := true
	for {
		ev, err := p.peek()
		if err != nil {
			return NodeTemplate{}, err
		}
		if ev.Type == yamlh.MAPPING_END_EVENT {
			break
		}
		key, err := p.node()
		if err != nil {
			return NodeTemplate{}, err
		}
		if first {
			spanStart = key.Span.Start
			first = false
		}
		val, err := p.node()
		if err != nil {
			return NodeTemplate{}, err
		}
		entries = append(entries, MapEntry{Key: key, Value: val})
	}
	endEv, err := p.expect(yamlh.MAPPING_END_EVENT)
	if err != nil {
		return NodeTemplate{}, err
	}
	span := source.Span{Filename: p.filename, Start: spanStart, End: p.pos(endEv.End_mark)}
	return NodeTemplate{Kind: MapNode, Span: span, Map: &MapTemplate{Span: span, Entries: entries}}, nil
}
