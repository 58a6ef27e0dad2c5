// Package emit serializes interpreted Values into block-style YAML text,
// the "emitter adapter" collaborator of SPEC_FULL.md §4.7. It drives the
// teacher's low-level event emitter (internal/emitter) the same way its own
// Encoder did, but walks a closed value.Value tree instead of an arbitrary
// Go value via reflection — there is no struct/map/slice introspection
// here, only a switch over value.Kind.
package emit

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/willabides/yamltmpl/internal/emitter"
	"github.com/willabides/yamltmpl/internal/resolve"
	"github.com/willabides/yamltmpl/internal/yamlh"
	"github.com/willabides/yamltmpl/value"
)

// Documents serializes docs as a YAML stream, separating the second and
// later documents with "---" (the first is left bare).
func Documents(docs []value.Value) ([]byte, error) {
	var buf bytes.Buffer
	e := &encoder{emitter: emitter.New(&buf)}
	if err := e.emitter.Emit(streamStartEvent(), false); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if err := e.emitter.Emit(documentStartEvent(), false); err != nil {
			return nil, err
		}
		if err := e.encodeValue(doc); err != nil {
			return nil, err
		}
		if err := e.emitter.Emit(documentEndEvent(), false); err != nil {
			return nil, err
		}
	}
	if err := e.emitter.Emit(streamEndEvent(), true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write is a convenience wrapper around Documents for callers that already
// hold an io.Writer.
func Write(w io.Writer, docs []value.Value) error {
	out, err := Documents(docs)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

type encoder struct {
	emitter *emitter.Emitter
}

func (e *encoder) encodeValue(v value.Value) error {
	switch v.Kind() {
	case value.Null:
		return e.emitScalar("null", "")
	case value.Boolean:
		s := "false"
		if v.AsBool() {
			s = "true"
		}
		return e.emitScalar(s, "")
	case value.Integer:
		return e.emitScalar(strconv.FormatInt(v.AsInteger(), 10), "")
	case value.Real:
		return e.emitScalar(v.AsString(), "")
	case value.String:
		return e.encodeString(v.AsString())
	case value.Array:
		return e.encodeArray(v)
	case value.Hash:
		return e.encodeHash(v)
	default:
		return fmt.Errorf("emit: unknown value kind %d", v.Kind())
	}
}

func (e *encoder) encodeArray(v value.Value) error {
	if err := e.emitter.Emit(sequenceStartEvent(), false); err != nil {
		return err
	}
	for _, item := range v.AsArray() {
		if err := e.encodeValue(item); err != nil {
			return err
		}
	}
	return e.emitter.Emit(sequenceEndEvent(), false)
}

func (e *encoder) encodeHash(v value.Value) error {
	if err := e.emitter.Emit(mappingStartEvent(), false); err != nil {
		return err
	}
	for _, entry := range v.Entries() {
		if err := e.encodeValue(entry.Key); err != nil {
			return err
		}
		if err := e.encodeValue(entry.Value); err != nil {
			return err
		}
	}
	return e.emitter.Emit(mappingEndEvent(), false)
}

// base60float and isOldBool are kept from the teacher's encode.go: they
// catch strings that would resolve to a different implicit kind on
// re-parse (YAML 1.1's base-60 floats and y/yes/on/off-style bools) and force
// those to be quoted even though they'd otherwise round-trip as plain
// strings.
var base60float = regexp.MustCompile(`^[-+]?[0-9][0-9_]*(?::[0-5]?[0-9])+(?:\.[0-9_]*)?$`)

func isBase60Float(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if !(c == '+' || c == '-' || c >= '0' && c <= '9') || strings.IndexByte(s, ':') < 0 {
		return false
	}
	return base60float.MatchString(s)
}

func isOldBool(s string) bool {
	switch s {
	case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON",
		"n", "N", "no", "No", "NO", "off", "Off", "OFF":
		return true
	default:
		return false
	}
}

// encodeString chooses a plain vs. quoted scalar style the same way the
// teacher's Encoder.encodeString does: a string is only safe to emit
// unquoted if re-resolving it as a plain scalar would come back out as
// !!str (and not one of the YAML-1.1 forms isBase60Float/isOldBool still
// guard against for compatibility).
func (e *encoder) encodeString(s string) error {
	if !utf8.ValidString(s) {
		return e.emitScalar(resolve.EncodeBase64(s), resolve.BinaryTag)
	}
	var style yamlh.YamlScalarStyle
	switch {
	case strings.Contains(s, "\n"):
		style = yamlh.LITERAL_SCALAR_STYLE
	default:
		rtag, _, err := resolve.Resolve("", s)
		if err != nil {
			return err
		}
		canUsePlain := rtag == resolve.StrTag && !isBase60Float(s) && !isOldBool(s)
		if canUsePlain {
			style = yamlh.PLAIN_SCALAR_STYLE
		} else {
			style = yamlh.DOUBLE_QUOTED_SCALAR_STYLE
		}
	}
	return e.emit(scalarEvent("", s, style))
}

func (e *encoder) emitScalar(text, tag string) error {
	style := yamlh.PLAIN_SCALAR_STYLE
	if tag != "" {
		tag = resolve.LongTag(tag)
	}
	return e.emit(scalarEvent(tag, text, style))
}

func (e *encoder) emit(ev *yamlh.Event) error {
	return e.emitter.Emit(ev, false)
}
