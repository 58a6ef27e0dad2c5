package emit

import "github.com/willabides/yamltmpl/internal/yamlh"

// Event constructors, kept from the teacher's apic.go almost verbatim: they
// are pure builders of the low-level event vocabulary, independent of
// whatever produces the values being emitted.

func streamStartEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.STREAM_START_EVENT, Encoding: yamlh.UTF8_ENCODING}
}

func streamEndEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.STREAM_END_EVENT}
}

func documentStartEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.DOCUMENT_START_EVENT, Implicit: true}
}

func documentEndEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.DOCUMENT_END_EVENT, Implicit: true}
}

func scalarEvent(tag, value string, style yamlh.YamlScalarStyle) *yamlh.Event {
	implicit := tag == ""
	return &yamlh.Event{
		Type:            yamlh.SCALAR_EVENT,
		Tag:             []byte(tag),
		Value:           []byte(value),
		Implicit:        implicit,
		Quoted_implicit: implicit,
		Style:           yamlh.YamlStyle(style),
	}
}

func sequenceStartEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.SEQUENCE_START_EVENT, Implicit: true, Style: yamlh.YamlStyle(yamlh.BLOCK_SEQUENCE_STYLE)}
}

func sequenceEndEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.SEQUENCE_END_EVENT}
}

func mappingStartEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.MAPPING_START_EVENT, Implicit: true, Style: yamlh.YamlStyle(yamlh.BLOCK_MAPPING_STYLE)}
}

func mappingEndEvent() *yamlh.Event {
	return &yamlh.Event{Type: yamlh.MAPPING_END_EVENT}
}
