package main

import (
	"fmt"
	"strings"
)

// argBinding is one `--arg`/`--argyaml` occurrence, recorded in the order
// pflag encountered it on the command line.
type argBinding struct {
	Name  string
	Value string
	YAML  bool
}

// argBindings is a pflag.Value shared by the --arg and --argyaml flags.
// Both flags append into the same backing slice, which is how their
// combined left-to-right command-line order (SPEC_FULL.md §4.9) is
// preserved: pflag calls Set on each flag occurrence in the order it
// parses argv, regardless of which of the two flag names produced it.
type argBindings struct {
	items *[]argBinding
	yaml  bool
}

func (a *argBindings) String() string { return "" }

func (a *argBindings) Type() string { return "name=value" }

// Set parses "NAME=VALUE". The spec's external description shows --arg
// taking two separate argv tokens (NAME, then VALUE); this CLI instead
// takes one NAME=VALUE token per occurrence, the idiom used by the rest
// of the retrieval pack's flag-heavy CLIs for repeatable bindings — the
// CLI's exact argv syntax is explicitly out of scope beyond the
// interface in spec.md §6, so this is a deliberate, documented
// simplification (see DESIGN.md).
func (a *argBindings) Set(s string) error {
	name, val, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected NAME=VALUE, got %q", s)
	}
	*a.items = append(*a.items, argBinding{Name: name, Value: val, YAML: a.yaml})
	return nil
}
