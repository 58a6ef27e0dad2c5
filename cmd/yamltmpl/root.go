// Package main is the yamltmpl CLI: a thin front end (argument parsing,
// file I/O, stdout/file output) wiring the core template/interp/emit
// packages together. Grounded on the Cobra+pflag shape used by the
// retrieval pack's own CLIs (cue-lang-cue's cmd/cue, adest-aes-scripts'
// cmd/devshell) — a single RunE with a handful of pflag-backed flags,
// no subcommands.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/willabides/yamltmpl/emit"
	"github.com/willabides/yamltmpl/exprast"
	"github.com/willabides/yamltmpl/interp"
	"github.com/willabides/yamltmpl/template"
	"github.com/willabides/yamltmpl/value"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	outPath    string
	bindings   []argBinding
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "yamltmpl PATH",
		Short:         "Render a YAML template against a configuration document and variable bindings",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to the configuration YAML document")
	flags.StringVarP(&opts.outPath, "out", "o", "", "write output to this path instead of standard output")
	flags.VarP(&argBindings{items: &opts.bindings, yaml: false}, "arg", "", "bind a string variable as NAME=VALUE (repeatable)")
	flags.VarP(&argBindings{items: &opts.bindings, yaml: true}, "argyaml", "", "bind a YAML/JSON-valued variable as NAME=VALUE (repeatable)")
	return cmd
}

func run(path string, opts *options, stdout io.Writer) error {
	templateData, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ft, err := template.Parse(path, templateData)
	if err != nil {
		return err
	}

	config := value.NewNull()
	if opts.configPath != "" {
		configData, err := os.ReadFile(opts.configPath)
		if err != nil {
			return err
		}
		config, err = value.Decode(opts.configPath, configData)
		if err != nil {
			return err
		}
	}

	vars, err := resolveVariables(opts.bindings)
	if err != nil {
		return err
	}

	docs, err := interp.Run(ft, config, vars)
	if err != nil {
		return err
	}

	out, err := emit.Documents(docs)
	if err != nil {
		return err
	}

	w := stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if len(out) == 0 {
		return nil
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if out[len(out)-1] != '\n' {
		_, err = w.Write([]byte("\n"))
	}
	return err
}

// resolveVariables applies --arg/--argyaml bindings in the order they
// were recorded, so a later binding for the same name overrides an
// earlier one (spec.md §6).
func resolveVariables(bindings []argBinding) (interp.Variables, error) {
	vars := interp.Variables{}
	for _, b := range bindings {
		if !b.YAML {
			vars[exprast.VarName(b.Name)] = value.NewString(b.Value)
			continue
		}
		v, err := value.Decode(fmt.Sprintf("--argyaml %s", b.Name), []byte(b.Value))
		if err != nil {
			return nil, err
		}
		vars[exprast.VarName(b.Name)] = v
	}
	return vars, nil
}
