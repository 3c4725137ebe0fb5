package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"regexdfa/internal/export"
	"regexdfa/regexlib"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Validate an exported DFA and print it again",
		Long: "Read a DFA document (YAML for .yaml/.yml files, JSON otherwise), check that it " +
			"describes a valid DFA, optionally minimize it, and print it in the requested format.",
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().Bool("minimize", false, "Minimize the DFA before printing")
	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or dot")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	minimize, _ := cmd.Flags().GetBool("minimize")
	output, _ := cmd.Flags().GetString("output")
	format := outputFormat(cmd, output)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open document")
	}
	defer f.Close()

	doc, err := export.Decode(f, export.FormatFromPath(path))
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	d, err := export.ToDFA(doc)
	if err != nil {
		return errors.Wrapf(err, "load %s", path)
	}

	ev := log.Info().Str("file", path).Int("states", d.NumStates()).Str("alphabet", d.Alphabet().String())
	if minimize {
		m := regexlib.Minimize(d)
		ev = ev.Int("min_states", m.NumStates())
		d = m
	}
	ev.Msg("loaded")

	return writeOutput(cmd, output, func(w io.Writer) error {
		return writeAutomaton(w, d, format)
	})
}
