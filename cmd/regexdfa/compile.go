package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"regexdfa/internal/export"
	"regexdfa/internal/precheck"
	"regexdfa/internal/render"
	"regexdfa/regexlib"
)

const formatDOT = "dot"

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <pattern>",
		Short: "Compile a regular expression into an automaton",
		Long: "Compile a pattern and print the automaton of one stage: the Thompson NFA (nfa), " +
			"the subset-construction DFA (dfa) or the minimal DFA (min).",
		Args: cobra.ExactArgs(1),
		RunE: runCompile,
	}

	cmd.Flags().String("stage", "min", "Stage to print: nfa, dfa or min")
	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or dot")
	cmd.Flags().String("alphabet", "", "Symbols of the DFA alphabet (default: derived from the pattern)")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Bool("precheck", false, "Check the pattern against a full regex grammar first")
	cmd.Flags().Bool("strict", false, "Fail when the pre-check finds a problem")
	cmd.Flags().Int("max-states", regexlib.DefaultMaxStates, "Maximum DFA states, 0 for no limit")
	cmd.Flags().Int("max-alphabet", regexlib.DefaultMaxAlphabet, "Maximum derived alphabet size, 0 for no limit")

	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("max_states", cmd.Flags().Lookup("max-states"))
	_ = viper.BindPFlag("max_alphabet", cmd.Flags().Lookup("max-alphabet"))
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	stage, _ := cmd.Flags().GetString("stage")
	output, _ := cmd.Flags().GetString("output")
	doPrecheck, _ := cmd.Flags().GetBool("precheck")
	strict := viper.GetBool("strict")
	format := outputFormat(cmd, output)

	if doPrecheck || strict {
		if err := runPrecheck(pattern, strict); err != nil {
			return err
		}
	}

	opts := []regexlib.Option{
		regexlib.WithLogger(log.Logger),
		regexlib.WithMaxStates(viper.GetInt("max_states")),
		regexlib.WithMaxAlphabet(viper.GetInt("max_alphabet")),
	}
	if cmd.Flags().Changed("alphabet") {
		symbols, _ := cmd.Flags().GetString("alphabet")
		opts = append(opts, regexlib.WithAlphabet([]rune(symbols)...))
	}
	c, err := regexlib.Compile(pattern, opts...)
	if err != nil {
		return err
	}

	var a regexlib.Automaton
	switch stage {
	case "nfa":
		a = c.NFA
	case "dfa":
		a = c.DFA
	case "min":
		a = c.Minimal
	default:
		return errors.Errorf("unknown stage %q, want nfa, dfa or min", stage)
	}
	log.Info().
		Str("pattern", pattern).
		Int("nfa_states", c.NFA.NumStates()).
		Int("dfa_states", c.DFA.NumStates()).
		Int("min_states", c.Minimal.NumStates()).
		Msg("compiled")

	return writeOutput(cmd, output, func(w io.Writer) error {
		return writeAutomaton(w, a, format)
	})
}

func runPrecheck(pattern string, strict bool) error {
	report, err := precheck.Check(pattern)
	if err != nil {
		if strict {
			return errors.Wrap(err, "pre-check")
		}
		log.Warn().Err(err).Msg("pre-check failed")
		return nil
	}
	for _, w := range report.Warnings {
		log.Warn().Int("offset", w.Offset).Msg(w.Message)
	}
	if strict && len(report.Warnings) > 0 {
		return errors.Errorf("pre-check: %d warnings in strict mode", len(report.Warnings))
	}
	return nil
}

// outputFormat honors --format, falling back to the output file extension.
func outputFormat(cmd *cobra.Command, output string) string {
	format, _ := cmd.Flags().GetString("format")
	if cmd.Flags().Changed("format") || output == "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".dot", ".gv":
		return formatDOT
	}
	return string(export.FormatFromPath(output))
}

func writeAutomaton(w io.Writer, a regexlib.Automaton, format string) error {
	switch format {
	case formatDOT:
		return render.WriteDOT(w, a)
	case string(export.JSON), string(export.YAML):
		return export.Encode(w, export.FromAutomaton(a), export.Format(format))
	}
	return errors.Errorf("unknown format %q, want json, yaml or dot", format)
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
