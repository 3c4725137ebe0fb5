package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regexdfa",
		Short: "Regular expression to automaton compiler",
		Long: "regexdfa compiles a regular expression into a Thompson NFA, a subset-construction DFA " +
			"and a minimal DFA, and exports them as JSON, YAML or Graphviz DOT.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Debug output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().String("log-format", "console", "Log format: console or json")

	_ = viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_format", cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(newCompileCmd(), newInspectCmd())
	return cmd
}

func initConfig() {
	viper.SetEnvPrefix("REGEXDFA")
	viper.AutomaticEnv()
}

func setupLogging(w io.Writer) {
	out := w
	if viper.GetString("log_format") != "json" {
		out = zerolog.ConsoleWriter{Out: w}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	switch {
	case viper.GetBool("debug"):
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case viper.GetBool("verbose"):
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
