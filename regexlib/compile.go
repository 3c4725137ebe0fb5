package regexlib

import (
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Compiled holds the automata produced for one pattern.
type Compiled struct {
	Pattern  string
	NFA      *NFA
	Alphabet Alphabet
	DFA      *DFA // straight out of subset construction
	Minimal  *DFA
}

type config struct {
	alphabet    Alphabet
	hasAlphabet bool
	logger      zerolog.Logger
	maxStates   int
	maxAlphabet int
	maxDepth    int
}

// Option configures Compile.
type Option func(*config)

// WithAlphabet makes the DFA use symbols instead of the alphabet derived from
// the pattern. Patterns containing the wildcard cannot be compiled without it.
func WithAlphabet(symbols ...rune) Option {
	return func(c *config) {
		c.alphabet = NewAlphabet(symbols...)
		c.hasAlphabet = true
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMaxStates caps subset construction, see WithStateLimit.
func WithMaxStates(n int) Option {
	return func(c *config) { c.maxStates = n }
}

// WithMaxAlphabet caps the derived alphabet. n <= 0 removes the cap.
func WithMaxAlphabet(n int) Option {
	return func(c *config) { c.maxAlphabet = n }
}

func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// Compile runs pattern through tokenizer, parser, Thompson construction,
// subset construction and minimization. Any stage failing aborts the whole
// compilation.
func Compile(pattern string, opts ...Option) (*Compiled, error) {
	cfg := config{
		logger:      zerolog.Nop(),
		maxStates:   DefaultMaxStates,
		maxAlphabet: DefaultMaxAlphabet,
		maxDepth:    DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger.With().Str("pattern", pattern).Logger()

	tokens := Tokenize(pattern)
	log.Debug().Str("stage", "tokenize").Int("tokens", len(tokens)).Msg("tokenized pattern")

	root, err := parse(tokens, utf8.RuneCountInString(pattern), cfg.maxDepth)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %q", pattern)
	}
	log.Debug().Str("stage", "parse").Stringer("ast", root).Msg("parsed pattern")

	nfa := BuildNFA(root)
	log.Debug().Str("stage", "nfa").Int("states", nfa.NumStates()).Int("edges", len(nfa.edges)).Msg("built NFA")

	alphabet := cfg.alphabet
	if !cfg.hasAlphabet {
		if HasWildcard(nfa) {
			return nil, errors.Wrapf(ErrWildcardNeedsAlphabet, "derive alphabet of %q", pattern)
		}
		alphabet, err = DeriveAlphabet(nfa, cfg.maxAlphabet)
		if err != nil {
			return nil, errors.Wrapf(err, "derive alphabet of %q", pattern)
		}
	}
	log.Debug().Str("stage", "alphabet").Int("symbols", len(alphabet)).Msg("alphabet ready")

	dfa, err := BuildDFA(nfa, alphabet, WithStateLimit(cfg.maxStates))
	if err != nil {
		return nil, errors.Wrapf(err, "subset construction for %q", pattern)
	}
	log.Debug().Str("stage", "dfa").Int("states", dfa.NumStates()).Int("edges", len(dfa.edges)).Msg("built DFA")

	minimal := Minimize(dfa)
	log.Debug().Str("stage", "minimize").Int("states", minimal.NumStates()).Int("edges", len(minimal.edges)).Msg("minimized DFA")

	return &Compiled{
		Pattern:  pattern,
		NFA:      nfa,
		Alphabet: alphabet,
		DFA:      dfa,
		Minimal:  minimal,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string, opts ...Option) *Compiled {
	c, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return c
}
