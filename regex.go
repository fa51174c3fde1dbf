// Package regex compiles a pattern into a non-deterministic finite
// automaton and finds the longest prefix of an input, starting at
// position 0, that the automaton accepts.
//
// The pipeline is five stages in four packages: lexer (two stages:
// pattern text to tokens, then brackets folded into class tokens), postfix (infix
// tokens with implicit concatenation to postfix, shunting-yard style),
// nfa (postfix tokens to a Thompson-construction automaton), and sim
// (set-of-states simulation over the automaton). Every pool a compiled
// Pattern uses is fixed-size for its lifetime; a pattern that needs more
// room than its configured pools provide fails compilation with
// PoolExhausted rather than growing unboundedly.
package regex

import (
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
	"github.com/oarkflow/goregex/nfa"
	"github.com/oarkflow/goregex/postfix"
	"github.com/oarkflow/goregex/sim"
)

// Re-export the pipeline's own types so callers never need to import the
// subpackages directly.
type (
	TokenKind = lexer.Kind
	StateKind = nfa.Kind
	MatchKind = sim.Status
)

const (
	MatchOk      = sim.Ok
	MatchNoMatch = sim.NoMatch
)

// MatchResult is the outcome of matching a Pattern against an input.
type MatchResult struct {
	Status     MatchKind
	Bytes      []byte
	StartIndex int
	EndIndex   int
}

// Matched reports whether Status is MatchOk.
func (r MatchResult) Matched() bool { return r.Status == MatchOk }

// Pattern is a compiled regular expression: a fixed-capacity token pool,
// state pool, and the NFA entry state produced from them. A Pattern is
// safe for concurrent use by multiple goroutines calling Match, provided
// each call supplies its own result buffer — the pools built during
// Compile are read-only afterward.
type Pattern struct {
	id     uuid.UUID
	source string
	tokens *lexer.Pool
	states *nfa.Pool
	start  int
	cfg    PoolConfig
	log    *zap.Logger
}

// ID returns the Pattern's per-compile correlation identifier, suitable
// for threading through logs alongside the pipeline's own Debug records.
func (p *Pattern) ID() uuid.UUID { return p.id }

// String returns the pattern text the Pattern was compiled from.
func (p *Pattern) String() string { return p.source }

// Compile runs the full pipeline over pattern and returns a Pattern
// ready to Match, or an error wrapping the *Error that describes the
// first failure encountered (AsError extracts it).
func Compile(pattern string, opts ...Option) (*Pattern, error) {
	o := resolveOptions(opts)
	log := o.log

	tokens := lexer.NewPool(o.pool.MaxTokens)

	lexed, err := lexer.Lex(pattern, tokens, log)
	if err != nil {
		return nil, errs.Annotate(err, "lexing pattern")
	}

	folded, err := lexer.FoldClasses(lexed, tokens)
	if err != nil {
		return nil, errs.Annotate(err, "folding character classes")
	}

	post, err := postfix.Translate(folded, tokens, log)
	if err != nil {
		return nil, errs.Annotate(err, "translating to postfix")
	}

	states := nfa.NewPool(o.pool.MaxStates)
	start, err := nfa.Compile(post, states, o.pool.MaxGroupStack, o.pool.MaxOutList, log)
	if err != nil {
		return nil, errs.Annotate(err, "compiling NFA")
	}

	id, err := uuid.NewRandom()
	if err != nil {
		// uuid.NewRandom only fails if the system's entropy source is
		// broken; fall back to the nil UUID rather than failing a
		// compile over a logging/identity concern.
		id = uuid.Nil
	}

	log.Debug("pattern compiled",
		zap.String("pattern_id", id.String()),
		zap.Int("tokens", tokens.Len()),
		zap.Int("states", states.Len()),
		zap.Int("start", start),
	)

	return &Pattern{
		id:     id,
		source: pattern,
		tokens: tokens,
		states: states,
		start:  start,
		cfg:    o.pool,
		log:    log,
	}, nil
}

// Match finds the longest prefix of input, starting at position 0, that
// p accepts, writing the accepted bytes into buf. buf must be large
// enough to hold every byte the simulation consumes, which can run past
// the accepted prefix while a longer branch is still alive; otherwise
// Match reports BufferFull — in
// that case the returned MatchResult still carries the partial prefix
// consumed up to the failure, per §7.
func (p *Pattern) Match(input string, buf []byte) (MatchResult, error) {
	res, err := sim.Simulate(p.states, p.start, []byte(input), buf, p.cfg.MaxMatchList, p.log)
	result := MatchResult{
		Status:     res.Status,
		Bytes:      res.Bytes,
		StartIndex: res.StartIndex,
		EndIndex:   res.EndIndex,
	}
	if err != nil {
		return result, errs.Annotate(err, "simulating pattern")
	}
	return result, nil
}

// MatchString is a convenience wrapper around Match that allocates its
// own result buffer sized to len(input), the largest an accepted prefix
// of input could ever be.
func (p *Pattern) MatchString(input string) (MatchResult, error) {
	return p.Match(input, make([]byte, len(input)))
}

// Tokens returns the number of tokens allocated for this pattern, and
// States the number of NFA states — both useful for capacity planning
// against the configured pool sizes.
func (p *Pattern) Tokens() int { return p.tokens.Len() }
func (p *Pattern) States() int { return p.states.Len() }

// StateStart returns the NFA's entry state index and its state pool,
// for callers that want to render the automaton via the dump package.
func (p *Pattern) StateStart() (pool *nfa.Pool, start int) { return p.states, p.start }
