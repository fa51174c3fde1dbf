// Package sim implements the classic set-of-states NFA simulation: for
// each input byte, advance every state in the current match list along
// the edges whose token accepts that byte, resolving epsilon
// transitions at insertion time so the match list never holds a SPLIT
// state.
package sim

import (
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
	"github.com/oarkflow/goregex/nfa"
)

// Status is the outcome of a Simulate call.
type Status uint8

const (
	// Ok means a prefix of the input was accepted.
	Ok Status = iota
	// NoMatch means no prefix — not even the empty one — was accepted.
	// It is not an error: a valid, negative result per §7.
	NoMatch
)

// Result mirrors §6's MatchResult record.
type Result struct {
	Status     Status
	Bytes      []byte // the accepted prefix, or nil
	StartIndex int
	EndIndex   int // exclusive
}

// list is a fixed-capacity, insertion-ordered set of NFA state indices.
// Per §4.5, duplicates are not forbidden by the specification, but this
// implementation deduplicates by state index to bound the list to the
// number of states in the pattern, as the specification explicitly
// permits.
type list struct {
	states []int
	seen   []bool
}

// newList sizes the list itself to capacity and its seen set to nstates,
// the state pool's capacity, since seen is indexed by state index.
func newList(capacity, nstates int) *list {
	return &list{states: make([]int, 0, capacity), seen: make([]bool, nstates)}
}

func (l *list) reset() {
	l.states = l.states[:0]
	for i := range l.seen {
		l.seen[i] = false
	}
}

// addState implements §4.5's addstate: if s is a SPLIT, recurse into its
// two epsilon edges without adding s itself; otherwise append s, unless
// it has already been added during this step.
func addState(l *list, pool *nfa.Pool, idx int) error {
	if idx == nfa.NoState {
		return nil
	}
	s := pool.Get(idx)
	if s.Kind == nfa.SPLIT {
		if err := addState(l, pool, s.Out); err != nil {
			return err
		}
		return addState(l, pool, s.Out1)
	}
	if l.seen[idx] {
		return nil
	}
	if len(l.states) == cap(l.states) {
		return errs.New(errs.PoolExhausted, 0, "match list exhausted (capacity %d)", cap(l.states))
	}
	l.seen[idx] = true
	l.states = append(l.states, idx)
	return nil
}

// Simulate runs §4.5 over input, starting from the NFA state start,
// writing the accepted prefix into buf. matchListCap bounds the size of
// the two match lists (current/next), per §5's fixed match-list pool.
func Simulate(pool *nfa.Pool, start int, input []byte, buf []byte, matchListCap int, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	effectiveStart := start
	if s := pool.Get(start); s.Kind == nfa.NONE && isStartAnchor(s) {
		effectiveStart = s.Out
	}

	cur := newList(matchListCap, pool.Cap())
	next := newList(matchListCap, pool.Cap())
	if err := addState(cur, pool, effectiveStart); err != nil {
		return Result{}, err
	}

	accepted := 0 // total bytes consumed so far, not necessarily all matched
	matched := hasMatch(cur, pool)
	matchLen := 0 // length of the longest accepted prefix seen so far

	for i := 0; i < len(input); i++ {
		c := input[i]
		next.reset()

		for _, idx := range cur.states {
			s := pool.Get(idx)
			if s.Kind != nfa.NONE {
				continue
			}
			if s.Token != nil && s.Token.Accepts(c) {
				if err := addState(next, pool, s.Out); err != nil {
					return Result{}, err
				}
				if err := addState(next, pool, s.Out1); err != nil {
					return Result{}, err
				}
			}
		}

		if len(next.states) == 0 {
			break
		}
		if accepted >= len(buf) {
			return Result{Status: NoMatch, Bytes: buf[:accepted], StartIndex: 0, EndIndex: accepted},
				errs.New(errs.BufferFull, accepted, "result buffer (capacity %d) too small for accepted prefix", len(buf))
		}
		buf[accepted] = c
		accepted++

		cur, next = next, cur
		if hasMatch(cur, pool) {
			matched = true
			matchLen = accepted
			log.Debug("simulate matched", zap.Int("length", matchLen))
		}
	}

	if !matched {
		return Result{Status: NoMatch}, nil
	}
	return Result{
		Status:     Ok,
		Bytes:      buf[:matchLen],
		StartIndex: 0,
		EndIndex:   matchLen,
	}, nil
}

// isStartAnchor reports whether s is the NONE state produced by
// compiling a top-of-pattern '^': a consuming state labeled CARET. Per
// §4.5, the simulation skips straight to its single epsilon successor
// instead of trying to consume a character with it.
func isStartAnchor(s *nfa.State) bool {
	return s.Token != nil && s.Token.Kind == lexer.CARET
}

func hasMatch(l *list, pool *nfa.Pool) bool {
	for _, idx := range l.states {
		if pool.Get(idx).Kind == nfa.MATCH {
			return true
		}
	}
	return false
}
