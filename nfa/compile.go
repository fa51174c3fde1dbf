package nfa

import (
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
)

// Compile folds a postfix token list into an NFA inside states, per
// §4.4, and returns the index of the entry state. groupStackCap and
// outListCap size the compiler's two scratch pools, scoped to this one
// call; states is the pattern's long-lived state pool and outlives the
// call.
func Compile(postfix *lexer.List, states *Pool, groupStackCap, outListCap int, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	gs := newGroupStack(groupStackCap)
	ol := newOLPool(outListCap)

	single := func(ptr outPtr) (int, error) { return ol.alloc(ptr) }

	for _, t := range postfix.Slice() {
		switch t.Kind {
		case lexer.CONCAT:
			g1, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			g0, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			ol.patch(states, g0.out, g1.start)
			if err := gs.push(group{start: g0.start, out: g1.out}); err != nil {
				return NoState, err
			}
			log.Debug("compile concat")

		case lexer.PIPE:
			g1, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			g0, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			s, err := states.Alloc(SPLIT, nil, g0.start, g1.start)
			if err != nil {
				return NoState, err
			}
			if err := gs.push(group{start: s, out: ol.join(g0.out, g1.out)}); err != nil {
				return NoState, err
			}
			log.Debug("compile alternation")

		case lexer.QUESTION:
			g, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			s, err := states.Alloc(SPLIT, nil, g.start, NoState)
			if err != nil {
				return NoState, err
			}
			l, err := single(outPtr{state: s, isOut1: true})
			if err != nil {
				return NoState, err
			}
			if err := gs.push(group{start: s, out: ol.join(g.out, l)}); err != nil {
				return NoState, err
			}
			log.Debug("compile question")

		case lexer.STAR:
			g, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			// Entry is the split, per the Design Notes §9 resolution of
			// the source's inconsistent revisions: the body must be
			// skippable, so the split — not the body's own start — is
			// the group's entry state.
			s, err := states.Alloc(SPLIT, nil, g.start, NoState)
			if err != nil {
				return NoState, err
			}
			ol.patch(states, g.out, s) // loop back edge
			l, err := single(outPtr{state: s, isOut1: true})
			if err != nil {
				return NoState, err
			}
			if err := gs.push(group{start: s, out: l}); err != nil {
				return NoState, err
			}
			log.Debug("compile star")

		case lexer.PLUS:
			g, err := gs.pop()
			if err != nil {
				return NoState, err
			}
			s, err := states.Alloc(SPLIT, nil, g.start, NoState)
			if err != nil {
				return NoState, err
			}
			ol.patch(states, g.out, s) // loop back edge
			l, err := single(outPtr{state: s, isOut1: true})
			if err != nil {
				return NoState, err
			}
			// Entry is the body's own start: the body must run at least
			// once before the split can be reached.
			if err := gs.push(group{start: g.start, out: l}); err != nil {
				return NoState, err
			}
			log.Debug("compile plus")

		default:
			// Atom: literal, range, class-letter, CCLASS/CCLASS_NEGATED,
			// or a reserved kind (CARET past the start, etc.) — all
			// compile to a single consuming NONE state labeled by t.
			s, err := states.Alloc(NONE, t, NoState, NoState)
			if err != nil {
				return NoState, err
			}
			l, err := single(outPtr{state: s, isOut1: false})
			if err != nil {
				return NoState, err
			}
			if err := gs.push(group{start: s, out: l}); err != nil {
				return NoState, err
			}
		}
	}

	g, err := gs.pop()
	if err != nil {
		return NoState, err
	}
	if gs.n != 0 {
		return NoState, errs.New(errs.InternalError, 0, "%d groups left on stack after compilation", gs.n)
	}

	match, err := states.Alloc(MATCH, nil, NoState, NoState)
	if err != nil {
		return NoState, err
	}
	ol.patch(states, g.out, match)

	log.Debug("compile complete", zap.Int("states", states.Len()), zap.Int("start", g.start))
	return g.start, nil
}
