// Package postfix converts an infix token list — with implicit
// concatenation — into a postfix token list suitable for Thompson
// construction. It is a shunting-yard variant specialized for regex
// syntax: quantifiers bind immediately to the preceding atom, groups
// nest via an explicit (natom, nalt) stack, and alternation is flushed
// at the matching ')' or at end of input.
package postfix

import (
	"go.uber.org/zap"

	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
)

// MaxGroupDepth is the fixed nesting limit from §4.3; exceeding it is a
// SyntaxError, not a PoolExhausted — the stack itself is not pool-backed
// since its entries are plain (natom, nalt) pairs, not pooled tokens.
const MaxGroupDepth = 100

// frame is the pushdown record used both for the per-token counters and
// the group-nesting stack, per Design Notes §9.
type frame struct {
	natom int
	nalt  int
}

// Translate runs the algorithm in §4.3 over in, allocating CONCAT and
// PIPE tokens from pool as it flushes them, and returns the resulting
// postfix token list.
func Translate(in *lexer.List, pool *lexer.Pool, log *zap.Logger) (*lexer.List, error) {
	if log == nil {
		log = zap.NewNop()
	}

	out := lexer.NewList(in.Len() * 2)
	var stack [MaxGroupDepth]frame
	depth := 0
	cur := frame{}

	emitConcat := func() error {
		t, err := pool.Alloc(lexer.CONCAT, 0, 0)
		if err != nil {
			return errs.Annotate(err, "emitting implicit concatenation")
		}
		out.Append(t)
		return nil
	}
	emitPipe := func() error {
		t, err := pool.Alloc(lexer.PIPE, 0, 0)
		if err != nil {
			return errs.Annotate(err, "emitting alternation")
		}
		out.Append(t)
		return nil
	}

	toks := in.Slice()
	for i, t := range toks {
		switch t.Kind {
		case lexer.GROUP_START:
			if cur.natom > 1 {
				cur.natom--
				if err := emitConcat(); err != nil {
					return nil, err
				}
			}
			if depth >= MaxGroupDepth {
				return nil, errs.New(errs.SyntaxError, i, "group nesting exceeds limit of %d", MaxGroupDepth)
			}
			stack[depth] = cur
			depth++
			cur = frame{}

		case lexer.PIPE:
			if cur.natom < 1 {
				return nil, errs.New(errs.SyntaxError, i, "'|' with no preceding expression")
			}
			for {
				cur.natom--
				if cur.natom <= 0 {
					break
				}
				if err := emitConcat(); err != nil {
					return nil, err
				}
			}
			cur.nalt++

		case lexer.GROUP_END:
			if depth == 0 {
				return nil, errs.New(errs.SyntaxError, i, "unmatched ')'")
			}
			if cur.natom < 1 {
				return nil, errs.New(errs.SyntaxError, i, "')' with no preceding expression")
			}
			for {
				cur.natom--
				if cur.natom <= 0 {
					break
				}
				if err := emitConcat(); err != nil {
					return nil, err
				}
			}
			for ; cur.nalt > 0; cur.nalt-- {
				if err := emitPipe(); err != nil {
					return nil, err
				}
			}
			depth--
			cur = stack[depth]
			cur.natom++

		case lexer.STAR, lexer.PLUS, lexer.QUESTION:
			if cur.natom < 1 {
				return nil, errs.New(errs.SyntaxError, i, "quantifier %s with no preceding atom", t.Kind)
			}
			out.Append(t)

		case lexer.END, lexer.RANGE_START, lexer.RANGE_END, lexer.BACKSLASH:
			return nil, errs.New(errs.SyntaxError, i, "unsupported reserved token %s", t.Kind)

		default:
			if cur.natom > 1 {
				cur.natom--
				if err := emitConcat(); err != nil {
					return nil, err
				}
			}
			out.Append(t)
			cur.natom++
		}
	}

	if depth != 0 {
		return nil, errs.New(errs.SyntaxError, in.Len(), "unbalanced group: %d still open", depth)
	}
	for {
		cur.natom--
		if cur.natom <= 0 {
			break
		}
		if err := emitConcat(); err != nil {
			return nil, err
		}
	}
	for ; cur.nalt > 0; cur.nalt-- {
		if err := emitPipe(); err != nil {
			return nil, err
		}
	}

	log.Debug("postfix translation complete", zap.Int("in", in.Len()), zap.Int("out", out.Len()))
	return out, nil
}
