package lexer

import "github.com/oarkflow/goregex/errs"

// FoldClasses collapses every "[ ... ]" run in list into a single
// CCLASS (or CCLASS_NEGATED, if the first token after '[' is '^') token
// whose Next-linked chain holds the bracketed tokens in left-to-right
// order, per §4.2. It mutates a fresh List built from pool-backed tokens
// and returns it; the input list's tokens are reused by reference where
// they become class members, never copied.
func FoldClasses(in *List, pool *Pool) (*List, error) {
	out := NewList(in.Len())
	toks := in.Slice()

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind != CCLASS_START {
			out.Append(t)
			continue
		}

		// Find the matching ']'. The body is folded flat: no support for
		// nested brackets, matching §4.2's "run" semantics.
		j := i + 1
		negated := false
		if j < len(toks) && toks[j].Kind == CARET {
			negated = true
			j++
		}
		start := j
		for j < len(toks) && toks[j].Kind != CCLASS_END {
			j++
		}
		if j >= len(toks) {
			return nil, errs.New(errs.MalformedClass, i, "unmatched '['")
		}

		kind := CCLASS
		if negated {
			kind = CCLASS_NEGATED
		}
		cls, err := pool.Alloc(kind, 0, 0)
		if err != nil {
			return nil, errs.Annotate(err, "folding character class")
		}

		// Chain members. A '^' at any position other than the one just
		// consumed above stays a literal CARET member per §4.2; the
		// matcher's Accepts treats a bare CARET token as matching
		// nothing, per the open question in §9.
		var head, tail *Token
		for k := start; k < j; k++ {
			m := toks[k]
			if head == nil {
				head = m
			} else {
				tail.Next = m
			}
			tail = m
			m.Next = nil
		}
		cls.Next = head
		out.Append(cls)

		i = j // the loop's i++ steps past CCLASS_END
	}

	// An unmatched ']' with no preceding CCLASS_START was never consumed
	// by the loop above and would have been appended as a plain token;
	// that is malformed per §4.2.
	for _, t := range out.Slice() {
		if t.Kind == CCLASS_END {
			return nil, errs.New(errs.MalformedClass, 0, "unmatched ']'")
		}
	}

	return out, nil
}
