package lexer

// List is an ordered sequence of token references with a known length,
// backed by a Pool. It supports three mutations: Insert, Append, and
// DeleteAt; the postfix translator and class folder use only Append.
type List struct {
	toks []*Token
}

// NewList creates an empty List with room for capacity references
// pre-reserved, avoiding reallocation as stages append to it.
func NewList(capacity int) *List {
	return &List{toks: make([]*Token, 0, capacity)}
}

// Len reports the number of tokens in the list.
func (l *List) Len() int { return len(l.toks) }

// At returns the token at index i.
func (l *List) At(i int) *Token { return l.toks[i] }

// Append adds t to the end of the list.
func (l *List) Append(t *Token) { l.toks = append(l.toks, t) }

// Insert places t at index i, shifting the remainder of the list right.
func (l *List) Insert(i int, t *Token) {
	l.toks = append(l.toks, nil)
	copy(l.toks[i+1:], l.toks[i:])
	l.toks[i] = t
}

// DeleteAt removes the token at index i.
func (l *List) DeleteAt(i int) {
	l.toks = append(l.toks[:i], l.toks[i+1:]...)
}

// Slice returns the underlying token references. The returned slice
// shares storage with the List and must not be mutated by the caller.
func (l *List) Slice() []*Token { return l.toks }
