// Package nfa implements Thompson's construction: folding a postfix
// token list into a non-deterministic finite automaton of States linked
// by Out/Out1 edges, using a compile-time Group stack and an out-list
// back-patching scheme. The resulting graph is owned by, and allocated
// from, a fixed-capacity Pool belonging to one compiled pattern.
package nfa

import (
	"github.com/oarkflow/goregex/errs"
	"github.com/oarkflow/goregex/lexer"
)

// Kind identifies the role of a State.
type Kind uint8

const (
	// NONE is a consuming state: it matches one input byte against its
	// Token, then follows Out.
	NONE Kind = iota
	// SPLIT is an epsilon-branching state with two outgoing edges,
	// neither consuming.
	SPLIT
	// MATCH is terminal and has no outgoing edges.
	MATCH
)

func (k Kind) String() string {
	switch k {
	case NONE:
		return "NONE"
	case SPLIT:
		return "SPLIT"
	case MATCH:
		return "MATCH"
	default:
		return "?"
	}
}

// State is a node of the NFA. Out and Out1 are indices into the owning
// Pool's backing slice rather than raw pointers — see Design Notes §9:
// an index-based representation lets the (necessarily cyclic) graph be
// built and walked without aliasing hazards, and makes a debug dump
// trivially safe against infinite recursion via a visited-index set.
type State struct {
	Kind  Kind
	Token *lexer.Token // nil for MATCH
	Out   int          // index into Pool.states, or NoState
	Out1  int          // index into Pool.states, or NoState; unused by NONE
}

// NoState marks an edge slot that has not yet been patched.
const NoState = -1

// Pool is the fixed-capacity state arena belonging to one compiled
// pattern. Allocation scans for a free slot, mirroring the original
// source's is_alloc bookkeeping; within a single compile no state is
// ever freed, so the scan degenerates to "the next unused slot" but is
// written as an explicit scan to stay faithful to §3's stated algorithm
// and to keep the door open for slot reuse if this pool is ever reset
// and reused across compiles.
type Pool struct {
	states  []State
	isAlloc []bool
}

// NewPool allocates a Pool with room for exactly capacity states.
func NewPool(capacity int) *Pool {
	return &Pool{
		states:  make([]State, capacity),
		isAlloc: make([]bool, capacity),
	}
}

// Alloc finds a free slot, initializes it, and returns its index.
func (p *Pool) Alloc(kind Kind, tok *lexer.Token, out, out1 int) (int, error) {
	for i := range p.isAlloc {
		if !p.isAlloc[i] {
			p.isAlloc[i] = true
			p.states[i] = State{Kind: kind, Token: tok, Out: out, Out1: out1}
			return i, nil
		}
	}
	return NoState, errs.New(errs.PoolExhausted, 0, "state pool exhausted (capacity %d)", len(p.states))
}

// Get returns a pointer to the state at idx, or nil for NoState.
func (p *Pool) Get(idx int) *State {
	if idx == NoState {
		return nil
	}
	return &p.states[idx]
}

// Len reports how many states have been allocated.
func (p *Pool) Len() int {
	n := 0
	for _, a := range p.isAlloc {
		if a {
			n++
		}
	}
	return n
}

// Cap reports the pool's fixed capacity.
func (p *Pool) Cap() int { return len(p.states) }

// outPtr identifies a dangling edge slot: the state index and whether it
// is the Out or Out1 field that still needs patching.
type outPtr struct {
	state  int
	isOut1 bool
}

// outNode is one link of an out-list.
type outNode struct {
	ptr  outPtr
	next int // index into the owning olPool, or noNode
}

const noNode = -1

// olPool is the fixed-capacity pool of out-list nodes (§3's Out-list),
// scoped to a single Compile call.
type olPool struct {
	nodes []outNode
	len   int
}

func newOLPool(capacity int) *olPool {
	return &olPool{nodes: make([]outNode, capacity)}
}

func (p *olPool) alloc(ptr outPtr) (int, error) {
	if p.len == len(p.nodes) {
		return noNode, errs.New(errs.PoolExhausted, 0, "out-list pool exhausted (capacity %d)", len(p.nodes))
	}
	p.nodes[p.len] = outNode{ptr: ptr, next: noNode}
	idx := p.len
	p.len++
	return idx, nil
}

// join concatenates two out-lists (by index, noNode for empty) and
// returns the head of the combined list.
func (p *olPool) join(a, b int) int {
	if a == noNode {
		return b
	}
	head := a
	for p.nodes[a].next != noNode {
		a = p.nodes[a].next
	}
	p.nodes[a].next = b
	return head
}

// patch writes target into every edge slot named by the out-list headed
// at list, using states to resolve each outPtr to a concrete State.
func (p *olPool) patch(states *Pool, list int, target int) {
	for n := list; n != noNode; n = p.nodes[n].next {
		s := &states.states[p.nodes[n].ptr.state]
		if p.nodes[n].ptr.isOut1 {
			s.Out1 = target
		} else {
			s.Out = target
		}
	}
}

// group is a compile-time value holding a partially-built subgraph's
// entry state and its dangling out-list. Groups live only on the
// compiler's stack and are never persisted into the finished NFA.
type group struct {
	start int
	out   int // head index into the olPool, or noNode
}

// groupStack is the compiler's fixed-depth stack of groups.
type groupStack struct {
	items []group
	n     int
}

func newGroupStack(capacity int) *groupStack {
	return &groupStack{items: make([]group, capacity)}
}

func (s *groupStack) push(g group) error {
	if s.n == len(s.items) {
		return errs.New(errs.PoolExhausted, 0, "group stack exhausted (capacity %d)", len(s.items))
	}
	s.items[s.n] = g
	s.n++
	return nil
}

func (s *groupStack) pop() (group, error) {
	if s.n == 0 {
		return group{}, errs.New(errs.InternalError, 0, "group stack underflow")
	}
	s.n--
	return s.items[s.n], nil
}
