package covermark

import (
	"sync"

	"github.com/petermattis/goid"
)

// Engine holds the process-wide bookkeeping: the registry of known mark
// names and the per-goroutine stacks of open check scopes. The package-level
// API delegates to a default Engine; isolated instances from New are useful
// when a test harness wants fully hermetic state.
type Engine struct {
	// marks maps mark name -> *Mark. Written during registration, which is
	// cold relative to hits; hits never touch it.
	marks sync.Map

	// stacks maps goroutine id -> *scopeStack. Each entry is created,
	// mutated and deleted only by its owning goroutine, so the stack itself
	// needs no lock.
	stacks sync.Map
}

var defaultEngine = New()

// New constructs an Engine with no registered marks and no open scopes.
func New() *Engine {
	return &Engine{}
}

// Default returns the process-wide Engine used by the package-level API.
func Default() *Engine {
	return defaultEngine
}

// Register adds name to the engine's registry and returns its handle.
// Registration is idempotent: every call with the same name returns the same
// *Mark, even when first-use races across goroutines.
func (e *Engine) Register(name string) *Mark {
	if v, ok := e.marks.Load(name); ok {
		return v.(*Mark)
	}

	v, _ := e.marks.LoadOrStore(name, &Mark{name: name, engine: e})

	return v.(*Mark)
}

// Hit records one execution of the named instrumentation point. Every scope
// open on the calling goroutine that expects name gets credit; with no such
// scope the call is a no-op. Hit never fails and never blocks.
func (e *Engine) Hit(name string) {
	v, ok := e.stacks.Load(goid.Get())
	if !ok {
		return
	}

	for _, s := range v.(*scopeStack).scopes {
		if _, expected := s.expected[name]; expected {
			s.observed[name]++
		}
	}
}

// scopeStack is the ordered (innermost-last) list of scopes a single
// goroutine currently has open.
type scopeStack struct {
	scopes []*scope
}

// begin opens a scope on the calling goroutine and pushes it onto that
// goroutine's stack, creating the stack on first use.
func (e *Engine) begin(tb TB, expect Expectations) *scope {
	gid := goid.Get()

	v, _ := e.stacks.LoadOrStore(gid, &scopeStack{})
	st := v.(*scopeStack)

	s := &scope{
		engine:   e,
		tb:       tb,
		owner:    gid,
		expected: expect,
		observed: make(map[string]uint64, len(expect)),
	}
	for name := range expect {
		s.observed[name] = 0
	}

	st.scopes = append(st.scopes, s)

	return s
}

// pop removes s from its goroutine's stack. Closing a scope twice, from a
// goroutine other than the one that opened it, or while it is not the top of
// the stack is a harness bug, reported by panicking with
// *UnbalancedScopeError; downstream results would be untrustworthy.
func (e *Engine) pop(s *scope) {
	if s.closed {
		panic(&UnbalancedScopeError{Reason: "check scope closed twice"})
	}

	gid := goid.Get()
	if gid != s.owner {
		panic(&UnbalancedScopeError{
			Reason: "check scope closed on a different goroutine than it was opened on",
		})
	}

	v, ok := e.stacks.Load(gid)
	if !ok {
		panic(&UnbalancedScopeError{Reason: "check scope closed but no scopes are open"})
	}

	st := v.(*scopeStack)
	top := st.scopes[len(st.scopes)-1]
	if top != s {
		panic(&UnbalancedScopeError{
			Reason: "check scopes closed out of order (inner scope still open)",
		})
	}

	s.closed = true
	st.scopes = st.scopes[:len(st.scopes)-1]

	// Drop the empty stack so a reused goroutine starts clean.
	if len(st.scopes) == 0 {
		e.stacks.Delete(gid)
	}
}
