package covermark

import "sort"

// scope is one open check session: the expectations a test declared and the
// hit counts observed so far. It is owned exclusively by the goroutine that
// opened it; only that goroutine's Hit calls mutate observed, and only the
// close step reads it, so the scope itself needs no synchronization.
type scope struct {
	engine   *Engine
	tb       TB
	owner    int64
	expected Expectations
	observed map[string]uint64
	closed   bool
}

// failures compares observed counts against the expectations, sorted by mark
// name so diagnostics are deterministic.
func (s *scope) failures() []Failure {
	names := make([]string, 0, len(s.expected))
	for name := range s.expected {
		names = append(names, name)
	}
	sort.Strings(names)

	var failed []Failure

	for _, name := range names {
		mode := s.expected[name]
		if observed := s.observed[name]; !mode.satisfiedBy(observed) {
			failed = append(failed, Failure{Name: name, Mode: mode, Observed: observed})
		}
	}

	return failed
}

// Check opens a scope expecting every listed mark at least once. The
// returned func must be the deferred function itself:
//
//	defer e.Check(t, "fast-path")()
//
// so that validation and cleanup run on every exit path, including panics.
func (e *Engine) Check(tb TB, names ...string) func() {
	expect := make(Expectations, len(names))
	for _, name := range names {
		expect[name] = AtLeastOnce()
	}

	return e.CheckWith(tb, expect)
}

// CheckCount opens a scope expecting the mark to be hit exactly n times.
func (e *Engine) CheckCount(tb TB, name string, n uint64) func() {
	return e.CheckWith(tb, Expectations{name: Exactly(n)})
}

// CheckWith opens a scope with an explicit per-mark Mode. The returned guard
// always pops the scope, even while a panic unwinds; in that case it skips
// validation and re-raises the panic rather than piling a coverage failure
// on top of whatever already went wrong.
func (e *Engine) CheckWith(tb TB, expect Expectations) func() {
	s := e.begin(tb, expect)

	return func() {
		e.pop(s)

		if r := recover(); r != nil {
			panic(r)
		}

		if failed := s.failures(); len(failed) > 0 {
			reportFailures(s.tb, failed)
		}
	}
}
