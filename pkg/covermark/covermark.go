//go:build !covermark_off

package covermark

// Hit records one execution of the named instrumentation point on the
// default engine. Callable from any goroutine at any time; with no open
// scope expecting name on the calling goroutine it is a silent no-op.
func Hit(name string) {
	defaultEngine.Hit(name)
}

// Register adds name to the default engine's registry and returns its
// handle. Registration is idempotent.
func Register(name string) *Mark {
	return defaultEngine.Register(name)
}

// Check opens a scope on the default engine expecting every listed mark at
// least once. Defer the returned func directly:
//
//	defer covermark.Check(t, "fast-path")()
func Check(tb TB, names ...string) func() {
	return defaultEngine.Check(tb, names...)
}

// CheckCount opens a scope on the default engine expecting the mark to be
// hit exactly n times.
func CheckCount(tb TB, name string, n uint64) func() {
	return defaultEngine.CheckCount(tb, name, n)
}

// CheckWith opens a scope on the default engine with an explicit per-mark
// Mode.
func CheckWith(tb TB, expect Expectations) func() {
	return defaultEngine.CheckWith(tb, expect)
}
