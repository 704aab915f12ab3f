package covermark

import (
	"fmt"
	"strings"
)

// TB is the slice of testing.TB the reporter needs. *testing.T and
// *testing.B satisfy it; tests of the reporter substitute a recorder.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// Failure describes one expectation a closing scope did not meet.
type Failure struct {
	Name     string
	Mode     Mode
	Observed uint64
}

// Message renders the failure as a single-line diagnostic.
func (f Failure) Message() string {
	if f.Observed == 0 {
		return fmt.Sprintf("mark %q was never hit (expected %s)", f.Name, f.Mode)
	}

	return fmt.Sprintf("mark %q was hit %s (expected %s)", f.Name, times(f.Observed), f.Mode)
}

// CheckError aggregates every failed expectation of one scope. It is the
// panic value when a scope with a nil TB fails validation.
type CheckError struct {
	Failures []Failure
}

func (e *CheckError) Error() string {
	messages := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		messages[i] = f.Message()
	}

	return "covermark: " + strings.Join(messages, "; ")
}

// UnbalancedScopeError reports misuse of the check API itself, as opposed to
// the code under test missing a mark. It is raised by panicking and must not
// be swallowed: once scopes close out of order, subsequent results cannot be
// trusted.
type UnbalancedScopeError struct {
	Reason string
}

func (e *UnbalancedScopeError) Error() string {
	return "covermark: " + e.Reason
}

// reportFailures surfaces validation failures as test failures via tb, one
// Errorf per failed mark. With a nil tb it panics with a *CheckError so
// non-test callers still see the miss.
func reportFailures(tb TB, failures []Failure) {
	if tb == nil {
		panic(&CheckError{Failures: failures})
	}

	tb.Helper()

	for _, f := range failures {
		tb.Errorf("covermark: %s", f.Message())
	}
}
