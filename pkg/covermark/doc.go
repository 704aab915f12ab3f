// Package covermark answers two test-suite maintenance questions at runtime:
// which code does this test exercise, and which test exercises this code.
//
// Production code places named marks at interesting points:
//
//	func parseDate(s string) (Date, error) {
//		if len(s) != 10 {
//			covermark.Hit("short date")
//			return Date{}, errInvalid
//		}
//		...
//	}
//
// A test declares which marks the exercised code must pass through and the
// returned guard verifies the declaration when the scope ends:
//
//	func TestShortDate(t *testing.T) {
//		defer covermark.Check(t, "short date")()
//
//		_, err := parseDate("92")
//		require.Error(t, err)
//	}
//
// If parseDate never reaches the "short date" branch, the guard fails the
// test. The reverse direction, "which tests cover this mark", is answered by
// the covermark CLI, which greps declarations out of test source; mark names
// therefore stay literal strings and are never hashed or generated.
//
// # Concurrency
//
// Check scopes are keyed by the goroutine that opened them. A hit only
// credits scopes open on the hitting goroutine, so parallel tests never
// observe each other's hits. The flip side: hits fired from goroutines
// spawned by the code under test are invisible to the spawning test's scope.
// That is a deliberate boundary, not a bug; instrument the synchronous path,
// or assert on the worker's observable results instead of its marks.
//
// # Disabling
//
// Building with the covermark_off tag turns Hit, Check, CheckCount and
// CheckWith into true no-ops, so instrumented production code ships at zero
// cost in release builds.
package covermark
