package covermark

import "fmt"

// Mode describes how a check scope compares a mark's observed hit count
// against its expectation. The zero Mode means "at least once".
type Mode struct {
	exact bool
	count uint64
}

// Expectations maps mark names to the Mode each must satisfy by the time the
// scope closes.
type Expectations map[string]Mode

// AtLeastOnce passes when the mark was hit one or more times.
func AtLeastOnce() Mode {
	return Mode{}
}

// Exactly passes when the mark was hit precisely n times. Exactly(0) asserts
// the mark must not be hit at all while the scope is open.
func Exactly(n uint64) Mode {
	return Mode{exact: true, count: n}
}

func (m Mode) satisfiedBy(observed uint64) bool {
	if m.exact {
		return observed == m.count
	}

	return observed >= 1
}

func (m Mode) String() string {
	if m.exact {
		return fmt.Sprintf("exactly %s", times(m.count))
	}

	return "at least once"
}

func times(n uint64) string {
	if n == 1 {
		return "1 time"
	}

	return fmt.Sprintf("%d times", n)
}
