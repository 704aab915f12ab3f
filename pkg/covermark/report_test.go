package covermark

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTB captures reporter output so failure paths can be asserted on
// without failing the real test.
type recordingTB struct {
	helperCalled bool
	errors       []string
}

func (r *recordingTB) Helper() {
	r.helperCalled = true
}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestFailure_Message(t *testing.T) {
	tests := []struct {
		name    string
		failure Failure
		want    string
	}{
		{
			"never hit at least once",
			Failure{Name: "fast-path", Mode: AtLeastOnce(), Observed: 0},
			`mark "fast-path" was never hit (expected at least once)`,
		},
		{
			"never hit exact",
			Failure{Name: "retry", Mode: Exactly(2), Observed: 0},
			`mark "retry" was never hit (expected exactly 2 times)`,
		},
		{
			"count mismatch",
			Failure{Name: "retry", Mode: Exactly(2), Observed: 5},
			`mark "retry" was hit 5 times (expected exactly 2 times)`,
		},
		{
			"single hit against forbidden",
			Failure{Name: "slow", Mode: Exactly(0), Observed: 1},
			`mark "slow" was hit 1 time (expected exactly 0 times)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.failure.Message())
		})
	}
}

func TestCheckError_Error(t *testing.T) {
	err := &CheckError{Failures: []Failure{
		{Name: "a", Mode: AtLeastOnce(), Observed: 0},
		{Name: "b", Mode: Exactly(1), Observed: 3},
	}}

	assert.Equal(t,
		`covermark: mark "a" was never hit (expected at least once); `+
			`mark "b" was hit 3 times (expected exactly 1 time)`,
		err.Error(),
	)
}

func TestUnbalancedScopeError_Error(t *testing.T) {
	err := &UnbalancedScopeError{Reason: "check scope closed twice"}
	assert.Equal(t, "covermark: check scope closed twice", err.Error())
}

func TestReportFailures(t *testing.T) {
	t.Run("writes one test failure per mark", func(t *testing.T) {
		tb := &recordingTB{}

		reportFailures(tb, []Failure{
			{Name: "a", Mode: AtLeastOnce(), Observed: 0},
			{Name: "b", Mode: Exactly(2), Observed: 1},
		})

		assert.True(t, tb.helperCalled)
		require.Len(t, tb.errors, 2)
		assert.Equal(t, `covermark: mark "a" was never hit (expected at least once)`, tb.errors[0])
		assert.Equal(t, `covermark: mark "b" was hit 1 time (expected exactly 2 times)`, tb.errors[1])
	})

	t.Run("nil TB panics with CheckError", func(t *testing.T) {
		failures := []Failure{{Name: "a", Mode: AtLeastOnce(), Observed: 0}}

		defer func() {
			r := recover()
			require.NotNil(t, r)

			checkErr, ok := r.(*CheckError)
			require.True(t, ok)
			assert.Equal(t, failures, checkErr.Failures)
		}()

		reportFailures(nil, failures)
	})
}
