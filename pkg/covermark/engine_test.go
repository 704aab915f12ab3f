package covermark

import (
	"sync"
	"testing"

	"github.com/petermattis/goid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openScopes reports how many scopes the calling goroutine has open on e.
func openScopes(e *Engine) int {
	v, ok := e.stacks.Load(goid.Get())
	if !ok {
		return 0
	}

	return len(v.(*scopeStack).scopes)
}

func TestRegister(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		e := New()

		first := e.Register("fast-path")
		second := e.Register("fast-path")

		assert.Same(t, first, second)
		assert.Equal(t, "fast-path", first.Name())
	})

	t.Run("double registration does not double count", func(t *testing.T) {
		e := New()

		e.Register("dup")
		mark := e.Register("dup")

		done := e.CheckCount(t, "dup", 1)
		mark.Hit()
		done()
	})

	t.Run("concurrent first use yields one handle", func(t *testing.T) {
		e := New()

		const goroutines = 32

		handles := make([]*Mark, goroutines)

		var wg sync.WaitGroup
		for i := range goroutines {
			wg.Add(1)

			go func() {
				defer wg.Done()
				handles[i] = e.Register("raced")
			}()
		}
		wg.Wait()

		for _, h := range handles {
			require.Same(t, handles[0], h)
		}
	})
}

func TestHit(t *testing.T) {
	t.Run("no open scope is a no-op", func(t *testing.T) {
		e := New()

		require.NotPanics(t, func() {
			e.Hit("nobody-watching")
		})
		assert.Equal(t, 0, openScopes(e))
	})

	t.Run("unexpected name leaves scope untouched", func(t *testing.T) {
		e := New()

		done := e.Check(t, "wanted")
		e.Hit("unwanted")
		e.Hit("wanted")
		done()
	})

	t.Run("hit from another goroutine does not count", func(t *testing.T) {
		e := New()
		tb := &recordingTB{}

		done := e.Check(tb, "cross")

		ready := make(chan struct{})
		go func() {
			defer close(ready)
			e.Hit("cross")
		}()
		<-ready

		done()

		require.Len(t, tb.errors, 1)
		assert.Contains(t, tb.errors[0], `mark "cross" was never hit`)
	})
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())

	// Isolated engines share nothing with the default one.
	e := New()
	require.NotSame(t, Default(), e)
	assert.NotSame(t, Default().Register("shared-name"), e.Register("shared-name"))
}

// Scopes on many goroutines each see exactly their own hits, no matter how
// the scheduler interleaves them.
func TestHit_ParallelScopes(t *testing.T) {
	e := New()

	const goroutines = 100

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 100 {
				func() {
					defer e.CheckCount(t, "stress", 1)()
					e.Hit("stress")
				}()
			}
		}()
	}
	wg.Wait()
}
