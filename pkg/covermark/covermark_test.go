//go:build !covermark_off

package covermark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clamp takes a fast path for values above the limit. The mark lets tests
// prove which inputs actually reach it.
func clamp(x int) int {
	if x > 100 {
		Hit("clamp-high")
		return 100
	}

	return x
}

func TestPackageAPI(t *testing.T) {
	t.Run("backed by the default engine", func(t *testing.T) {
		assert.Same(t, Default().Register("pkg-level"), Register("pkg-level"))
	})

	t.Run("fast path input exercises the mark", func(t *testing.T) {
		defer Check(t, "clamp-high")()

		assert.Equal(t, 100, clamp(150))
	})

	t.Run("slow path input misses the mark", func(t *testing.T) {
		tb := &recordingTB{}

		done := Check(tb, "clamp-high")
		assert.Equal(t, 5, clamp(5))
		done()

		require.Len(t, tb.errors, 1)
		assert.Contains(t, tb.errors[0], `mark "clamp-high" was never hit`)
	})

	t.Run("check count through the package surface", func(t *testing.T) {
		done := CheckCount(t, "clamp-high", 2)
		clamp(101)
		clamp(200)
		clamp(3)
		done()
	})

	t.Run("registered handle feeds open scopes", func(t *testing.T) {
		mark := Register("handle-hit")

		done := CheckCount(t, "handle-hit", 1)
		mark.Hit()
		done()
	})

	t.Run("check with explicit expectations", func(t *testing.T) {
		done := CheckWith(t, Expectations{
			"clamp-high": Exactly(1),
		})
		clamp(500)
		done()
	})
}
