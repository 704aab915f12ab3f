package covermark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_SatisfiedBy(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		observed uint64
		want     bool
	}{
		{"at least once, zero", AtLeastOnce(), 0, false},
		{"at least once, one", AtLeastOnce(), 1, true},
		{"at least once, many", AtLeastOnce(), 42, true},
		{"zero mode behaves as at least once", Mode{}, 1, true},
		{"exactly zero, zero", Exactly(0), 0, true},
		{"exactly zero, one", Exactly(0), 1, false},
		{"exactly three, three", Exactly(3), 3, true},
		{"exactly three, two", Exactly(3), 2, false},
		{"exactly three, four", Exactly(3), 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.satisfiedBy(tt.observed))
		})
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "at least once", AtLeastOnce().String())
	assert.Equal(t, "exactly 1 time", Exactly(1).String())
	assert.Equal(t, "exactly 0 times", Exactly(0).String())
	assert.Equal(t, "exactly 5 times", Exactly(5).String())
}
