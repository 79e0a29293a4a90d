package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name          string
		currentXP     int64
		previousLevel int64
		wantLevel     int64
		wantLeveledUp bool
	}{
		{"fresh user no xp", 0, 0, 0, false},
		{"below first threshold", 149, 0, 0, false},
		{"first level at 150", 150, 0, 1, true},
		{"well past first threshold", 320, 0, 2, true},
		{"no change at level 1", 300, 1, 1, false},
		{"level 1 to 2 at 500", 500, 1, 2, true},
		{"divisor grows with level", 500, 4, 4, false},
		{"high level jump", 5000, 4, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, leveledUp := Advance(tt.currentXP, tt.previousLevel)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantLeveledUp, leveledUp)
		})
	}
}

// The formula divides by the level held before the award, so replaying the
// same XP in different step sizes can land on different levels. The level
// column is state, not a view over xp.
func TestAdvance_PathDependent(t *testing.T) {
	// One big award from zero.
	bigStep, _ := Advance(600, 0)

	// The same 600 xp earned across two awards.
	mid, _ := Advance(300, 0)
	twoStep, _ := Advance(600, mid)

	assert.Equal(t, int64(4), bigStep)
	assert.Equal(t, int64(2), twoStep)
	assert.NotEqual(t, bigStep, twoStep)
}

func TestAdvance_NeverDecreases(t *testing.T) {
	for level := int64(0); level < 20; level++ {
		got, leveledUp := Advance(0, level)
		assert.Equal(t, level, got)
		assert.False(t, leveledUp)
	}
}
