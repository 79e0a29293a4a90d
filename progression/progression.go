// Package progression computes user levels from accumulated experience.
//
// The formula is iterative: the divisor depends on the level held before
// the current award, so the persisted level is real state and cannot be
// recomputed from XP alone.
package progression

// XP awards for the built-in activities and games.
const (
	MessageXP     int64 = 3
	RollXP        int64 = 5
	DiceBetWinXP  int64 = 10
	DiceBetLossXP int64 = 5
	CoinflipXP    int64 = 10
	RouletteXP    int64 = 15
)

// Advance returns the level a user holds after reaching currentXP, given
// the level they held before this award. The candidate level is
// floor(currentXP / (100 * (previousLevel + 1.5))); the level only ever
// moves up through this path. previousLevel must be non-negative, which
// holds by construction since users start at level 0.
func Advance(currentXP, previousLevel int64) (newLevel int64, leveledUp bool) {
	candidate := int64(float64(currentXP) / (100 * (float64(previousLevel) + 1.5)))
	if candidate > previousLevel {
		return candidate, true
	}
	return previousLevel, false
}
