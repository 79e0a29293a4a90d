package games

import (
	"math"

	"levelbot/progression"
)

// Roulette stakes coins on matching a drawn number. Both the player's
// number and the winning number are drawn uniformly from [0,6], so the win
// odds are 1 in 7. A win pays ceil(bet * 3); XP is awarded win or lose.
type Roulette struct {
	Bet int64
}

func (g Roulette) Validate() error {
	if g.Bet <= 0 {
		return &InvalidWagerError{Reason: "Your bet must be at least 1 coin!"}
	}
	return nil
}

func (g Roulette) BetAmount() int64 { return g.Bet }

func (g Roulette) Resolve(r Rand) Outcome {
	rolled := r.Intn(7)
	winning := r.Intn(7)
	out := Outcome{
		Roll:    rolled,
		Winning: winning,
		XP:      progression.RouletteXP,
	}
	if rolled == winning {
		out.Won = true
		out.Payout = int64(math.Ceil(float64(g.Bet) * 3))
	} else {
		out.Payout = -g.Bet
	}
	return out
}
