package games

import (
	"levelbot/progression"
)

// Coinflip stakes coins on a fair coin. The game draws two independent
// bits and wins on equality, which is a single fair flip against the bet.
type Coinflip struct {
	Bet int64
}

func (g Coinflip) Validate() error {
	if g.Bet <= 0 {
		return &InvalidWagerError{Reason: "Your bet must be at least 1 coin!"}
	}
	return nil
}

func (g Coinflip) BetAmount() int64 { return g.Bet }

func (g Coinflip) Resolve(r Rand) Outcome {
	flipped := r.Intn(2)
	winning := r.Intn(2)
	out := Outcome{
		Roll:    flipped,
		Winning: winning,
		XP:      progression.CoinflipXP,
	}
	if flipped == winning {
		out.Won = true
		out.Payout = g.Bet
	} else {
		out.Payout = -g.Bet
	}
	return out
}
