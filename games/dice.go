package games

import (
	"levelbot/progression"
)

// DiceRoll is a free roll of a six-sided die. No coins change hands and a
// fixed amount of XP is awarded for playing.
type DiceRoll struct{}

func (DiceRoll) Validate() error { return nil }

func (DiceRoll) BetAmount() int64 { return 0 }

func (DiceRoll) Resolve(r Rand) Outcome {
	return Outcome{
		Roll: r.Intn(6) + 1,
		XP:   progression.RollXP,
	}
}

// DiceBet is a die roll with coins staked on a guessed face. A correct
// guess pays six times the stake.
type DiceBet struct {
	Bet int64

	// Guess is the face bet on; HasGuess distinguishes an omitted guess
	// from a guess of zero.
	Guess    int
	HasGuess bool
}

// Validate checks the guess before the stake, matching the order the
// original command replied in.
func (g DiceBet) Validate() error {
	if !g.HasGuess {
		return &InvalidWagerError{Reason: "You must enter a number to bet on!"}
	}
	if g.Guess < 1 || g.Guess > 6 {
		return &InvalidWagerError{Reason: "You must enter a number between 1 and 6 to bet on!"}
	}
	if g.Bet < 1 {
		return &InvalidWagerError{Reason: "You must bet at least 1 coin!"}
	}
	return nil
}

func (g DiceBet) BetAmount() int64 { return g.Bet }

func (g DiceBet) Resolve(r Rand) Outcome {
	roll := r.Intn(6) + 1
	if roll == g.Guess {
		return Outcome{
			Won:    true,
			Payout: g.Bet * 6,
			XP:     progression.DiceBetWinXP,
			Roll:   roll,
		}
	}
	return Outcome{
		Payout: -g.Bet,
		XP:     progression.DiceBetLossXP,
		Roll:   roll,
	}
}
