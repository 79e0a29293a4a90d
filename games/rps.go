package games

// Choice is a rock-paper-scissors throw.
type Choice int

const (
	Rock Choice = iota
	Paper
	Scissors
)

func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	}
	return "unknown"
}

// ParseChoice maps user input to a Choice.
func ParseChoice(s string) (Choice, bool) {
	switch s {
	case "rock", "r":
		return Rock, true
	case "paper", "p":
		return Paper, true
	case "scissors", "s":
		return Scissors, true
	}
	return 0, false
}

// RPSWinCoins is the flat payout for beating the bot.
const RPSWinCoins int64 = 5

// RockPaperScissors plays a round against the bot. There is no stake: a
// win pays a flat 5 coins, a tie or loss pays nothing, and no XP is
// awarded for this game.
type RockPaperScissors struct {
	Player Choice
}

func (RockPaperScissors) Validate() error { return nil }

func (RockPaperScissors) BetAmount() int64 { return 0 }

func (g RockPaperScissors) Resolve(r Rand) Outcome {
	bot := Choice(r.Intn(3))
	out := Outcome{
		BotChoice:  bot,
		UserChoice: g.Player,
	}
	switch {
	case g.Player == bot:
		out.Tie = true
	case beats(g.Player, bot):
		out.Won = true
		out.Payout = RPSWinCoins
	}
	return out
}

func beats(a, b Choice) bool {
	return (a == Rock && b == Scissors) ||
		(a == Paper && b == Rock) ||
		(a == Scissors && b == Paper)
}
