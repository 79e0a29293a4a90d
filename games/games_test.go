package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand returns a fixed sequence of draws so outcomes are forced.
type scriptedRand struct {
	values []int
	i      int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.values[s.i]
	s.i++
	return v % n
}

func TestDiceRoll(t *testing.T) {
	g := DiceRoll{}
	require.NoError(t, g.Validate())
	assert.Equal(t, int64(0), g.BetAmount())

	out := g.Resolve(&scriptedRand{values: []int{3}})
	assert.Equal(t, 4, out.Roll)
	assert.Equal(t, int64(5), out.XP)
	assert.Equal(t, int64(0), out.Payout)
	assert.False(t, out.Won)
}

func TestDiceBet_Validation(t *testing.T) {
	tests := []struct {
		name    string
		game    DiceBet
		wantMsg string
	}{
		{
			name:    "missing guess",
			game:    DiceBet{Bet: 10},
			wantMsg: "You must enter a number to bet on!",
		},
		{
			name:    "guess out of range",
			game:    DiceBet{Bet: 10, Guess: 7, HasGuess: true},
			wantMsg: "You must enter a number between 1 and 6 to bet on!",
		},
		{
			name:    "bet below minimum",
			game:    DiceBet{Bet: 0, Guess: 4, HasGuess: true},
			wantMsg: "You must bet at least 1 coin!",
		},
		{
			// guess is checked before the stake
			name:    "bad guess and bad bet reports guess",
			game:    DiceBet{Bet: 0, Guess: 9, HasGuess: true},
			wantMsg: "You must enter a number between 1 and 6 to bet on!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.game.Validate()
			require.Error(t, err)
			var invalid *InvalidWagerError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantMsg, invalid.Reason)
		})
	}

	assert.NoError(t, DiceBet{Bet: 1, Guess: 6, HasGuess: true}.Validate())
}

func TestDiceBet_Resolve(t *testing.T) {
	g := DiceBet{Bet: 10, Guess: 4, HasGuess: true}

	t.Run("win pays six times the stake", func(t *testing.T) {
		out := g.Resolve(&scriptedRand{values: []int{3}}) // roll 4
		assert.True(t, out.Won)
		assert.Equal(t, int64(60), out.Payout)
		assert.Equal(t, int64(10), out.XP)
		assert.Equal(t, 4, out.Roll)
	})

	t.Run("loss forfeits the stake", func(t *testing.T) {
		out := g.Resolve(&scriptedRand{values: []int{0}}) // roll 1
		assert.False(t, out.Won)
		assert.Equal(t, int64(-10), out.Payout)
		assert.Equal(t, int64(5), out.XP)
		assert.Equal(t, 1, out.Roll)
	})
}

func TestCoinflip(t *testing.T) {
	require.Error(t, Coinflip{Bet: 0}.Validate())
	require.Error(t, Coinflip{Bet: -5}.Validate())
	require.NoError(t, Coinflip{Bet: 5}.Validate())

	g := Coinflip{Bet: 5}

	t.Run("equal bits win the stake", func(t *testing.T) {
		out := g.Resolve(&scriptedRand{values: []int{1, 1}})
		assert.True(t, out.Won)
		assert.Equal(t, int64(5), out.Payout)
		assert.Equal(t, int64(10), out.XP)
	})

	t.Run("unequal bits lose the stake", func(t *testing.T) {
		out := g.Resolve(&scriptedRand{values: []int{0, 1}})
		assert.False(t, out.Won)
		assert.Equal(t, int64(-5), out.Payout)
		assert.Equal(t, int64(10), out.XP)
	})
}

func TestRoulette(t *testing.T) {
	require.Error(t, Roulette{Bet: 0}.Validate())
	require.NoError(t, Roulette{Bet: 9}.Validate())

	g := Roulette{Bet: 9}

	t.Run("match pays triple", func(t *testing.T) {
		out := g.Resolve(&scriptedRand{values: []int{3, 3}})
		assert.True(t, out.Won)
		assert.Equal(t, int64(27), out.Payout)
		assert.Equal(t, int64(15), out.XP)
	})

	t.Run("miss forfeits the stake", func(t *testing.T) {
		out := g.Resolve(&scriptedRand{values: []int{2, 5}})
		assert.False(t, out.Won)
		assert.Equal(t, int64(-9), out.Payout)
		assert.Equal(t, int64(15), out.XP)
		assert.Equal(t, 2, out.Roll)
		assert.Equal(t, 5, out.Winning)
	})
}

func TestRockPaperScissors(t *testing.T) {
	t.Run("win pays flat coins and no xp", func(t *testing.T) {
		g := RockPaperScissors{Player: Rock}
		out := g.Resolve(&scriptedRand{values: []int{int(Scissors)}})
		assert.True(t, out.Won)
		assert.Equal(t, int64(5), out.Payout)
		assert.Equal(t, int64(0), out.XP)
		assert.Equal(t, Scissors, out.BotChoice)
	})

	t.Run("tie pays nothing", func(t *testing.T) {
		g := RockPaperScissors{Player: Paper}
		out := g.Resolve(&scriptedRand{values: []int{int(Paper)}})
		assert.True(t, out.Tie)
		assert.Equal(t, int64(0), out.Payout)
	})

	t.Run("loss pays nothing", func(t *testing.T) {
		g := RockPaperScissors{Player: Scissors}
		out := g.Resolve(&scriptedRand{values: []int{int(Rock)}})
		assert.False(t, out.Won)
		assert.False(t, out.Tie)
		assert.Equal(t, int64(0), out.Payout)
	})
}

func TestParseChoice(t *testing.T) {
	c, ok := ParseChoice("rock")
	require.True(t, ok)
	assert.Equal(t, Rock, c)

	c, ok = ParseChoice("s")
	require.True(t, ok)
	assert.Equal(t, Scissors, c)

	_, ok = ParseChoice("lizard")
	assert.False(t, ok)
}
