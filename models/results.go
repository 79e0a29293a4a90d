package models

import (
	"levelbot/games"
)

// XPAward is the result of crediting experience to a user.
type XPAward struct {
	Username  string
	NewXP     int64
	NewLevel  int64
	LeveledUp bool
}

// WagerResult combines a game outcome with the ledger state after the
// outcome has been applied.
type WagerResult struct {
	Outcome    games.Outcome
	NewBalance int64
	NewXP      int64
	NewLevel   int64
	LeveledUp  bool
}
