package models

import (
	"time"
)

// User is the per-user ledger row: experience, cached level, coin balance
// and an externally assigned rank. Keyed by Discord username.
type User struct {
	Username  string    `db:"username"`
	XP        int64     `db:"xp"`
	Level     int64     `db:"level"`
	Coins     int64     `db:"coins"`
	Rank      string    `db:"rank"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
