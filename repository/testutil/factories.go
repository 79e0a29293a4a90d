package testutil

import (
	"time"

	"levelbot/models"
)

// CreateTestUser creates a test user with zeroed counters
func CreateTestUser(username string) *models.User {
	now := time.Now()
	return &models.User{
		Username:  username,
		Rank:      "Unranked",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestUserWithProgress creates a test user with xp, level and coins set
func CreateTestUserWithProgress(username string, xp, level, coins int64) *models.User {
	user := CreateTestUser(username)
	user.XP = xp
	user.Level = level
	user.Coins = coins
	return user
}
