package service

import (
	"context"

	"levelbot/events"
	"levelbot/games"
	"levelbot/models"
)

// UserRepository defines the interface for ledger data access
type UserRepository interface {
	// Create inserts a new ledger row with zeroed counters
	Create(ctx context.Context, username string) (*models.User, error)

	// GetByUsername retrieves a user, returning (nil, nil) when absent
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// AddXP atomically increments xp and returns the new total
	AddXP(ctx context.Context, username string, amount int64) (int64, error)

	// SetLevel persists a recomputed level
	SetLevel(ctx context.Context, username string, level int64) error

	// AddCoins atomically adjusts the balance; amount may be negative
	AddCoins(ctx context.Context, username string, amount int64) (int64, error)

	// DeductCoinsGuarded deducts only if the balance covers the amount
	DeductCoinsGuarded(ctx context.Context, username string, amount int64) (int64, error)

	// Count returns the number of ledger entries
	Count(ctx context.Context) (int64, error)

	// TopByXP returns the top n users by xp
	TopByXP(ctx context.Context, n int) ([]*models.User, error)
}

// UserService defines the interface for user lookups and creation
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates a fresh
	// ledger entry; a concurrent create is treated as a no-op
	GetOrCreateUser(ctx context.Context, username string) (*models.User, error)

	// GetUser retrieves a user, returning models.ErrUserNotFound when
	// there is no ledger entry
	GetUser(ctx context.Context, username string) (*models.User, error)

	// TotalUsers returns the number of ledger entries
	TotalUsers(ctx context.Context) (int64, error)

	// Leaderboard returns the top n users by xp
	Leaderboard(ctx context.Context, n int) ([]*models.User, error)
}

// EconomyService is the only component that mutates the ledger. It
// sequences reads, game resolution and writes for XP and coins.
type EconomyService interface {
	// AwardXP increments xp, recomputes the level from the previous
	// level and persists it only on a level-up. ChannelID is carried
	// into the level-up event for rendering.
	AwardXP(ctx context.Context, username string, amount int64, channelID string) (*models.XPAward, error)

	// CreditCoins adds coins to the balance
	CreditCoins(ctx context.Context, username string, amount int64) (int64, error)

	// DebitCoins removes coins from the balance, honoring the negative
	// balance policy
	DebitCoins(ctx context.Context, username string, amount int64) (int64, error)

	// GetBalance returns the current coin balance
	GetBalance(ctx context.Context, username string) (int64, error)

	// ResolveWager validates funds, resolves the game and applies the
	// outcome. Wagers for the same user are serialized.
	ResolveWager(ctx context.Context, username string, game games.Game, channelID string) (*models.WagerResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork represents a transactional boundary around repository
// operations. Events published through EventBus are held until Commit
// and dropped on Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() UserRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
