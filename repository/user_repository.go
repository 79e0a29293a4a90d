package repository

import (
	"context"
	"errors"
	"fmt"

	"levelbot/database"
	"levelbot/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// queryable abstracts the pgx pool and transactions.
type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserRepository provides access to the users ledger table.
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a user repository backed by the pool.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a user repository bound to a transaction.
func newUserRepositoryWithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `username, xp, level, coins, "rank", created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.Username,
		&user.XP,
		&user.Level,
		&user.Coins,
		&user.Rank,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new ledger row with zeroed counters. Returns
// models.ErrDuplicateUser if the username is already present.
func (r *UserRepository) Create(ctx context.Context, username string) (*models.User, error) {
	query := `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, models.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username, returning (nil, nil) if no
// ledger entry exists.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
	`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}

	return user, nil
}

// AddXP atomically increments a user's xp and returns the new total.
func (r *UserRepository) AddXP(ctx context.Context, username string, amount int64) (int64, error) {
	query := `
		UPDATE users
		SET xp = xp + $1, updated_at = NOW()
		WHERE username = $2
		RETURNING xp
	`

	var newXP int64
	err := r.q.QueryRow(ctx, query, amount, username).Scan(&newXP)
	if err == pgx.ErrNoRows {
		return 0, models.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add xp for user %s: %w", username, err)
	}

	return newXP, nil
}

// SetLevel persists a recomputed level.
func (r *UserRepository) SetLevel(ctx context.Context, username string, level int64) error {
	query := `
		UPDATE users
		SET level = $1, updated_at = NOW()
		WHERE username = $2
	`

	result, err := r.q.Exec(ctx, query, level, username)
	if err != nil {
		return fmt.Errorf("failed to set level for user %s: %w", username, err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// AddCoins atomically adjusts a user's balance. The amount may be negative;
// this path never clamps, so the balance can go below zero.
func (r *UserRepository) AddCoins(ctx context.Context, username string, amount int64) (int64, error) {
	query := `
		UPDATE users
		SET coins = coins + $1, updated_at = NOW()
		WHERE username = $2
		RETURNING coins
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, username).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		return 0, models.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add coins for user %s: %w", username, err)
	}

	return newBalance, nil
}

// DeductCoinsGuarded deducts only if the balance covers the amount, in a
// single conditional update so concurrent debits cannot jointly overdraw.
func (r *UserRepository) DeductCoinsGuarded(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE users
		SET coins = coins - $1, updated_at = NOW()
		WHERE username = $2 AND coins >= $1
		RETURNING coins
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, amount, username).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Distinguish a missing user from a short balance.
		user, getErr := r.GetByUsername(ctx, username)
		if getErr != nil {
			return 0, fmt.Errorf("failed to check user: %w", getErr)
		}
		if user == nil {
			return 0, models.ErrUserNotFound
		}
		return 0, models.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf("failed to deduct coins for user %s: %w", username, err)
	}

	return newBalance, nil
}

// Count returns the number of ledger entries.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// TopByXP returns the top n users by xp, ties broken by creation order.
func (r *UserRepository) TopByXP(ctx context.Context, n int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY xp DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.Username,
			&user.XP,
			&user.Level,
			&user.Coins,
			&user.Rank,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
