package service

import (
	"context"
	"fmt"

	"levelbot/events"
	"levelbot/games"
	"levelbot/models"
	"levelbot/progression"

	log "github.com/sirupsen/logrus"
)

// economyService implements the EconomyService interface. All ledger
// mutations flow through here, serialized per username and applied
// inside a unit of work so partial writes never land.
type economyService struct {
	uowFactory UnitOfWorkFactory
	rand       games.Rand

	// allowNegative preserves the historical debit behavior of never
	// clamping at zero. When false, debits go through the guarded
	// decrement and fail instead of overdrawing.
	allowNegative bool

	locks userLocks
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory, rand games.Rand, allowNegative bool) EconomyService {
	return &economyService{
		uowFactory:    uowFactory,
		rand:          rand,
		allowNegative: allowNegative,
	}
}

// AwardXP increments a user's xp and recomputes the level using the level
// held before this award. The level write happens only on a level-up, and
// both writes commit together.
func (s *economyService) AwardXP(ctx context.Context, username string, amount int64, channelID string) (*models.XPAward, error) {
	mu := s.locks.lock(username)
	defer mu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	award, err := s.awardXP(ctx, uow, username, amount, channelID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return award, nil
}

// awardXP applies an xp award inside an already started unit of work with
// the per-user lock held.
func (s *economyService) awardXP(ctx context.Context, uow UnitOfWork, username string, amount int64, channelID string) (*models.XPAward, error) {
	repo := uow.UserRepository()

	newXP, err := repo.AddXP(ctx, username, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add xp: %w", err)
	}

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	newLevel, leveledUp := progression.Advance(newXP, user.Level)
	if leveledUp {
		if err := repo.SetLevel(ctx, username, newLevel); err != nil {
			return nil, fmt.Errorf("failed to set level: %w", err)
		}

		log.WithFields(log.Fields{
			"username": username,
			"newLevel": newLevel,
		}).Info("User leveled up")

		uow.EventBus().Publish(events.LevelUpEvent{
			Username:  username,
			NewLevel:  newLevel,
			ChannelID: channelID,
		})
	}

	return &models.XPAward{
		Username:  username,
		NewXP:     newXP,
		NewLevel:  newLevel,
		LeveledUp: leveledUp,
	}, nil
}

// CreditCoins adds coins to a user's balance.
func (s *economyService) CreditCoins(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive")
	}

	mu := s.locks.lock(username)
	defer mu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.UserRepository().AddCoins(ctx, username, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit coins: %w", err)
	}

	uow.EventBus().Publish(events.CoinsAwardedEvent{
		Username:   username,
		Amount:     amount,
		NewBalance: newBalance,
	})

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return newBalance, nil
}

// DebitCoins removes coins from a user's balance. With the allow-negative
// policy the balance may drop below zero; otherwise the debit fails with
// models.ErrInsufficientFunds.
func (s *economyService) DebitCoins(ctx context.Context, username string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive")
	}

	mu := s.locks.lock(username)
	defer mu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	var newBalance int64
	var err error
	if s.allowNegative {
		newBalance, err = uow.UserRepository().AddCoins(ctx, username, -amount)
		if err != nil {
			return 0, fmt.Errorf("failed to debit coins: %w", err)
		}
	} else {
		newBalance, err = uow.UserRepository().DeductCoinsGuarded(ctx, username, amount)
		if err != nil {
			return 0, err
		}
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return newBalance, nil
}

// GetBalance returns the current coin balance.
func (s *economyService) GetBalance(ctx context.Context, username string) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, models.ErrUserNotFound
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return user.Coins, nil
}

// ResolveWager validates the game, checks funds, resolves the outcome and
// applies coins and xp in one transaction. The per-user lock is held
// across the whole check-resolve-apply sequence, so two concurrent wagers
// with bet equal to the balance can never both succeed.
func (s *economyService) ResolveWager(ctx context.Context, username string, game games.Game, channelID string) (*models.WagerResult, error) {
	if err := game.Validate(); err != nil {
		return nil, err
	}

	mu := s.locks.lock(username)
	defer mu.Unlock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	repo := uow.UserRepository()

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	// Funds check short-circuits before any xp or coin mutation.
	if bet := game.BetAmount(); bet > 0 && user.Coins < bet {
		return nil, models.ErrInsufficientFunds
	}

	outcome := game.Resolve(s.rand)

	result := &models.WagerResult{
		Outcome:    outcome,
		NewBalance: user.Coins,
		NewXP:      user.XP,
		NewLevel:   user.Level,
	}

	if outcome.Payout != 0 {
		newBalance, err := repo.AddCoins(ctx, username, outcome.Payout)
		if err != nil {
			return nil, fmt.Errorf("failed to apply payout: %w", err)
		}
		result.NewBalance = newBalance
	}

	if outcome.XP > 0 {
		award, err := s.awardXP(ctx, uow, username, outcome.XP, channelID)
		if err != nil {
			return nil, fmt.Errorf("failed to award wager xp: %w", err)
		}
		result.NewXP = award.NewXP
		result.NewLevel = award.NewLevel
		result.LeveledUp = award.LeveledUp
	}

	log.WithFields(log.Fields{
		"username": username,
		"won":      outcome.Won,
		"payout":   outcome.Payout,
		"balance":  result.NewBalance,
	}).Info("Wager resolved")

	uow.EventBus().Publish(events.WagerResolvedEvent{
		Username:   username,
		Outcome:    outcome,
		NewBalance: result.NewBalance,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return result, nil
}
