package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"levelbot/games"
	"levelbot/models"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) cmdCoins(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	balance, err := b.economyService.GetBalance(ctx, m.Author.Username)
	if errors.Is(err, models.ErrUserNotFound) {
		b.reply(s, m, fmt.Sprintf("No entry found for %s", m.Author.Username))
		return
	}
	if err != nil {
		log.Errorf("Error getting balance for %s: %v", m.Author.Username, err)
		b.reply(s, m, "Unable to look up coins. Please try again.")
		return
	}

	b.replyEmbed(s, m,
		fmt.Sprintf("%s's Coins", m.Author.Username),
		fmt.Sprintf("Coins: %d", balance))
}

func (b *Bot) cmdRoll(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	username := m.Author.Username

	// Without a bet this is a free roll.
	if len(args) == 0 {
		result, err := b.economyService.ResolveWager(ctx, username, games.DiceRoll{}, m.ChannelID)
		if err != nil {
			b.renderWagerError(ctx, s, m, "Roll", err)
			return
		}
		b.replyEmbed(s, m, "Roll", fmt.Sprintf("You rolled a %d!", result.Outcome.Roll))
		return
	}

	bet, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.replyEmbed(s, m, "Roll", "Your bet must be a number!")
		return
	}

	game := games.DiceBet{Bet: bet}
	if len(args) > 1 {
		guess, err := strconv.Atoi(args[1])
		if err != nil {
			b.replyEmbed(s, m, "Roll", "You must enter a number between 1 and 6 to bet on!")
			return
		}
		game.Guess = guess
		game.HasGuess = true
	}

	result, err := b.economyService.ResolveWager(ctx, username, game, m.ChannelID)
	if err != nil {
		b.renderWagerError(ctx, s, m, "Roll", err)
		return
	}

	if result.Outcome.Won {
		b.replyEmbed(s, m, "Roll", fmt.Sprintf(
			"You rolled a %d and won %d coins! You now have %d coins!",
			result.Outcome.Roll, result.Outcome.Payout, result.NewBalance))
	} else {
		b.replyEmbed(s, m, "Roll", fmt.Sprintf(
			"You rolled a %d and lost %d coins! You now have %d coins!",
			result.Outcome.Roll, bet, result.NewBalance))
	}
}

func (b *Bot) cmdCoinflip(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m, fmt.Sprintf("Usage: %scoinflip <bet>", b.config.CommandPrefix))
		return
	}

	bet, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.replyEmbed(s, m, "Invalid Bet", "Your bet must be a number!")
		return
	}

	result, err := b.economyService.ResolveWager(ctx, m.Author.Username, games.Coinflip{Bet: bet}, m.ChannelID)
	if err != nil {
		b.renderWagerError(ctx, s, m, "Coinflip", err)
		return
	}

	if result.Outcome.Won {
		b.replyEmbed(s, m, "Coinflip", fmt.Sprintf(
			"You **won** %d coins! Your balance is now: %d coins.", bet, result.NewBalance))
	} else {
		b.replyEmbed(s, m, "Coinflip", fmt.Sprintf(
			"You lost %d coins. Your balance is now: %d coins.", bet, result.NewBalance))
	}
}

func (b *Bot) cmdRoulette(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m, fmt.Sprintf("Usage: %sroulette <bet>", b.config.CommandPrefix))
		return
	}

	bet, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.replyEmbed(s, m, "Invalid Bet", "Your bet must be a number!")
		return
	}

	result, err := b.economyService.ResolveWager(ctx, m.Author.Username, games.Roulette{Bet: bet}, m.ChannelID)
	if err != nil {
		b.renderWagerError(ctx, s, m, "Roulette", err)
		return
	}

	if result.Outcome.Won {
		b.replyEmbed(s, m, "Roulette", fmt.Sprintf(
			"You **won** %d coins! Your balance is now: %d coins.", result.Outcome.Payout, result.NewBalance))
	} else {
		b.replyEmbed(s, m, "Roulette", fmt.Sprintf(
			"You lost %d coins. Your balance is now: %d coins.", bet, result.NewBalance))
	}
}

func (b *Bot) cmdRPS(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m, fmt.Sprintf("Usage: %srps <rock|paper|scissors>", b.config.CommandPrefix))
		return
	}

	choice, ok := games.ParseChoice(strings.ToLower(args[0]))
	if !ok {
		b.reply(s, m, "You must choose rock, paper or scissors!")
		return
	}

	result, err := b.economyService.ResolveWager(ctx, m.Author.Username, games.RockPaperScissors{Player: choice}, m.ChannelID)
	if err != nil {
		b.renderWagerError(ctx, s, m, "Rock Paper Scissors", err)
		return
	}

	out := result.Outcome
	switch {
	case out.Tie:
		b.replyEmbed(s, m, "Rock Paper Scissors", fmt.Sprintf(
			"We both chose %s. It's a tie!", out.BotChoice))
	case out.Won:
		b.replyEmbed(s, m, "Rock Paper Scissors", fmt.Sprintf(
			"%s beats %s. You won %d coins! You now have %d coins.",
			out.UserChoice, out.BotChoice, out.Payout, result.NewBalance))
	default:
		b.replyEmbed(s, m, "Rock Paper Scissors", fmt.Sprintf(
			"%s beats %s. You lose!", out.BotChoice, out.UserChoice))
	}
}

// renderWagerError turns engine errors into the replies users see. All of
// these are recoverable; nothing here stops the bot.
func (b *Bot) renderWagerError(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, title string, err error) {
	var invalid *games.InvalidWagerError
	switch {
	case errors.As(err, &invalid):
		b.replyEmbed(s, m, title, invalid.Reason)
	case errors.Is(err, models.ErrInsufficientFunds):
		balance, balErr := b.economyService.GetBalance(ctx, m.Author.Username)
		if balErr != nil {
			b.replyEmbed(s, m, "Insufficient Coins", "Not enough coins!")
			return
		}
		b.replyEmbed(s, m, "Insufficient Coins", fmt.Sprintf("You only have %d coins!", balance))
	case errors.Is(err, models.ErrUserNotFound):
		b.reply(s, m, fmt.Sprintf("No entry found for %s", m.Author.Username))
	default:
		log.Errorf("Error resolving wager for %s: %v", m.Author.Username, err)
		b.replyEmbed(s, m, title, "Something went wrong. Please try again.")
	}
}
