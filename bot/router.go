package bot

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

// commandHandler handles a single prefix command. args excludes the command
// word itself.
type commandHandler func(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string)

func (b *Bot) registerCommands() {
	b.commands = map[string]commandHandler{
		"hello":       b.cmdHello,
		"ping":        b.cmdPing,
		"totalusers":  b.cmdTotalUsers,
		"info":        b.cmdInfo,
		"8ball":       b.cmdEightBall,
		"xp":          b.cmdXP,
		"rank":        b.cmdRank,
		"leaderboard": b.cmdLeaderboard,
		"xp_give":     b.cmdXPGive,
		"coins":       b.cmdCoins,
		"roll":        b.cmdRoll,
		"coinflip":    b.cmdCoinflip,
		"flip":        b.cmdCoinflip,
		"roulette":    b.cmdRoulette,
		"rps":         b.cmdRPS,
	}
}

// handleMessage awards xp for every user message and dispatches prefix
// commands.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx := context.Background()
	username := m.Author.Username

	// First contact creates the ledger entry, so xp and commands never
	// operate on a missing row.
	if _, err := b.userService.GetOrCreateUser(ctx, username); err != nil {
		log.Errorf("Error ensuring ledger entry for %s: %v", username, err)
		return
	}

	if _, err := b.economyService.AwardXP(ctx, username, b.config.MessageXP, m.ChannelID); err != nil {
		log.Errorf("Error awarding message xp to %s: %v", username, err)
	}

	if !strings.HasPrefix(m.Content, b.config.CommandPrefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.config.CommandPrefix))
	if len(fields) == 0 {
		return
	}

	handler, ok := b.commands[strings.ToLower(fields[0])]
	if !ok {
		return
	}

	log.WithFields(log.Fields{
		"username": username,
		"command":  fields[0],
	}).Debug("Dispatching command")

	handler(ctx, s, m, fields[1:])
}
