package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"levelbot/models"

	"github.com/bwmarrin/discordgo"
)

// targetUsername resolves the optional username argument of lookup
// commands, defaulting to the message author.
func targetUsername(m *discordgo.MessageCreate, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return m.Author.Username
}

func (b *Bot) cmdXP(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	username := targetUsername(m, args)

	user, err := b.userService.GetUser(ctx, username)
	if errors.Is(err, models.ErrUserNotFound) {
		b.reply(s, m, fmt.Sprintf("No entry found for %s", username))
		return
	}
	if err != nil {
		log.Errorf("Error getting user %s: %v", username, err)
		b.reply(s, m, "Unable to look up XP. Please try again.")
		return
	}

	b.replyEmbed(s, m,
		fmt.Sprintf("%s's XP", username),
		fmt.Sprintf("XP: %d | Level: %d", user.XP, user.Level))
}

func (b *Bot) cmdRank(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	username := targetUsername(m, args)

	user, err := b.userService.GetUser(ctx, username)
	if errors.Is(err, models.ErrUserNotFound) {
		b.reply(s, m, fmt.Sprintf("No entry found for %s", username))
		return
	}
	if err != nil {
		log.Errorf("Error getting user %s: %v", username, err)
		b.reply(s, m, "Unable to look up rank. Please try again.")
		return
	}

	b.replyEmbed(s, m,
		fmt.Sprintf("%s's Rank", username),
		fmt.Sprintf("Rank: %s", user.Rank))
}

func (b *Bot) cmdLeaderboard(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	users, err := b.userService.Leaderboard(ctx, b.config.LeaderboardSize)
	if err != nil {
		log.Errorf("Error getting leaderboard: %v", err)
		b.reply(s, m, "Unable to load the leaderboard. Please try again.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Server Leaderboard",
		Color: colorPrimary,
	}
	for i, user := range users {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%d. %s", i+1, user.Username),
			Value:  fmt.Sprintf("XP: %d | Level: %d", user.XP, user.Level),
			Inline: false,
		})
	}

	if _, err := s.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference()); err != nil {
		log.Errorf("Error sending leaderboard: %v", err)
	}
}

func (b *Bot) cmdXPGive(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		b.reply(s, m, fmt.Sprintf("Usage: %sxp_give <username> <xp>", b.config.CommandPrefix))
		return
	}

	username := args[0]
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		b.reply(s, m, "XP amount must be a number")
		return
	}

	_, err = b.economyService.AwardXP(ctx, username, amount, m.ChannelID)
	if errors.Is(err, models.ErrUserNotFound) {
		b.reply(s, m, fmt.Sprintf("No entry found for %s", username))
		return
	}
	if err != nil {
		log.Errorf("Error giving xp to %s: %v", username, err)
		b.reply(s, m, "Unable to give XP. Please try again.")
	}
}
