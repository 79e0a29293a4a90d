package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) cmdHello(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	b.reply(s, m, fmt.Sprintf("Hello %s!", m.Author.Mention()))
}

func (b *Bot) cmdPing(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	b.reply(s, m, fmt.Sprintf("Pong! %dms", s.HeartbeatLatency().Milliseconds()))
}

func (b *Bot) cmdTotalUsers(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	count, err := b.userService.TotalUsers(ctx)
	if err != nil {
		log.Errorf("Error counting users: %v", err)
		b.reply(s, m, "Unable to count users. Please try again.")
		return
	}
	b.reply(s, m, fmt.Sprintf("There are %d users in the database", count))
}

func (b *Bot) cmdInfo(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	p := b.config.CommandPrefix
	embed := &discordgo.MessageEmbed{
		Title:       "Info",
		Description: "This command displays all the commands available to use with this bot",
		Color:       colorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: p + "xp", Value: "Shows your XP and level", Inline: false},
			{Name: p + "rank", Value: "Shows your rank", Inline: false},
			{Name: p + "leaderboard", Value: "Shows the top users by XP", Inline: false},
			{Name: p + "coins", Value: "Shows your coin balance", Inline: false},
			{Name: p + "roll [bet] [number]", Value: "Rolls a die, optionally betting coins on a number", Inline: false},
			{Name: p + "coinflip <bet>", Value: "Flips a coin for your bet", Inline: false},
			{Name: p + "roulette <bet>", Value: "Spins the wheel for your bet", Inline: false},
			{Name: p + "rps <rock|paper|scissors>", Value: "Plays rock paper scissors against the bot", Inline: false},
			{Name: p + "8ball <question>", Value: "Answers a question", Inline: false},
		},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Errorf("Error sending info embed: %v", err)
	}
}

var eightBallResponses = []string{
	"It is certain.",
	"It is decidedly so.",
	"Without a doubt.",
	"Yes – definitely.",
	"You may rely on it.",
	"As I see it, yes.",
	"Most likely.",
	"Outlook good.",
	"Yes.",
	"Signs point to yes.",
	"Reply hazy, try again.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Concentrate and ask again.",
	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

func (b *Bot) cmdEightBall(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m, "You must ask a question!")
		return
	}

	question := strings.Join(args, " ")
	answer := eightBallResponses[rand.Intn(len(eightBallResponses))]
	b.replyEmbed(s, m, fmt.Sprintf("Question: %s", question), fmt.Sprintf("Answer: %s", answer))
}
