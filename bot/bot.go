package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot/events"
	"levelbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token           string
	CommandPrefix   string
	LeaderboardSize int
	MessageXP       int64
}

type Bot struct {
	config         Config
	session        *discordgo.Session
	userService    service.UserService
	economyService service.EconomyService
	eventBus       *events.Bus
	commands       map[string]commandHandler
}

func New(config Config, userService service.UserService, economyService service.EconomyService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		config:         config,
		session:        dg,
		userService:    userService,
		economyService: economyService,
		eventBus:       eventBus,
	}
	bot.registerCommands()

	dg.AddHandler(bot.handleMessage)
	dg.AddHandler(bot.handleMemberJoin)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("%s is now online", r.User.Username)
	})

	// Level-ups are announced in the channel the triggering activity
	// happened in.
	eventBus.Subscribe(events.EventTypeLevelUp, func(ctx context.Context, event events.Event) {
		levelUp, ok := event.(events.LevelUpEvent)
		if !ok {
			return
		}
		bot.announceLevelUp(levelUp)
	})

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleMemberJoin creates a ledger entry when a user joins the server.
func (b *Bot) handleMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	ctx := context.Background()

	if _, err := b.userService.GetOrCreateUser(ctx, m.User.Username); err != nil {
		log.Errorf("Error creating ledger entry for %s: %v", m.User.Username, err)
	}
}

func (b *Bot) announceLevelUp(levelUp events.LevelUpEvent) {
	if levelUp.ChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Level Up!",
		Description: fmt.Sprintf("%s has leveled up to level %d!", levelUp.Username, levelUp.NewLevel),
		Color:       colorSuccess,
	}
	if _, err := b.session.ChannelMessageSendEmbed(levelUp.ChannelID, embed); err != nil {
		log.Errorf("Error sending level up message: %v", err)
	}
}
