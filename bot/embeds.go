package bot

import (
	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

const (
	colorPrimary = 0x02F0FF
	colorSuccess = 0x2ECC71
)

func (b *Bot) replyEmbed(s *discordgo.Session, m *discordgo.MessageCreate, title, description string) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorPrimary,
	}
	_, err := s.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference())
	if err != nil {
		log.Errorf("Error sending embed reply: %v", err)
	}
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	_, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		log.Errorf("Error sending reply: %v", err)
	}
}
