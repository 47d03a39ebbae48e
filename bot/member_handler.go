package bot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

// handleMemberAdd welcomes a new member and grants the configured auto-role.
func (b *Bot) handleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}

	if roleID, ok := b.autoRoles.Get(m.GuildID); ok {
		if err := s.GuildMemberRoleAdd(m.GuildID, m.User.ID, roleID); err != nil {
			log.Errorf("Failed to grant auto-role to new member %s: %v", m.User.ID, err)
		}
	}

	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild.SystemChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "👋 Welcome!",
		Description: fmt.Sprintf("<@%s> joined the village. Say hi!\nStart with `/help` to see what's around.", m.User.ID),
		Color:       0x2ECC71,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("256"),
		},
	}
	if _, err := s.ChannelMessageSendEmbed(guild.SystemChannelID, embed); err != nil {
		log.Errorf("Failed to send welcome message: %v", err)
	}
}
