package bot

import (
	"github.com/bwmarrin/discordgo"
)

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// isAdminMember reports whether the member may use administrative actions.
// The configured admin ID always passes regardless of roles.
func (b *Bot) isAdminMember(member *discordgo.Member, userID string) bool {
	if userID == b.config.AdminID {
		return true
	}
	if member == nil {
		return false
	}
	return member.Permissions&discordgo.PermissionAdministrator != 0
}
