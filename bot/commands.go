package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	adminPerms := int64(discordgo.PermissionAdministrator)

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "rank",
			Description: "Show a member's level, XP and balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member to look up (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the top members by level",
		},
		{
			Name:        "daily",
			Description: "Claim your daily chip bonus",
		},
		{
			Name:        "casino",
			Description: "Wager chips against the house",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of chips to wager",
					Required:    true,
				},
			},
		},
		{
			Name:        "blackjack",
			Description: "Play a round of blackjack",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bet",
					Description: "Amount of chips to bet",
					Required:    true,
				},
			},
		},
		{
			Name:        "shop",
			Description: "Show the XP booster shop",
		},
		{
			Name:        "buy_booster",
			Description: "Buy an XP booster",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tier",
					Description: "Booster tier",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "x2 (24h)", Value: "x2"},
						{Name: "x5 (24h)", Value: "x5"},
					},
				},
			},
		},
		{
			Name:        "birthday",
			Description: "Manage your birthday",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Set your birthday",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "day",
							Description: "Day of the month",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "month",
							Description: "Month",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove your birthday",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show the birthday calendar",
				},
			},
		},
		{
			Name:        "avatar",
			Description: "Show a member's avatar",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Member whose avatar to show (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "poll",
			Description: "Create a yes/no poll",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "question",
					Description: "Poll question",
					Required:    true,
				},
			},
		},
		{
			Name:        "help",
			Description: "Show the command overview",
		},
		{
			Name:        "info",
			Description: "Show bot and server info",
		},
		{
			Name:                     "admin",
			Description:              "Administration commands",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set_level",
					Description: "Override a member's level",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "level", Description: "New level", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set_xp",
					Description: "Override a member's carried XP",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "xp", Description: "New XP", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set_chips",
					Description: "Override a member's chip balance",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "chips", Description: "New balance", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "announce",
					Description: "Post an announcement in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "Announcement text", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "purge",
					Description: "Delete up to 100 recent messages",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "count", Description: "How many messages", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "mute",
					Description: "Mute a member",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "minutes", Description: "Duration in minutes", Required: true},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "What to mute (defaults to text)",
							Required:    false,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "text", Value: "text"},
								{Name: "voice", Value: "voice"},
								{Name: "all", Value: "all"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "unmute",
					Description: "Lift a member's mute",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "mode",
							Description: "What to unmute (defaults to all)",
							Required:    false,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "text", Value: "text"},
								{Name: "voice", Value: "voice"},
								{Name: "all", Value: "all"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clean",
					Description: "Delete the bot's own recent messages in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup_roles",
					Description: "Create the level role tiers in this server",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "autorole",
					Description: "Set the role granted to new members",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to grant (omit to disable)", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "banword",
					Description: "Manage the banned word list",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "action",
							Description: "What to do",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "add", Value: "add"},
								{Name: "remove", Value: "remove"},
								{Name: "list", Value: "list"},
							},
						},
						{Type: discordgo.ApplicationCommandOptionString, Name: "word", Description: "Word (for add/remove)", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "suggest_channel",
					Description: "Enable or disable suggestion collection in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "action",
							Description: "What to do",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "enable", Value: "enable"},
								{Name: "disable", Value: "disable"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "inactive",
					Description: "Strip tier roles from members without a message in the given number of days",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "days", Description: "Inactivity threshold in days", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "birthdays",
					Description: "Show the full birthday calendar with user IDs",
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
