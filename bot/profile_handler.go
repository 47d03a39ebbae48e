package bot

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"
	"starosta/models"
	"starosta/service"

	"github.com/bwmarrin/discordgo"
)

// optionUser extracts an optional user option, defaulting to the caller.
func optionUser(s *discordgo.Session, i *discordgo.InteractionCreate, name string) *discordgo.User {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(s)
		}
	}
	return i.Member.User
}

func (b *Bot) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := optionUser(s, i, "user")
	profile := b.progression.Profile(target.ID)
	displayName := GetDisplayName(s, i.GuildID, target.ID)

	needed := service.NeededXP(profile.Level)
	progress := fmt.Sprintf("%s\n%s / %s XP",
		progressBar(profile.XP, needed), common.FormatChips(profile.XP), common.FormatChips(needed))

	fields := []*discordgo.MessageEmbedField{
		{Name: "Level", Value: fmt.Sprintf("%d", profile.Level), Inline: true},
		{Name: "Progress", Value: progress, Inline: true},
		{Name: "Voice minutes", Value: fmt.Sprintf("%d", profile.VoiceMinutes), Inline: true},
		{Name: "Chips", Value: common.FormatChips(profile.Chips), Inline: true},
	}

	if tier, ok := b.progression.RoleForLevel(profile.Level); ok {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Rank", Value: tier.Name, Inline: true,
		})
	}

	if booster, remaining := profile.ActiveBooster(time.Now().Unix()); booster != "" {
		expiry := time.Now().Add(time.Duration(remaining) * time.Second)
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "XP booster",
			Value:  fmt.Sprintf("%s, expires %s", boosterLabel(models.BoosterTier(booster)), common.FormatDiscordTimestamp(expiry, "R")),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("📊 %s", displayName),
		Color:  0x3498DB,
		Fields: fields,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: target.AvatarURL("256"),
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to rank command: %v", err)
	}
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries := b.progression.Leaderboard(10)
	if len(entries) == 0 {
		common.RespondWithError(s, i, "Nobody has earned any XP yet.")
		return
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var sb strings.Builder
	for idx, entry := range entries {
		marker := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			marker = medals[idx]
		}
		sb.WriteString(fmt.Sprintf("%s <@%s> — level **%d** (%s XP)\n",
			marker, entry.UserID, entry.Level, common.FormatChips(entry.XP)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: sb.String(),
		Color:       0xF1C40F,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}

func (b *Bot) handleAvatar(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := optionUser(s, i, "user")
	displayName := GetDisplayName(s, i.GuildID, target.ID)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's avatar", displayName),
		Color: 0x3498DB,
		Image: &discordgo.MessageEmbedImage{
			URL: target.AvatarURL("1024"),
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to avatar command: %v", err)
	}
}

func (b *Bot) handlePoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var question string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "question" {
			question = opt.StringValue()
		}
	}
	if strings.TrimSpace(question) == "" {
		common.RespondWithError(s, i, "Poll question cannot be empty.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Poll",
		Description: question,
		Color:       0x9B59B6,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Asked by %s", GetDisplayName(s, i.GuildID, i.Member.User.ID)),
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to poll command: %v", err)
		return
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error fetching poll message: %v", err)
		return
	}
	for _, emoji := range []string{"👍", "👎"} {
		if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			log.Errorf("Error adding poll reaction: %v", err)
		}
	}
}

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title: "📖 Commands",
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Progression",
				Value: "`/rank` — your level and balance\n" +
					"`/leaderboard` — top members",
			},
			{
				Name: "Economy",
				Value: "`/daily` — claim the daily bonus\n" +
					"`/casino <amount>` — wager chips\n" +
					"`/blackjack <bet>` — play blackjack\n" +
					"`/shop` — booster shop\n" +
					"`/buy_booster <tier>` — buy an XP booster",
			},
			{
				Name: "Community",
				Value: "`/birthday set|remove|list` — birthday calendar\n" +
					"`/poll <question>` — yes/no poll\n" +
					"`/avatar [user]` — show an avatar\n" +
					"Post in the suggestion channel to submit an idea",
			},
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to help command: %v", err)
	}
}

func (b *Bot) handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := s.State.Guild(i.GuildID)
	memberCount := 0
	if err == nil {
		memberCount = guild.MemberCount
	}

	tiers := b.progression.Tiers()
	var tierList strings.Builder
	for _, t := range tiers {
		tierList.WriteString(fmt.Sprintf("Level %d — %s\n", t.MinLevel, t.Name))
	}

	embed := &discordgo.MessageEmbed{
		Title: "ℹ️ Server info",
		Color: 0x2ECC71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Members", Value: fmt.Sprintf("%d", memberCount), Inline: true},
			{Name: "Role tiers", Value: tierList.String()},
		},
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to info command: %v", err)
	}
}

// boosterLabel renders a booster tier for display.
func boosterLabel(tier models.BoosterTier) string {
	return strings.ToUpper(string(tier))
}

// progressBar renders a ten-segment bar of progress towards the next level.
func progressBar(current, needed int64) string {
	filled := 0
	if needed > 0 {
		filled = int(current * 10 / needed)
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
}
