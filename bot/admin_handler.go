package bot

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.isAdminMember(i.Member, i.Member.User.ID) {
		common.RespondWithError(s, i, "This command is for administrators.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]

	switch sub.Name {
	case "set_level":
		b.handleAdminSetLevel(s, i, sub.Options)
	case "set_xp":
		b.handleAdminSetXP(s, i, sub.Options)
	case "set_chips":
		b.handleAdminSetChips(s, i, sub.Options)
	case "announce":
		b.handleAdminAnnounce(s, i, sub.Options)
	case "purge":
		b.handleAdminPurge(s, i, sub.Options)
	case "clean":
		b.handleAdminClean(s, i)
	case "mute":
		b.handleAdminMute(s, i, sub.Options)
	case "unmute":
		b.handleAdminUnmute(s, i, sub.Options)
	case "setup_roles":
		b.handleAdminSetupRoles(s, i)
	case "autorole":
		b.handleAdminAutoRole(s, i, sub.Options)
	case "banword":
		b.handleAdminBanword(s, i, sub.Options)
	case "suggest_channel":
		b.handleAdminSuggestChannel(s, i, sub.Options)
	case "inactive":
		b.handleAdminInactive(s, i, sub.Options)
	case "birthdays":
		b.handleAdminBirthdays(s, i)
	}
}

func subOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (user *discordgo.User, intVal int64, strVal string) {
	for _, opt := range opts {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionUser:
			user = opt.UserValue(nil)
		case discordgo.ApplicationCommandOptionInteger:
			intVal = opt.IntValue()
		case discordgo.ApplicationCommandOptionString:
			strVal = opt.StringValue()
		}
	}
	return
}

func (b *Bot) handleAdminSetLevel(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	user, level, _ := subOptions(opts)
	if user == nil || level < 0 {
		common.RespondWithError(s, i, "Provide a member and a non-negative level.")
		return
	}

	b.progression.SetLevel(user.ID, level)
	if err := b.syncMemberRoles(i.GuildID, user.ID, level); err != nil {
		log.Errorf("Failed to sync roles after set_level: %v", err)
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("<@%s> is now level **%d**.", user.ID, level), true); err != nil {
		log.Errorf("Error responding to set_level: %v", err)
	}
}

func (b *Bot) handleAdminSetXP(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	user, xp, _ := subOptions(opts)
	if user == nil || xp < 0 {
		common.RespondWithError(s, i, "Provide a member and a non-negative XP amount.")
		return
	}

	b.progression.SetXP(user.ID, xp)
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("<@%s> now carries **%s XP**.", user.ID, common.FormatChips(xp)), true); err != nil {
		log.Errorf("Error responding to set_xp: %v", err)
	}
}

func (b *Bot) handleAdminSetChips(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	user, chips, _ := subOptions(opts)
	if user == nil || chips < 0 {
		common.RespondWithError(s, i, "Provide a member and a non-negative balance.")
		return
	}

	b.economy.SetChips(user.ID, chips)
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("<@%s>'s balance is now **%s chips**.", user.ID, common.FormatChips(chips)), true); err != nil {
		log.Errorf("Error responding to set_chips: %v", err)
	}
}

func (b *Bot) handleAdminAnnounce(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	_, _, text := subOptions(opts)
	if strings.TrimSpace(text) == "" {
		common.RespondWithError(s, i, "Announcement text cannot be empty.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📢 Announcement",
		Description: text,
		Color:       0xE67E22,
	}
	if _, err := s.ChannelMessageSendEmbed(i.ChannelID, embed); err != nil {
		log.Errorf("Failed to post announcement: %v", err)
		common.RespondWithError(s, i, "Could not post the announcement here.")
		return
	}
	if err := common.RespondWithSuccess(s, i, "Announcement posted.", true); err != nil {
		log.Errorf("Error responding to announce: %v", err)
	}
}

func (b *Bot) handleAdminPurge(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	_, count, _ := subOptions(opts)
	if count < 1 || count > 100 {
		common.RespondWithError(s, i, "Count must be between 1 and 100.")
		return
	}

	messages, err := s.ChannelMessages(i.ChannelID, int(count), "", "", "")
	if err != nil {
		log.Errorf("Failed to list messages for purge: %v", err)
		common.RespondWithError(s, i, "Could not read this channel's messages.")
		return
	}

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if err := s.ChannelMessagesBulkDelete(i.ChannelID, ids); err != nil {
		log.Errorf("Failed to bulk delete messages: %v", err)
		common.RespondWithError(s, i, "Could not delete messages. Bulk deletion only covers the last 14 days.")
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Deleted **%d** messages.", len(ids)), true); err != nil {
		log.Errorf("Error responding to purge: %v", err)
	}
}

func (b *Bot) handleAdminMute(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	user, minutes, mode := subOptions(opts)
	if user == nil || minutes < 1 {
		common.RespondWithError(s, i, "Provide a member and a positive duration.")
		return
	}
	if mode == "" {
		mode = "text"
	}

	until := time.Now().Add(time.Duration(minutes) * time.Minute)
	if mode == "text" || mode == "all" {
		if err := s.GuildMemberTimeout(i.GuildID, user.ID, &until); err != nil {
			log.Errorf("Failed to time out member %s: %v", user.ID, err)
			common.RespondWithError(s, i, "Could not mute that member.")
			return
		}
	}
	if mode == "voice" || mode == "all" {
		if err := s.GuildMemberMute(i.GuildID, user.ID, true); err != nil {
			log.Errorf("Failed to voice-mute member %s: %v", user.ID, err)
			common.RespondWithError(s, i, "Could not voice-mute that member. They may need to be in a voice channel.")
			return
		}
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("<@%s> is muted (%s) until %s.", user.ID, mode, common.FormatDiscordTimestamp(until, "T")), true); err != nil {
		log.Errorf("Error responding to mute: %v", err)
	}
}

func (b *Bot) handleAdminUnmute(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	user, _, mode := subOptions(opts)
	if user == nil {
		common.RespondWithError(s, i, "Provide a member.")
		return
	}
	if mode == "" {
		mode = "all"
	}

	if mode == "text" || mode == "all" {
		if err := s.GuildMemberTimeout(i.GuildID, user.ID, nil); err != nil {
			log.Errorf("Failed to unmute member %s: %v", user.ID, err)
			common.RespondWithError(s, i, "Could not lift that member's timeout.")
			return
		}
	}
	if mode == "voice" || mode == "all" {
		if err := s.GuildMemberMute(i.GuildID, user.ID, false); err != nil {
			// Voice unmute fails for members not connected to voice.
			log.Warnf("Failed to lift voice mute for member %s: %v", user.ID, err)
		}
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("<@%s> can speak again.", user.ID), true); err != nil {
		log.Errorf("Error responding to unmute: %v", err)
	}
}

// handleAdminClean deletes the bot's own messages among the last 100 in the
// channel. Unlike purge, deletion is per message, so it also reaches
// messages older than 14 days.
func (b *Bot) handleAdminClean(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring clean: %v", err)
		return
	}

	messages, err := s.ChannelMessages(i.ChannelID, 100, "", "", "")
	if err != nil {
		log.Errorf("Failed to list messages for clean: %v", err)
		if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
			Content: "❌ Could not read this channel's messages.",
			Flags:   discordgo.MessageFlagsEphemeral,
		}); err != nil {
			log.Errorf("Error responding to clean: %v", err)
		}
		return
	}

	deleted := 0
	for _, m := range messages {
		if m.Author == nil || m.Author.ID != s.State.User.ID {
			continue
		}
		if err := s.ChannelMessageDelete(i.ChannelID, m.ID); err != nil {
			log.Errorf("Failed to delete own message %s: %v", m.ID, err)
			continue
		}
		deleted++
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("🧹 Removed **%d** of my messages.", deleted),
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.Errorf("Error responding to clean: %v", err)
	}
}

func (b *Bot) handleAdminSetupRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring setup_roles: %v", err)
		return
	}

	created, err := b.ensureGuildRoles(i.GuildID)
	content := fmt.Sprintf("✅ Role setup finished, created **%d** new roles.", created)
	if err != nil {
		log.Errorf("Role setup failed: %v", err)
		content = fmt.Sprintf("❌ Role setup stopped after %d roles: the bot may lack Manage Roles.", created)
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.Errorf("Error responding to setup_roles: %v", err)
	}
}

func (b *Bot) handleAdminAutoRole(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var role *discordgo.Role
	for _, opt := range opts {
		if opt.Type == discordgo.ApplicationCommandOptionRole {
			role = opt.RoleValue(s, i.GuildID)
		}
	}

	if role == nil {
		if b.autoRoles.Remove(i.GuildID) {
			if err := common.RespondWithSuccess(s, i, "Auto-role disabled.", true); err != nil {
				log.Errorf("Error responding to autorole: %v", err)
			}
		} else {
			common.RespondWithError(s, i, "No auto-role was configured.")
		}
		return
	}

	b.autoRoles.Set(i.GuildID, role.ID)
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("New members now receive **%s**.", role.Name), true); err != nil {
		log.Errorf("Error responding to autorole: %v", err)
	}
}

func (b *Bot) handleAdminBanword(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	_, _, action := subOptions(opts)
	var word string
	for _, opt := range opts {
		if opt.Name == "word" {
			word = opt.StringValue()
		}
	}

	switch action {
	case "add":
		if !b.bannedWords.Add(word) {
			common.RespondWithError(s, i, "That word is empty or already banned.")
			return
		}
		if err := common.RespondWithSuccess(s, i, "Word added to the ban list.", true); err != nil {
			log.Errorf("Error responding to banword add: %v", err)
		}
	case "remove":
		if err := b.bannedWords.Remove(word); err != nil {
			common.RespondWithError(s, i, "That word is not on the ban list.")
			return
		}
		if err := common.RespondWithSuccess(s, i, "Word removed from the ban list.", true); err != nil {
			log.Errorf("Error responding to banword remove: %v", err)
		}
	case "list":
		words := b.bannedWords.List()
		if len(words) == 0 {
			common.RespondWithError(s, i, "The ban list is empty.")
			return
		}
		embed := &discordgo.MessageEmbed{
			Title:       "🚫 Banned words",
			Description: "||" + strings.Join(words, ", ") + "||",
			Color:       0xE74C3C,
		}
		if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
			log.Errorf("Error responding to banword list: %v", err)
		}
	}
}

func (b *Bot) handleAdminSuggestChannel(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	_, _, action := subOptions(opts)

	switch action {
	case "enable":
		if !b.suggestions.EnableChannel(i.ChannelID) {
			common.RespondWithError(s, i, "This channel already collects suggestions.")
			return
		}
		if err := common.RespondWithSuccess(s, i, "Messages in this channel now become suggestions.", true); err != nil {
			log.Errorf("Error responding to suggest_channel enable: %v", err)
		}
	case "disable":
		if !b.suggestions.DisableChannel(i.ChannelID) {
			common.RespondWithError(s, i, "This channel does not collect suggestions.")
			return
		}
		if err := common.RespondWithSuccess(s, i, "Suggestion collection disabled for this channel.", true); err != nil {
			log.Errorf("Error responding to suggest_channel disable: %v", err)
		}
	}
}

func (b *Bot) handleAdminInactive(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	_, days, _ := subOptions(opts)
	if days < 1 {
		common.RespondWithError(s, i, "Days must be positive.")
		return
	}

	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring inactive: %v", err)
		return
	}

	cutoff := time.Now().AddDate(0, 0, -int(days))
	ids := b.progression.InactiveSince(cutoff)

	var sb strings.Builder
	stripped := 0
	for _, id := range ids {
		removed, err := b.stripTierRoles(i.GuildID, id)
		if err != nil {
			log.Errorf("Failed to strip tier roles from inactive member %s: %v", id, err)
		}
		if removed > 0 {
			stripped++
		}
		sb.WriteString(fmt.Sprintf("<@%s>\n", id))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💤 Silent for %d+ days", days),
		Description: sb.String(),
		Color:       0x95A5A6,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Tier roles stripped from %d members. Activity is tracked since the last bot restart.", stripped),
		},
	}
	if len(ids) == 0 {
		embed.Description = fmt.Sprintf("Nobody has been silent for %d days.", days)
		embed.Footer.Text = "Activity is tracked since the last bot restart"
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.Errorf("Error responding to inactive: %v", err)
	}
}

func (b *Bot) handleAdminBirthdays(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries := b.birthdays.All()
	if len(entries) == 0 {
		common.RespondWithError(s, i, "No birthdays saved.")
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%02d.%02d — <@%s> (`%s`)\n", e.Day, e.Month, e.UserID, e.UserID))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "🎂 Birthday records",
		Description: sb.String(),
		Color:       0xE91E63,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to admin birthdays: %v", err)
	}
}
