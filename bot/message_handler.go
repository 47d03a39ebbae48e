package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"starosta/events"
	"starosta/service"

	"github.com/bwmarrin/discordgo"
)

// bannedWordTimeout is the timeout applied when a banned word is used.
const bannedWordTimeout = 5 * time.Minute

// handleMessageCreate runs the message pipeline: moderation first, then
// suggestion capture, then the spam limiter, then XP.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if word, ok := b.bannedWords.Match(m.Content); ok {
		b.punishBannedWord(s, m, word)
		return
	}

	if b.suggestions.IsEnabledChannel(m.ChannelID) && !b.isAdminMember(m.Member, m.Author.ID) {
		if m.MessageReference != nil && m.MessageReference.MessageID != "" && b.applySuggestionReplyEdit(s, m) {
			return
		}
		b.captureSuggestion(s, m)
		return
	}

	switch b.antiSpam.Observe(m.Author.ID, time.Now()) {
	case service.SpamDropped:
		return
	case service.SpamPunished:
		b.eventBus.Emit(context.Background(), events.SpamBlockedEvent{
			UserID:       m.Author.ID,
			GuildID:      m.GuildID,
			ChannelID:    m.ChannelID,
			BlockedUntil: time.Now().Add(service.SpamBlockDuration()).UnixMilli(),
		})
		return
	}

	if up := b.progression.AwardMessageXP(m.Author.ID); up != nil {
		b.eventBus.Emit(context.Background(), events.LevelUpEvent{
			UserID:    up.UserID,
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			NewLevel:  up.NewLevel,
		})
	}
}

// punishBannedWord deletes the offending message, leaves a short-lived
// warning and times the author out.
func (b *Bot) punishBannedWord(s *discordgo.Session, m *discordgo.MessageCreate, word string) {
	log.WithFields(log.Fields{
		"user": m.Author.ID,
		"word": word,
	}).Info("Banned word detected")

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Errorf("Failed to delete message with banned word: %v", err)
	}

	warning, err := s.ChannelMessageSend(m.ChannelID,
		fmt.Sprintf("⚠️ <@%s>, watch your language!", m.Author.ID))
	if err != nil {
		log.Errorf("Failed to send banned word warning: %v", err)
	} else {
		go b.deleteAfter(m.ChannelID, warning.ID, warningLifetime)
	}

	until := time.Now().Add(bannedWordTimeout)
	if err := s.GuildMemberTimeout(m.GuildID, m.Author.ID, &until); err != nil {
		log.Errorf("Failed to timeout user %s: %v", m.Author.ID, err)
	}
}

// applySuggestionReplyEdit handles an author replying to their own suggestion
// post: the reply text replaces the suggestion content and the reply message
// is removed. Returns false when the reply does not target one of the
// author's suggestions, in which case the message flows on as usual.
func (b *Bot) applySuggestionReplyEdit(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if strings.TrimSpace(m.Content) == "" {
		return false
	}

	sg, err := b.suggestions.Edit(m.MessageReference.MessageID, m.Author.ID, m.Content)
	if err != nil {
		return false
	}

	embed := buildSuggestionEmbed(sg.AuthorName, m.Author.AvatarURL(""), sg.Content,
		sg.VotesFor, sg.VotesAgainst, sg.ApprovalPercent())
	components := suggestionComponents()
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         sg.MessageID,
		Channel:    sg.ChannelID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	}); err != nil {
		log.Errorf("Error applying suggestion reply edit: %v", err)
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Errorf("Failed to delete suggestion edit reply: %v", err)
	}
	return true
}

// captureSuggestion replaces a plain message in a suggestion channel with a
// votable suggestion embed. The record is keyed by the embed's message ID.
func (b *Bot) captureSuggestion(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Errorf("Failed to delete suggestion source message: %v", err)
	}

	authorName := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		authorName = m.Member.Nick
	}

	embed := buildSuggestionEmbed(authorName, m.Author.AvatarURL(""), m.Content, 0, 0, 0)
	posted, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: suggestionComponents(),
	})
	if err != nil {
		log.Errorf("Failed to post suggestion embed: %v", err)
		return
	}

	b.suggestions.Create(posted.ID, m.ChannelID, m.Author.ID, authorName, m.Content, time.Now())

	// Discussion thread is a nicety, the suggestion works without it.
	threadName := m.Content
	if len(threadName) > 80 {
		threadName = threadName[:80]
	}
	if _, err := s.MessageThreadStart(m.ChannelID, posted.ID, threadName, 1440); err != nil {
		log.Warnf("Failed to create suggestion discussion thread: %v", err)
	}

	log.WithFields(log.Fields{
		"messageID": posted.ID,
		"author":    m.Author.ID,
	}).Info("Suggestion created")
}
