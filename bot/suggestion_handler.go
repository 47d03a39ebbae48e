package bot

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"
	"starosta/events"
	"starosta/models"

	"github.com/bwmarrin/discordgo"
)

const (
	suggestionColorPending  = 0xF1C40F
	suggestionColorApproved = 0x2ECC71
	suggestionColorRejected = 0xE74C3C
)

func buildSuggestionEmbed(authorName, avatarURL, content string, votesFor, votesAgainst, percent int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "💡 Suggestion",
		Description: content,
		Color:       suggestionColorPending,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    authorName,
			IconURL: avatarURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👍 For", Value: fmt.Sprintf("%d", votesFor), Inline: true},
			{Name: "👎 Against", Value: fmt.Sprintf("%d", votesAgainst), Inline: true},
			{Name: "Support", Value: fmt.Sprintf("%d%%", percent), Inline: true},
		},
	}
	return embed
}

func suggestionComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{Label: "👍", Style: discordgo.SuccessButton, CustomID: "idea_like"},
				&discordgo.Button{Label: "👎", Style: discordgo.DangerButton, CustomID: "idea_dislike"},
				&discordgo.Button{Label: "Edit", Style: discordgo.SecondaryButton, CustomID: "idea_edit"},
				&discordgo.Button{Label: "Approve", Style: discordgo.PrimaryButton, CustomID: "idea_approve"},
				&discordgo.Button{Label: "Reject", Style: discordgo.SecondaryButton, CustomID: "idea_reject"},
			},
		},
	}
}

// handleSuggestionInteraction routes suggestion buttons and the edit modal.
func (b *Bot) handleSuggestionInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case "idea_like":
			b.handleSuggestionVote(s, i, models.VoteLike)
		case "idea_dislike":
			b.handleSuggestionVote(s, i, models.VoteDislike)
		case "idea_edit":
			b.handleSuggestionEditButton(s, i)
		case "idea_approve":
			b.handleSuggestionResolve(s, i, models.SuggestionApproved)
		case "idea_reject":
			b.handleSuggestionResolve(s, i, models.SuggestionRejected)
		}

	case discordgo.InteractionModalSubmit:
		customID := i.ModalSubmitData().CustomID
		if strings.HasPrefix(customID, "idea_edit_modal:") {
			b.handleSuggestionEditModal(s, i, strings.TrimPrefix(customID, "idea_edit_modal:"))
		}
	}
}

func (b *Bot) handleSuggestionVote(s *discordgo.Session, i *discordgo.InteractionCreate, choice models.VoteChoice) {
	sg, err := b.suggestions.Vote(i.Message.ID, i.Member.User.ID, choice)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	embed := buildSuggestionEmbed(sg.AuthorName, embedAvatarURL(i.Message), sg.Content,
		sg.VotesFor, sg.VotesAgainst, sg.ApprovalPercent())
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: suggestionComponents(),
		},
	})
	if err != nil {
		log.Errorf("Error updating suggestion message: %v", err)
	}
}

func (b *Bot) handleSuggestionResolve(s *discordgo.Session, i *discordgo.InteractionCreate, status models.SuggestionStatus) {
	if !b.isAdminMember(i.Member, i.Member.User.ID) {
		common.RespondWithError(s, i, "Only administrators can resolve suggestions.")
		return
	}

	sg, err := b.suggestions.Resolve(i.Message.ID, status)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	embed := buildSuggestionEmbed(sg.AuthorName, embedAvatarURL(i.Message), sg.Content,
		sg.VotesFor, sg.VotesAgainst, sg.ApprovalPercent())
	if status == models.SuggestionApproved {
		embed.Color = suggestionColorApproved
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("✅ Approved with %d%% support", sg.ApprovalPercent()),
		}
	} else {
		embed.Color = suggestionColorRejected
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("❌ Rejected with %d%% support", sg.ApprovalPercent()),
		}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating resolved suggestion: %v", err)
	}

	b.eventBus.Emit(context.Background(), events.SuggestionResolvedEvent{
		MessageID: sg.MessageID,
		ChannelID: sg.ChannelID,
		Status:    status,
	})
}

func (b *Bot) handleSuggestionEditButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sg, err := b.suggestions.Get(i.Message.ID)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}
	if sg.AuthorID != i.Member.User.ID {
		common.RespondWithError(s, i, "Only the author can edit a suggestion.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "idea_edit_modal:" + i.Message.ID,
			Title:    "Edit suggestion",
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						&discordgo.TextInput{
							CustomID:    "idea_content",
							Label:       "Suggestion text",
							Style:       discordgo.TextInputParagraph,
							Value:       sg.Content,
							Required:    true,
							MaxLength:   1000,
							Placeholder: "Describe your idea",
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Errorf("Error opening suggestion edit modal: %v", err)
	}
}

func (b *Bot) handleSuggestionEditModal(s *discordgo.Session, i *discordgo.InteractionCreate, messageID string) {
	data := i.ModalSubmitData()
	var newContent string
	for _, row := range data.Components {
		actionRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == "idea_content" {
				newContent = input.Value
			}
		}
	}
	if strings.TrimSpace(newContent) == "" {
		common.RespondWithError(s, i, "Suggestion text cannot be empty.")
		return
	}

	sg, err := b.suggestions.Edit(messageID, i.Member.User.ID, newContent)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	embed := buildSuggestionEmbed(sg.AuthorName, "", sg.Content,
		sg.VotesFor, sg.VotesAgainst, sg.ApprovalPercent())
	components := suggestionComponents()
	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    sg.ChannelID,
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	if err != nil {
		log.Errorf("Error applying suggestion edit: %v", err)
	}

	if err := common.RespondWithSuccess(s, i, "Suggestion updated.", true); err != nil {
		log.Errorf("Error confirming suggestion edit: %v", err)
	}
}

// embedAvatarURL recovers the author icon from the posted embed so updates
// keep it without storing the URL.
func embedAvatarURL(m *discordgo.Message) string {
	if m == nil || len(m.Embeds) == 0 || m.Embeds[0].Author == nil {
		return ""
	}
	return m.Embeds[0].Author.IconURL
}
