package bot

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"starosta/bot/common"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleBirthdayCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "set":
		b.handleBirthdaySet(s, i, options[0].Options)
	case "remove":
		b.handleBirthdayRemove(s, i)
	case "list":
		b.handleBirthdayList(s, i)
	}
}

func (b *Bot) handleBirthdaySet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var day, month int
	for _, opt := range opts {
		switch opt.Name {
		case "day":
			day = int(opt.IntValue())
		case "month":
			month = int(opt.IntValue())
		}
	}

	date, err := b.birthdays.Set(i.Member.User.ID, day, month)
	if err != nil {
		common.RespondWithError(s, i, common.ErrorMessage(err))
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Your birthday is saved as **%s**.", date), true); err != nil {
		log.Errorf("Error responding to birthday set: %v", err)
	}
}

func (b *Bot) handleBirthdayRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := b.birthdays.Remove(i.Member.User.ID); err != nil {
		common.RespondWithError(s, i, "You have no saved birthday.")
		return
	}
	if err := common.RespondWithSuccess(s, i, "Your birthday was removed.", true); err != nil {
		log.Errorf("Error responding to birthday remove: %v", err)
	}
}

func (b *Bot) handleBirthdayList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	entries := b.birthdays.All()
	if len(entries) == 0 {
		common.RespondWithError(s, i, "No birthdays saved yet. Add yours with `/birthday set`.")
		return
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("**%02d.%02d** — <@%s>\n", e.Day, e.Month, e.UserID))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎂 Birthday calendar",
		Description: sb.String(),
		Color:       0xE91E63,
	}
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to birthday list: %v", err)
	}
}
