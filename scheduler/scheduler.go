package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"starosta/events"
	"starosta/models"
	"starosta/service"
	"starosta/store"
)

const (
	voiceTickInterval    = 60 * time.Second
	birthdayTickInterval = time.Hour
	backupTickInterval   = 24 * time.Hour

	// birthdayAnnounceHour is the local hour at which birthdays are announced.
	birthdayAnnounceHour = 9
)

// Scheduler drives the periodic jobs: voice XP accrual, birthday
// announcements and the daily snapshot backup to the administrator.
type Scheduler struct {
	session     *discordgo.Session
	progression service.ProgressionService
	birthdays   service.BirthdayService
	profiles    *store.ProfileStore
	eventBus    *events.Bus
	adminID     string
	backupFiles []string

	lastAnnounced string // "dd.mm" of the last announced day
}

// New creates a scheduler. backupFiles are snapshot paths attached to the
// daily backup message.
func New(session *discordgo.Session, progression service.ProgressionService, birthdays service.BirthdayService, profiles *store.ProfileStore, eventBus *events.Bus, adminID string, backupFiles []string) *Scheduler {
	return &Scheduler{
		session:     session,
		progression: progression,
		birthdays:   birthdays,
		profiles:    profiles,
		eventBus:    eventBus,
		adminID:     adminID,
		backupFiles: backupFiles,
	}
}

// Run starts the periodic loops and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	voiceTicker := time.NewTicker(voiceTickInterval)
	defer voiceTicker.Stop()
	birthdayTicker := time.NewTicker(birthdayTickInterval)
	defer birthdayTicker.Stop()
	backupTicker := time.NewTicker(backupTickInterval)
	defer backupTicker.Stop()

	log.Info("Scheduler started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Scheduler stopping")
			return
		case <-voiceTicker.C:
			s.voiceTick(ctx)
		case <-birthdayTicker.C:
			s.birthdayTick(time.Now())
		case <-backupTicker.C:
			s.backupTick()
		}
	}
}

// voiceTick awards one voice minute to every eligible member currently in a
// voice channel. Deafened, muted and bot members accrue nothing.
func (s *Scheduler) voiceTick(ctx context.Context) {
	awarded := 0
	for _, guild := range s.session.State.Guilds {
		for _, vs := range guild.VoiceStates {
			if vs.ChannelID == "" || vs.ChannelID == guild.AfkChannelID {
				continue
			}
			if vs.Deaf || vs.Mute || vs.SelfDeaf || vs.SelfMute {
				continue
			}
			if member, err := s.session.State.Member(guild.ID, vs.UserID); err == nil && member.User != nil && member.User.Bot {
				continue
			}

			awarded++
			if up := s.progression.AwardVoiceMinute(vs.UserID); up != nil {
				s.eventBus.Emit(ctx, events.LevelUpEvent{
					UserID:    up.UserID,
					GuildID:   guild.ID,
					NewLevel:  up.NewLevel,
					FromVoice: true,
				})
			}
		}
	}
	if awarded > 0 {
		s.profiles.Flush()
		log.WithField("members", awarded).Debug("Awarded voice minute")
	}
}

// birthdayTick announces birthdays once per day at the announce hour and
// swaps the birthday role onto today's celebrants.
func (s *Scheduler) birthdayTick(now time.Time) {
	if now.Hour() != birthdayAnnounceHour {
		return
	}
	today := fmt.Sprintf("%02d.%02d", now.Day(), int(now.Month()))
	if s.lastAnnounced == today {
		return
	}
	s.lastAnnounced = today

	due := s.birthdays.DueToday(now)
	dueSet := make(map[string]struct{}, len(due))
	for _, id := range due {
		dueSet[id] = struct{}{}
	}

	for _, guild := range s.session.State.Guilds {
		s.syncBirthdayRole(guild, dueSet)

		if len(due) == 0 || guild.SystemChannelID == "" {
			continue
		}
		for _, userID := range due {
			msg := fmt.Sprintf("🎂 Today is <@%s>'s birthday! Congratulate them!", userID)
			if _, err := s.session.ChannelMessageSend(guild.SystemChannelID, msg); err != nil {
				log.WithFields(log.Fields{
					"guild": guild.ID,
					"user":  userID,
				}).Errorf("Failed to send birthday announcement: %v", err)
			}
		}
	}
}

// syncBirthdayRole grants the decorative role to today's celebrants and
// strips it from everyone else.
func (s *Scheduler) syncBirthdayRole(guild *discordgo.Guild, dueSet map[string]struct{}) {
	var roleID string
	for _, role := range guild.Roles {
		if role.Name == models.BirthdayRoleName {
			roleID = role.ID
			break
		}
	}
	if roleID == "" {
		return
	}

	for _, member := range guild.Members {
		has := false
		for _, r := range member.Roles {
			if r == roleID {
				has = true
				break
			}
		}
		_, isDue := dueSet[member.User.ID]

		var err error
		switch {
		case isDue && !has:
			err = s.session.GuildMemberRoleAdd(guild.ID, member.User.ID, roleID)
		case !isDue && has:
			err = s.session.GuildMemberRoleRemove(guild.ID, member.User.ID, roleID)
		}
		if err != nil {
			log.WithFields(log.Fields{
				"guild": guild.ID,
				"user":  member.User.ID,
			}).Errorf("Failed to update birthday role: %v", err)
		}
	}
}

// backupTick flushes the profile snapshot and sends every snapshot file to
// the administrator over DM.
func (s *Scheduler) backupTick() {
	s.profiles.Flush()

	channel, err := s.session.UserChannelCreate(s.adminID)
	if err != nil {
		log.Errorf("Failed to open admin DM channel for backup: %v", err)
		return
	}

	var files []*discordgo.File
	var handles []*os.File
	for _, path := range s.backupFiles {
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("Skipping backup of %s: %v", path, err)
			continue
		}
		handles = append(handles, f)
		files = append(files, &discordgo.File{
			Name:        filepath.Base(path),
			ContentType: "application/json",
			Reader:      f,
		})
	}
	defer func() {
		for _, f := range handles {
			f.Close()
		}
	}()
	if len(files) == 0 {
		return
	}

	_, err = s.session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: fmt.Sprintf("📦 Daily backup, %s", time.Now().Format("2006-01-02")),
		Files:   files,
	})
	if err != nil {
		log.Errorf("Failed to send backup to admin: %v", err)
		return
	}
	log.WithField("files", len(files)).Info("Sent daily backup to admin")
}
