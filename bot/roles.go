package bot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"starosta/models"

	"github.com/bwmarrin/discordgo"
)

// tierPermissions returns the base permissions granted with a tier role.
// Higher tiers unlock small quality-of-life permissions.
func tierPermissions(minLevel int64) int64 {
	var perms int64
	if minLevel >= 10 {
		perms |= discordgo.PermissionChangeNickname
	}
	if minLevel >= 30 {
		perms |= discordgo.PermissionCreatePublicThreads
	}
	return perms
}

// ensureGuildRoles creates any missing tier roles and the birthday role.
// Existing roles with matching names are left untouched.
func (b *Bot) ensureGuildRoles(guildID string) (int, error) {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve guild %s: %w", guildID, err)
	}

	existing := make(map[string]struct{}, len(guild.Roles))
	for _, role := range guild.Roles {
		existing[role.Name] = struct{}{}
	}

	created := 0
	hoist := true
	for _, tier := range b.progression.Tiers() {
		if _, ok := existing[tier.Name]; ok {
			continue
		}
		color := tier.Color
		perms := tierPermissions(tier.MinLevel)
		_, err := b.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
			Name:        tier.Name,
			Color:       &color,
			Hoist:       &hoist,
			Permissions: &perms,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create role %s: %w", tier.Name, err)
		}
		created++
	}

	if _, ok := existing[models.BirthdayRoleName]; !ok {
		color := 0xFF69B4
		_, err := b.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
			Name:  models.BirthdayRoleName,
			Color: &color,
			Hoist: &hoist,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create birthday role: %w", err)
		}
		created++
	}

	return created, nil
}

// syncMemberRoles reconciles a member's tier roles with their level: the
// matching tier role is added and every other tier role is removed. The
// operation is idempotent.
func (b *Bot) syncMemberRoles(guildID, userID string, level int64) error {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return fmt.Errorf("failed to resolve guild %s: %w", guildID, err)
	}

	tierRoleIDs := make(map[string]string, len(b.progression.Tiers()))
	for _, tier := range b.progression.Tiers() {
		for _, role := range guild.Roles {
			if role.Name == tier.Name {
				tierRoleIDs[tier.Name] = role.ID
				break
			}
		}
	}
	if len(tierRoleIDs) == 0 {
		// Roles were never set up in this guild, nothing to reconcile.
		return nil
	}

	var wantRoleID string
	if tier, ok := b.progression.RoleForLevel(level); ok {
		wantRoleID = tierRoleIDs[tier.Name]
	}

	member, err := b.session.GuildMember(guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}

	hasWanted := false
	for _, roleID := range member.Roles {
		isTierRole := false
		for _, id := range tierRoleIDs {
			if roleID == id {
				isTierRole = true
				break
			}
		}
		if !isTierRole {
			continue
		}
		if roleID == wantRoleID {
			hasWanted = true
			continue
		}
		if err := b.session.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
			log.Errorf("Failed to remove stale tier role from %s: %v", userID, err)
		}
	}

	if wantRoleID != "" && !hasWanted {
		if err := b.session.GuildMemberRoleAdd(guildID, userID, wantRoleID); err != nil {
			return fmt.Errorf("failed to add tier role: %w", err)
		}
	}
	return nil
}

// stripTierRoles removes every tier role from a member. Used by the
// inactivity sweep; the roles come back through the usual level-up
// reconciliation once the member speaks again.
func (b *Bot) stripTierRoles(guildID, userID string) (int, error) {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve guild %s: %w", guildID, err)
	}

	tierRoleIDs := make(map[string]struct{}, len(b.progression.Tiers()))
	for _, tier := range b.progression.Tiers() {
		for _, role := range guild.Roles {
			if role.Name == tier.Name {
				tierRoleIDs[role.ID] = struct{}{}
				break
			}
		}
	}
	if len(tierRoleIDs) == 0 {
		return 0, nil
	}

	member, err := b.session.GuildMember(guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}

	removed := 0
	for _, roleID := range member.Roles {
		if _, ok := tierRoleIDs[roleID]; !ok {
			continue
		}
		if err := b.session.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
			return removed, fmt.Errorf("failed to remove tier role: %w", err)
		}
		removed++
	}
	return removed, nil
}
