package cooldown

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Sentinel entity IDs for scoped cooldowns.
const (
	// non-guild contexts share one guild-scope entry
	dmSentinel = "dm"
	// every caller shares one global-scope entry
	globalSentinel = "global"
)

// UseUser starts a cooldown scoped to the invoking user.
func (m *Manager) UseUser(ctx context.Context, bucket string, i *discordgo.InteractionCreate, d time.Duration) error {
	return m.Use(ctx, bucket, UserID(i), d)
}

// UseGuild starts a cooldown scoped to the guild, or to a shared "dm"
// sentinel outside of guilds.
func (m *Manager) UseGuild(ctx context.Context, bucket string, i *discordgo.InteractionCreate, d time.Duration) error {
	entityID := dmSentinel
	if i != nil && i.GuildID != "" {
		entityID = i.GuildID
	}
	return m.Use(ctx, bucket, entityID, d)
}

// UseChannel starts a cooldown scoped to the channel.
func (m *Manager) UseChannel(ctx context.Context, bucket string, i *discordgo.InteractionCreate, d time.Duration) error {
	entityID := ""
	if i != nil {
		entityID = i.ChannelID
	}
	return m.Use(ctx, bucket, entityID, d)
}

// UseGlobal starts a cooldown shared by all callers of the bucket.
func (m *Manager) UseGlobal(ctx context.Context, bucket string, d time.Duration) error {
	return m.Use(ctx, bucket, globalSentinel, d)
}

// UserID extracts the invoking user's ID from a guild or DM interaction.
func UserID(i *discordgo.InteractionCreate) string {
	if i == nil || i.Interaction == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
