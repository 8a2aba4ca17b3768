// Package platform wraps everything the engine needs from Discord behind a
// narrow client interface, so every feature package can be exercised against
// a mock and the REST/cache plumbing stays in one adapter.
package platform

import (
	"context"
	"errors"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

var (
	// ErrNotFound covers channels, roles, members and messages that were
	// deleted on Discord's side. Callers are expected to treat it as a
	// skip, never a crash.
	ErrNotFound = errors.New("platform: entity not found")

	ErrPermissionDenied = errors.New("platform: missing permissions")
)

// Message is the engine's view of a platform message.
type Message struct {
	ID              snowflake.ID
	ChannelID       snowflake.ID
	GuildID         snowflake.ID
	AuthorID        snowflake.ID
	AuthorName      string
	AuthorAvatarURL string
	AuthorIsBot     bool
	Content         string
	AttachmentURLs  []string
	// Reactions maps a reaction emoji to its count. Only populated on
	// fetched messages; gateway payloads rarely carry reactions.
	Reactions map[string]int
	CreatedAt time.Time
}

// User is the engine's view of a platform user.
type User struct {
	ID        snowflake.ID
	Username  string
	AvatarURL string
	IsBot     bool
}

// Channel is a minimal channel reference used for alert-target selection
// and dashboard listings.
type Channel struct {
	ID   snowflake.ID
	Name string
}

// GuildCounts is the snapshot the stats-channel refresher renders.
type GuildCounts struct {
	Members  int
	Bots     int
	Online   int
	Channels int
	Roles    int
	Boosts   int
}

// VoiceChannelSpec describes a voice channel to provision. When OwnerID is
// set the owner receives manage/move/mute control over the channel.
type VoiceChannelSpec struct {
	Name       string
	CategoryID snowflake.ID
	OwnerID    snowflake.ID
	UserLimit  int
	Hidden     bool
}

// TextChannelSpec describes a text channel to provision.
type TextChannelSpec struct {
	Name       string
	CategoryID snowflake.ID
	Topic      string
	Private    bool
}

// Client is the platform surface consumed by the engine. The disgo-backed
// implementation lives in disgo.go; tests use mock/client.go.
type Client interface {
	BotUserID() snowflake.ID

	SendMessage(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error)
	DeleteMessage(ctx context.Context, channelID, messageID snowflake.ID) error
	FetchMessage(ctx context.Context, channelID, messageID snowflake.ID) (*Message, error)
	MessagesBefore(ctx context.Context, channelID snowflake.ID, before time.Time, limit int) ([]Message, error)
	AddReaction(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error

	FetchUser(ctx context.Context, userID snowflake.ID) (*User, error)
	GrantRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	RevokeRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error
	KickMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	BanMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error
	MoveMember(ctx context.Context, guildID, userID, channelID snowflake.ID) error

	CreateVoiceChannel(ctx context.Context, guildID snowflake.ID, spec VoiceChannelSpec) (snowflake.ID, error)
	CreateTextChannel(ctx context.Context, guildID snowflake.ID, spec TextChannelSpec) (snowflake.ID, error)
	CreateCategory(ctx context.Context, guildID snowflake.ID, name string) (snowflake.ID, error)
	DeleteChannel(ctx context.Context, channelID snowflake.ID) error
	RenameChannel(ctx context.Context, channelID snowflake.ID, name string) error

	VoiceOccupancy(guildID, channelID snowflake.ID) int
	TextChannels(guildID snowflake.ID) []Channel
	Members(guildID snowflake.ID) []User
	GuildCounts(guildID snowflake.ID) (GuildCounts, bool)
}
