// Package router resolves log events to their configured destination
// channels and emits the rendered notification.
package router

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
)

// Log categories. CategoryAll is the catch-all destination consulted
// when a specific category has no configured channel.
const (
	CategoryMembers    = "members"
	CategoryMessages   = "messages"
	CategoryVoice      = "voice"
	CategoryRoles      = "roles"
	CategoryChannels   = "channels"
	CategoryModeration = "moderation"
	CategoryServer     = "server"
	CategoryAll        = "all"
)

// Categories lists every routable category except the catch-all.
var Categories = []string{
	CategoryMembers,
	CategoryMessages,
	CategoryVoice,
	CategoryRoles,
	CategoryChannels,
	CategoryModeration,
	CategoryServer,
}

// ValidCategory reports whether name is a routable category or the
// catch-all.
func ValidCategory(name string) bool {
	if name == CategoryAll {
		return true
	}
	for _, category := range Categories {
		if category == name {
			return true
		}
	}
	return false
}

type Router struct {
	store  *guildconfig.Store
	client platform.Client
}

func New(store *guildconfig.Store, client platform.Client) *Router {
	return &Router{store: store, client: client}
}

// Route returns the destination channel for a category, falling back to
// the guild's catch-all route. Zero means no destination is configured.
func (r *Router) Route(guildID snowflake.ID, category string) snowflake.ID {
	cfg := r.store.Get(guildID)
	if cfg == nil {
		return 0
	}
	if channel, ok := cfg.LogChannels[category]; ok {
		return channel
	}
	return cfg.LogChannels[CategoryAll]
}

// Send routes the embed and sends it. An unconfigured category is a
// silent drop; a failed send is logged and swallowed so the remaining
// listeners of the same platform event keep running.
func (r *Router) Send(ctx context.Context, guildID snowflake.ID, category string, embed discord.Embed) {
	channel := r.Route(guildID, category)
	if channel == 0 {
		return
	}

	if _, err := r.client.SendMessage(ctx, channel, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}); err != nil {
		slog.Error("Failed to send log notification",
			slog.String("type", "evt"),
			slog.String("guild_id", guildID.String()),
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
	}
}
