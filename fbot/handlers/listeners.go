// Package handlers bridges the gateway to the engine: it translates
// disgo events into the bot's own event set, registers the feature
// handlers on the dispatcher, and wraps slash commands with logging.
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/bot"
	dgoevents "github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/events"
	"github.com/fbotlabs/fbot/fbot/platform"
)

const listenerTimeout = 30 * time.Second

// NewListeners returns one disgo listener per gateway event the engine
// consumes. Each translates into the engine's event set and hands off
// to the dispatcher.
func NewListeners(b *fbot.Bot) []bot.EventListener {
	dispatch := func(event events.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
		defer cancel()
		b.Dispatcher.Dispatch(ctx, event)
	}

	return []bot.EventListener{
		bot.NewListenerFunc(func(e *dgoevents.GuildMessageCreate) {
			dispatch(events.MessageCreate{
				Message: platform.FromDiscord(e.GuildID, e.Message),
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMessageDelete) {
			var snapshot *platform.Message
			if e.Message.ID != 0 {
				converted := platform.FromDiscord(e.GuildID, e.Message)
				snapshot = &converted
			}
			dispatch(events.MessageDelete{
				Guild:    e.GuildID,
				Channel:  e.ChannelID,
				Snapshot: snapshot,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMessageUpdate) {
			var before *platform.Message
			if e.OldMessage.ID != 0 {
				converted := platform.FromDiscord(e.GuildID, e.OldMessage)
				before = &converted
			}
			dispatch(events.MessageUpdate{
				Guild:   e.GuildID,
				Channel: e.ChannelID,
				Before:  before,
				After:   platform.FromDiscord(e.GuildID, e.Message),
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMemberJoin) {
			var guildName string
			if guild, ok := b.Client.Caches().Guild(e.GuildID); ok {
				guildName = guild.Name
			}
			dispatch(events.MemberJoin{
				Guild:     e.GuildID,
				GuildName: guildName,
				UserID:    e.Member.User.ID,
				Username:  e.Member.User.Username,
				IsBot:     e.Member.User.Bot,
				JoinedAt:  time.Now(),
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMemberUpdate) {
			oldNick := nickOf(e.OldMember.Nick)
			newNick := nickOf(e.Member.Nick)
			if oldNick == newNick {
				return
			}
			dispatch(events.MemberUpdate{
				Guild:    e.GuildID,
				UserID:   e.Member.User.ID,
				Username: e.Member.User.Username,
				OldNick:  oldNick,
				NewNick:  newNick,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMemberLeave) {
			dispatch(events.MemberLeave{
				Guild:    e.GuildID,
				UserID:   e.User.ID,
				Username: e.User.Username,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildVoiceStateUpdate) {
			var oldChannel, newChannel snowflake.ID
			if e.OldVoiceState.ChannelID != nil {
				oldChannel = *e.OldVoiceState.ChannelID
			}
			if e.VoiceState.ChannelID != nil {
				newChannel = *e.VoiceState.ChannelID
			}
			dispatch(events.VoiceStateUpdate{
				Guild:      e.VoiceState.GuildID,
				UserID:     e.VoiceState.UserID,
				OldChannel: oldChannel,
				NewChannel: newChannel,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMessageReactionAdd) {
			emoji := e.Emoji.Reaction()
			dispatch(events.ReactionAdd{
				Guild:     e.GuildID,
				Channel:   e.ChannelID,
				MessageID: e.MessageID,
				UserID:    e.UserID,
				Emoji:     emoji,
				StarCount: cachedReactionCount(b, e.ChannelID, e.MessageID, emoji),
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildMessageReactionRemove) {
			dispatch(events.ReactionRemove{
				Guild:     e.GuildID,
				Channel:   e.ChannelID,
				MessageID: e.MessageID,
				UserID:    e.UserID,
				Emoji:     e.Emoji.Reaction(),
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildBan) {
			dispatch(events.MemberBan{
				Guild:    e.GuildID,
				UserID:   e.User.ID,
				Username: e.User.Username,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildUnban) {
			dispatch(events.MemberUnban{
				Guild:    e.GuildID,
				UserID:   e.User.ID,
				Username: e.User.Username,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.RoleCreate) {
			dispatch(events.RoleChange{
				Guild:    e.GuildID,
				RoleID:   e.RoleID,
				RoleName: e.Role.Name,
				Action:   events.ActionCreated,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.RoleDelete) {
			dispatch(events.RoleChange{
				Guild:    e.GuildID,
				RoleID:   e.RoleID,
				RoleName: e.Role.Name,
				Action:   events.ActionDeleted,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.RoleUpdate) {
			dispatch(events.RoleChange{
				Guild:    e.GuildID,
				RoleID:   e.RoleID,
				RoleName: e.Role.Name,
				Action:   events.ActionUpdated,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildChannelCreate) {
			dispatch(events.ChannelChange{
				Guild:       e.GuildID,
				ChannelID:   e.ChannelID,
				ChannelName: e.Channel.Name(),
				Action:      events.ActionCreated,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildChannelUpdate) {
			dispatch(events.ChannelChange{
				Guild:       e.GuildID,
				ChannelID:   e.ChannelID,
				ChannelName: e.Channel.Name(),
				Action:      events.ActionUpdated,
			})
		}),

		bot.NewListenerFunc(func(e *dgoevents.GuildChannelDelete) {
			dispatch(events.ChannelChange{
				Guild:       e.GuildID,
				ChannelID:   e.ChannelID,
				ChannelName: e.Channel.Name(),
				Action:      events.ActionDeleted,
			})
		}),

		// Guild departures drop the guild's config outright; there is
		// no engine event for them.
		bot.NewListenerFunc(func(e *dgoevents.GuildLeave) {
			ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
			defer cancel()
			if err := b.Store.Remove(ctx, e.GuildID); err != nil {
				slog.Error("Failed to clean up config for departed guild",
					slog.String("type", "db"),
					slog.String("guild_id", e.GuildID.String()),
					slog.String("error", err.Error()),
				)
			}
		}),
	}
}

func nickOf(nick *string) string {
	if nick == nil {
		return ""
	}
	return *nick
}

// cachedReactionCount reads the post-add reaction count from the
// message cache. Zero when the message is not cached.
func cachedReactionCount(b *fbot.Bot, channelID, messageID snowflake.ID, emoji string) int {
	msg, ok := b.Client.Caches().Message(channelID, messageID)
	if !ok {
		return 0
	}
	for _, reaction := range msg.Reactions {
		if reaction.Emoji.Reaction() == emoji {
			return reaction.Count
		}
	}
	return 0
}
