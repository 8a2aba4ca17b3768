package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/events"
	"github.com/fbotlabs/fbot/fbot/router"
	"github.com/fbotlabs/fbot/fbot/snipe"
	"github.com/fbotlabs/fbot/fbot/starboard"
	"github.com/fbotlabs/fbot/fbot/utils"
)

// RegisterEngineHandlers wires every feature component onto the event
// dispatcher. Registration order within a variant is execution order,
// so state updates (snipe caches, windows, ledgers) run before the log
// notifications that describe them.
func RegisterEngineHandlers(b *fbot.Bot) {
	registerMessageHandlers(b)
	registerMemberHandlers(b)
	registerVoiceHandlers(b)
	registerReactionHandlers(b)
	registerModerationHandlers(b)
}

func registerMessageHandlers(b *fbot.Bot) {
	b.Dispatcher.OnMessageCreate(func(ctx context.Context, e events.MessageCreate) error {
		if e.Message.AuthorIsBot || e.Message.GuildID == 0 {
			return nil
		}
		return b.Leveling.OnMessage(ctx, e.Message.GuildID, e.Message.ChannelID, e.Message.AuthorID, e.Message.AuthorName)
	})
	b.Dispatcher.OnMessageCreate(func(ctx context.Context, e events.MessageCreate) error {
		return b.Automation.OnMessage(ctx, e.Message)
	})

	b.Dispatcher.OnMessageDelete(func(ctx context.Context, e events.MessageDelete) error {
		if e.Snapshot == nil || e.Snapshot.AuthorIsBot {
			return nil
		}
		b.Snipes.RecordDeletion(e.Channel, snipe.DeletedSnapshot{
			AuthorID:       e.Snapshot.AuthorID,
			AuthorName:     e.Snapshot.AuthorName,
			Content:        e.Snapshot.Content,
			AttachmentURLs: e.Snapshot.AttachmentURLs,
			DeletedAt:      time.Now(),
		})
		return nil
	})
	b.Dispatcher.OnMessageDelete(func(ctx context.Context, e events.MessageDelete) error {
		embed := discord.Embed{
			Title: "Message deleted",
			Color: utils.ErrorColor,
			Fields: []discord.EmbedField{
				{Name: "Channel", Value: fmt.Sprintf("<#%s>", e.Channel)},
			},
		}
		if e.Snapshot != nil {
			embed.Description = e.Snapshot.Content
			embed.Author = &discord.EmbedAuthor{
				Name:    e.Snapshot.AuthorName,
				IconURL: e.Snapshot.AuthorAvatarURL,
			}
		}
		b.Router.Send(ctx, e.Guild, router.CategoryMessages, embed)
		return nil
	})

	b.Dispatcher.OnMessageUpdate(func(ctx context.Context, e events.MessageUpdate) error {
		if e.Before == nil || e.Before.AuthorIsBot {
			return nil
		}
		b.Snipes.RecordEdit(e.Channel, snipe.EditedSnapshot{
			AuthorID:   e.Before.AuthorID,
			AuthorName: e.Before.AuthorName,
			Before:     e.Before.Content,
			After:      e.After.Content,
			EditedAt:   time.Now(),
		})
		return nil
	})
	b.Dispatcher.OnMessageUpdate(func(ctx context.Context, e events.MessageUpdate) error {
		if e.Before == nil || e.Before.Content == e.After.Content {
			return nil
		}
		b.Router.Send(ctx, e.Guild, router.CategoryMessages, discord.Embed{
			Title: "Message edited",
			Color: utils.WarningColor,
			Fields: []discord.EmbedField{
				{Name: "Channel", Value: fmt.Sprintf("<#%s>", e.Channel)},
				{Name: "Before", Value: truncate(e.Before.Content, 1024)},
				{Name: "After", Value: truncate(e.After.Content, 1024)},
			},
		})
		return nil
	})
}

func registerMemberHandlers(b *fbot.Bot) {
	b.Dispatcher.OnMemberJoin(func(ctx context.Context, e events.MemberJoin) error {
		return b.AntiRaid.OnJoin(ctx, e.Guild, e.UserID)
	})
	b.Dispatcher.OnMemberJoin(func(ctx context.Context, e events.MemberJoin) error {
		if e.IsBot {
			return nil
		}
		return b.Automation.OnMemberJoin(ctx, e.Guild, e.UserID, e.Username, e.GuildName)
	})
	b.Dispatcher.OnMemberJoin(func(ctx context.Context, e events.MemberJoin) error {
		b.Router.Send(ctx, e.Guild, router.CategoryMembers, discord.Embed{
			Description: fmt.Sprintf("📥 **%s** joined the server", e.Username),
			Color:       utils.SuccessColor,
		})
		return nil
	})

	b.Dispatcher.OnMemberUpdate(func(ctx context.Context, e events.MemberUpdate) error {
		oldNick, newNick := e.OldNick, e.NewNick
		if oldNick == "" {
			oldNick = e.Username
		}
		if newNick == "" {
			newNick = e.Username
		}
		b.Router.Send(ctx, e.Guild, router.CategoryMembers, discord.Embed{
			Description: fmt.Sprintf("✏️ **%s** changed nickname: **%s** → **%s**", e.Username, oldNick, newNick),
			Color:       utils.InfoColor,
		})
		return nil
	})

	b.Dispatcher.OnMemberLeave(func(ctx context.Context, e events.MemberLeave) error {
		b.Router.Send(ctx, e.Guild, router.CategoryMembers, discord.Embed{
			Description: fmt.Sprintf("📤 **%s** left the server", e.Username),
			Color:       utils.WarningColor,
		})
		return nil
	})
}

func registerVoiceHandlers(b *fbot.Bot) {
	b.Dispatcher.OnVoiceStateUpdate(func(ctx context.Context, e events.VoiceStateUpdate) error {
		return b.VoiceManager.HandleVoiceState(ctx, e.Guild, e.UserID, e.OldChannel, e.NewChannel)
	})
	b.Dispatcher.OnVoiceStateUpdate(func(ctx context.Context, e events.VoiceStateUpdate) error {
		var description string
		switch {
		case e.OldChannel == 0 && e.NewChannel != 0:
			description = fmt.Sprintf("<@%s> joined <#%s>", e.UserID, e.NewChannel)
		case e.OldChannel != 0 && e.NewChannel == 0:
			description = fmt.Sprintf("<@%s> left <#%s>", e.UserID, e.OldChannel)
		case e.OldChannel != e.NewChannel:
			description = fmt.Sprintf("<@%s> moved from <#%s> to <#%s>", e.UserID, e.OldChannel, e.NewChannel)
		default:
			return nil
		}
		b.Router.Send(ctx, e.Guild, router.CategoryVoice, discord.Embed{
			Description: description,
			Color:       utils.InfoColor,
		})
		return nil
	})
}

func registerReactionHandlers(b *fbot.Bot) {
	b.Dispatcher.OnReactionAdd(func(ctx context.Context, e events.ReactionAdd) error {
		return b.ReactionRoles.OnReactionAdded(ctx, e.Guild, e.MessageID, e.UserID, e.Emoji)
	})
	b.Dispatcher.OnReactionAdd(func(ctx context.Context, e events.ReactionAdd) error {
		if e.Emoji != starboard.DefaultEmoji {
			return nil
		}
		return b.Starboard.Observe(ctx, e.Guild, e.Channel, e.MessageID, e.StarCount)
	})

	b.Dispatcher.OnReactionRemove(func(ctx context.Context, e events.ReactionRemove) error {
		return b.ReactionRoles.OnReactionRemoved(ctx, e.Guild, e.MessageID, e.UserID, e.Emoji)
	})
}

func registerModerationHandlers(b *fbot.Bot) {
	b.Dispatcher.OnMemberBan(func(ctx context.Context, e events.MemberBan) error {
		b.Router.Send(ctx, e.Guild, router.CategoryModeration, discord.Embed{
			Description: fmt.Sprintf("🔨 **%s** was banned", e.Username),
			Color:       utils.ErrorColor,
		})
		return nil
	})
	b.Dispatcher.OnMemberUnban(func(ctx context.Context, e events.MemberUnban) error {
		b.Router.Send(ctx, e.Guild, router.CategoryModeration, discord.Embed{
			Description: fmt.Sprintf("🕊️ **%s** was unbanned", e.Username),
			Color:       utils.SuccessColor,
		})
		return nil
	})

	b.Dispatcher.OnRoleChange(func(ctx context.Context, e events.RoleChange) error {
		b.Router.Send(ctx, e.Guild, router.CategoryRoles, discord.Embed{
			Description: fmt.Sprintf("Role **%s** %s", e.RoleName, e.Action),
			Color:       utils.InfoColor,
		})
		return nil
	})
	b.Dispatcher.OnChannelChange(func(ctx context.Context, e events.ChannelChange) error {
		b.Router.Send(ctx, e.Guild, router.CategoryChannels, discord.Embed{
			Description: fmt.Sprintf("Channel **%s** %s", e.ChannelName, e.Action),
			Color:       utils.InfoColor,
		})
		return nil
	})
}

// truncate caps s at max characters, cutting on rune boundaries so
// multi-byte content never yields an invalid embed field.
func truncate(s string, max int) string {
	if s == "" {
		return "*(empty)*"
	}
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
