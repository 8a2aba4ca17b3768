// Package automation implements the message and membership automations
// configured per guild: welcome messages, auto-roles, auto-responses,
// custom commands, and suggestions.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/utils"
)

// ErrNotConfigured is returned when a feature is invoked before its
// channel has been set up. Commands turn it into a clean rejection.
var ErrNotConfigured = errors.New("automation: feature not configured")

// customCommandPrefix marks plain-text messages handled by the custom
// command table.
const customCommandPrefix = "!"

type Engine struct {
	store  *guildconfig.Store
	client platform.Client
}

func NewEngine(store *guildconfig.Store, client platform.Client) *Engine {
	return &Engine{store: store, client: client}
}

// OnMemberJoin runs the join automations: welcome message first, then
// auto-roles. Each tolerates failure independently.
func (e *Engine) OnMemberJoin(ctx context.Context, guildID, userID snowflake.ID, username, guildName string) error {
	cfg := e.store.Get(guildID)
	if cfg == nil {
		return nil
	}

	if cfg.Welcome != nil && cfg.Welcome.Channel != 0 {
		text := renderWelcome(cfg.Welcome.Template, username, guildName)
		if _, err := e.client.SendMessage(ctx, cfg.Welcome.Channel, discord.MessageCreate{
			Embeds: []discord.Embed{{
				Description: text,
				Color:       utils.SuccessColor,
			}},
		}); err != nil {
			slog.Error("Failed to send welcome message",
				slog.String("type", "evt"),
				slog.String("guild_id", guildID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	for _, roleID := range cfg.AutoRoles {
		if err := e.client.GrantRole(ctx, guildID, userID, roleID); err != nil {
			if errors.Is(err, platform.ErrNotFound) {
				continue
			}
			slog.Warn("Failed to grant auto-role",
				slog.String("type", "evt"),
				slog.String("guild_id", guildID.String()),
				slog.String("role_id", roleID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

func renderWelcome(template, username, guildName string) string {
	if template == "" {
		template = "Welcome {user} to {server}!"
	}
	replacer := strings.NewReplacer(
		"{user}", username,
		"{server}", guildName,
	)
	return replacer.Replace(template)
}

// OnMessage runs the message automations. Custom commands win over
// auto-responses; at most one reply is sent per message.
func (e *Engine) OnMessage(ctx context.Context, msg platform.Message) error {
	if msg.AuthorIsBot {
		return nil
	}
	cfg := e.store.Get(msg.GuildID)
	if cfg == nil {
		return nil
	}

	if reply, ok := matchCustomCommand(cfg.CustomCommands, msg.Content); ok {
		_, err := e.client.SendMessage(ctx, msg.ChannelID, discord.MessageCreate{Content: reply})
		if err != nil {
			return fmt.Errorf("failed to send custom command reply: %w", err)
		}
		return nil
	}

	if reply, ok := matchAutoResponse(cfg.AutoResponses, msg.Content); ok {
		_, err := e.client.SendMessage(ctx, msg.ChannelID, discord.MessageCreate{Content: reply})
		if err != nil {
			return fmt.Errorf("failed to send auto-response: %w", err)
		}
	}
	return nil
}

// matchCustomCommand matches "!trigger" messages exactly, ignoring
// surrounding whitespace and case.
func matchCustomCommand(commands map[string]string, content string) (string, bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, customCommandPrefix) {
		return "", false
	}
	trigger := strings.ToLower(strings.TrimPrefix(content, customCommandPrefix))
	reply, ok := commands[trigger]
	return reply, ok
}

// matchAutoResponse returns the reply of the first rule whose trigger
// appears in the message, case-insensitive.
func matchAutoResponse(rules []guildconfig.AutoResponse, content string) (string, bool) {
	lowered := strings.ToLower(content)
	for _, rule := range rules {
		if rule.Trigger != "" && strings.Contains(lowered, strings.ToLower(rule.Trigger)) {
			return rule.Response, true
		}
	}
	return "", false
}

// SubmitSuggestion posts a suggestion embed to the configured channel
// and seeds the vote reactions. Returns ErrNotConfigured when the
// guild has no suggestions channel.
func (e *Engine) SubmitSuggestion(ctx context.Context, guildID snowflake.ID, authorName, avatarURL, text string) (snowflake.ID, error) {
	cfg := e.store.Get(guildID)
	if cfg == nil || cfg.Suggestions == nil || cfg.Suggestions.Channel == 0 {
		return 0, ErrNotConfigured
	}
	channel := cfg.Suggestions.Channel

	messageID, err := e.client.SendMessage(ctx, channel, discord.MessageCreate{
		Embeds: []discord.Embed{{
			Author: &discord.EmbedAuthor{
				Name:    authorName,
				IconURL: avatarURL,
			},
			Title:       "New Suggestion",
			Description: text,
			Color:       utils.InfoColor,
		}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to post suggestion: %w", err)
	}

	for _, emoji := range []string{"👍", "👎"} {
		if err := e.client.AddReaction(ctx, channel, messageID, emoji); err != nil {
			slog.Warn("Failed to seed suggestion reaction",
				slog.String("type", "evt"),
				slog.String("guild_id", guildID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	return messageID, nil
}
