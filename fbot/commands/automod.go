package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var automodRuleChoices = []discord.ApplicationCommandOptionChoiceString{
	{Name: "Spam", Value: "spam"},
	{Name: "Excessive caps", Value: "caps"},
	{Name: "Links", Value: "links"},
	{Name: "Server invites", Value: "invites"},
	{Name: "Mass mentions", Value: "mentions"},
}

var Automod = discord.SlashCommandCreate{
	Name:        "automod",
	Description: "🛡️ Configure auto-moderation rules",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Set the action for a rule",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "rule",
					Description: "Rule to configure",
					Required:    true,
					Choices:     automodRuleChoices,
				},
				discord.ApplicationCommandOptionString{
					Name:        "action",
					Description: "Action to take",
					Required:    true,
					Choices: []discord.ApplicationCommandOptionChoiceString{
						{Name: "Delete", Value: "delete"},
						{Name: "Warn", Value: "warn"},
						{Name: "Timeout", Value: "timeout"},
						{Name: "Kick", Value: "kick"},
					},
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove a rule",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "rule",
					Description: "Rule to remove",
					Required:    true,
					Choices:     automodRuleChoices,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "List configured rules",
		},
	},
}

// applyAutomodRule stores rule -> action, creating the table on first
// use.
func applyAutomodRule(cfg *guildconfig.GuildConfig, rule, action string) {
	if cfg.Automod == nil {
		cfg.Automod = make(map[string]string)
	}
	cfg.Automod[rule] = action
}

// removeAutomodRule reports whether the rule was configured.
func removeAutomodRule(cfg *guildconfig.GuildConfig, rule string) bool {
	if _, ok := cfg.Automod[rule]; !ok {
		return false
	}
	delete(cfg.Automod, rule)
	return true
}

func AutomodSetHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		rule := data.String("rule")
		action := data.String("action")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			applyAutomodRule(gc, rule, action)
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the automod config.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Auto-mod configured: **%s** → **%s**.", rule, action))
	}
}

func AutomodRemoveHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		rule := e.SlashCommandInteractionData().String("rule")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		removed := false
		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			removed = removeAutomodRule(gc, rule)
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the automod config.")
		}
		if !removed {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No automod rule named **%s** is configured.", rule))
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Removed the **%s** rule.", rule))
	}
}

func AutomodListHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		cfg := b.Store.Get(gID)
		if cfg == nil || len(cfg.Automod) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No automod rules are configured.")
		}

		rules := make([]string, 0, len(cfg.Automod))
		for rule := range cfg.Automod {
			rules = append(rules, rule)
		}
		sort.Strings(rules)

		var sb strings.Builder
		for _, rule := range rules {
			fmt.Fprintf(&sb, "**%s** → %s\n", rule, cfg.Automod[rule])
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🛡️ Auto-mod rules",
				Description: sb.String(),
				Color:       utils.InfoColor,
			}},
		})
	}
}
