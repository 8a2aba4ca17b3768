package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/router"
	"github.com/fbotlabs/fbot/fbot/utils"
)

func categoryChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(router.Categories)+1)
	for _, category := range append(append([]string{}, router.Categories...), router.CategoryAll) {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{
			Name:  category,
			Value: category,
		})
	}
	return choices
}

var SetLog = discord.SlashCommandCreate{
	Name:        "setlog",
	Description: "📋 Route a log category to a channel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Set the destination channel for a category",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "category",
					Description: "Log category",
					Required:    true,
					Choices:     categoryChoices(),
				},
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Destination channel",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "unset",
			Description: "Remove the destination channel for a category",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "category",
					Description: "Log category",
					Required:    true,
					Choices:     categoryChoices(),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "Show the configured log routes",
		},
	},
}

func SetLogSetHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		category := data.String("category")
		channel := data.Channel("channel")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(cfg *guildconfig.GuildConfig) {
			if cfg.LogChannels == nil {
				cfg.LogChannels = make(map[string]snowflake.ID)
			}
			cfg.LogChannels[category] = channel.ID
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the log route. Please try again.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Logs for **%s** will go to <#%s>.", category, channel.ID))
	}
}

func SetLogUnsetHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		category := e.SlashCommandInteractionData().String("category")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(cfg *guildconfig.GuildConfig) {
			delete(cfg.LogChannels, category)
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the log route. Please try again.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Logs for **%s** are no longer routed.", category))
	}
}

func SetLogListHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		cfg, ok := b.Store.Snapshot(gID)
		if !ok || len(cfg.LogChannels) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No log routes configured. Use `/setlog set` to add one.")
		}

		var sb strings.Builder
		for _, category := range append(append([]string{}, router.Categories...), router.CategoryAll) {
			if channel, ok := cfg.LogChannels[category]; ok {
				fmt.Fprintf(&sb, "**%s** → <#%s>\n", category, channel)
			}
		}
		return utils.EH.CreateInfoEmbed(e, sb.String())
	}
}

var SetupLogChannels = discord.SlashCommandCreate{
	Name:        "setuplogchannels",
	Description: "🏗️ Create a log category with one channel per log type",
}

func SetupLogChannelsHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		categoryID, err := b.Platform.CreateCategory(ctx, gID, "Server Logs")
		if err != nil {
			_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "Failed to create the log category. Check my permissions.",
					Color:       utils.ErrorColor,
				}},
			})
			return err
		}

		routes := make(map[string]snowflake.ID, len(router.Categories))
		for _, category := range router.Categories {
			channelID, err := b.Platform.CreateTextChannel(ctx, gID, platform.TextChannelSpec{
				Name:       fmt.Sprintf("%s-logs", category),
				CategoryID: categoryID,
				Private:    true,
			})
			if err != nil {
				continue
			}
			routes[category] = channelID
		}

		if err := b.Store.Mutate(ctx, gID, func(cfg *guildconfig.GuildConfig) {
			if cfg.LogChannels == nil {
				cfg.LogChannels = make(map[string]snowflake.ID)
			}
			for category, channel := range routes {
				cfg.LogChannels[category] = channel
			}
		}); err != nil {
			_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "Channels were created but saving the routes failed.",
					Color:       utils.ErrorColor,
				}},
			})
			return err
		}

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Description: fmt.Sprintf("Created **%d** log channels under <#%s>.", len(routes), categoryID),
				Color:       utils.SuccessColor,
			}},
		})
		return err
	}
}
