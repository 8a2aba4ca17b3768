package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var Starboard = discord.SlashCommandCreate{
	Name:        "starboard",
	Description: "⭐ Configure the starboard",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "enable",
			Description: "Enable the starboard",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel starred messages are posted to",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "threshold",
					Description: "Stars needed for promotion",
					Required:    true,
					MinValue:    intPtr(1),
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "disable",
			Description: "Disable the starboard",
		},
	},
}

func StarboardEnableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		channel := data.Channel("channel")
		threshold := data.Int("threshold")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(cfg *guildconfig.GuildConfig) {
			cfg.Starboard = &guildconfig.StarboardConfig{
				Channel:   channel.ID,
				Threshold: threshold,
			}
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the starboard config.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Starboard enabled: **%d** ⭐ sends a message to <#%s>.", threshold, channel.ID))
	}
}

func StarboardDisableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(cfg *guildconfig.GuildConfig) {
			cfg.Starboard = nil
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the starboard config.")
		}

		return utils.EH.CreateSuccessEmbed(e, "Starboard disabled.")
	}
}
