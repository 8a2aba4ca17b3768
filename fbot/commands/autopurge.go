package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var AutoPurge = discord.SlashCommandCreate{
	Name:        "autopurge",
	Description: "🧹 Automatically delete old messages in a channel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "enable",
			Description: "Enable auto-purge on a channel",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel to purge",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "max_age",
					Description: "Delete messages older than this, e.g. 24h",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "interval",
					Description: "How often to sweep, e.g. 1h (default 1h)",
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "disable",
			Description: "Disable auto-purge on a channel",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel to stop purging",
					Required:    true,
				},
			},
		},
	},
}

func AutoPurgeEnableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		channel := data.Channel("channel")

		maxAge, err := time.ParseDuration(data.String("max_age"))
		if err != nil || maxAge < time.Minute {
			return utils.EH.CreateErrorEmbed(e, "Invalid max age. Use formats like `30m`, `24h` (minimum 1m).")
		}

		interval := time.Hour
		if raw, ok := data.OptString("interval"); ok {
			interval, err = time.ParseDuration(raw)
			if err != nil || interval < time.Minute {
				return utils.EH.CreateErrorEmbed(e, "Invalid interval. Use formats like `30m`, `1h` (minimum 1m).")
			}
		}

		cfg := guildconfig.AutoPurgeConfig{MaxAge: maxAge, Interval: interval}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			if gc.AutoPurge == nil {
				gc.AutoPurge = make(map[snowflake.ID]guildconfig.AutoPurgeConfig)
			}
			gc.AutoPurge[channel.ID] = cfg
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the auto-purge config.")
		}

		b.Scheduler.StartPurge(gID, channel.ID, cfg)

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Messages in <#%s> older than **%s** will be purged every **%s**.",
				channel.ID, maxAge, interval))
	}
}

func AutoPurgeDisableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		channel := e.SlashCommandInteractionData().Channel("channel")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			delete(gc.AutoPurge, channel.ID)
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the auto-purge config.")
		}

		b.Scheduler.StopPurge(channel.ID)
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Auto-purge disabled for <#%s>.", channel.ID))
	}
}
