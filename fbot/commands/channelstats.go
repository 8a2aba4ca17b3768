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

var ChannelStats = discord.SlashCommandCreate{
	Name:        "channelstats",
	Description: "📊 Render live server stats into a channel name",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Bind a stats template to a channel",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel whose name gets rewritten",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "template",
					Description: "Name template, e.g. 👥 Members: {members}",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Stop updating a channel's name",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel to release",
					Required:    true,
				},
			},
		},
	},
}

func ChannelStatsSetHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		channel := data.Channel("channel")
		template := data.String("template")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			if gc.StatsChannels == nil {
				gc.StatsChannels = make(map[snowflake.ID]string)
			}
			gc.StatsChannels[channel.ID] = template
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the stats config.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("<#%s> will be renamed on the next stats refresh. Placeholders: `{members}` `{bots}` `{online}` `{channels}` `{roles}` `{boosts}`.", channel.ID))
	}
}

func ChannelStatsRemoveHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		channel := e.SlashCommandInteractionData().Channel("channel")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			delete(gc.StatsChannels, channel.ID)
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the stats config.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("<#%s> released.", channel.ID))
	}
}
