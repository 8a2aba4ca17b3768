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

var JoinToCreate = discord.SlashCommandCreate{
	Name:        "jointocreate",
	Description: "🔊 Configure the join-to-create voice lobby",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Pick the lobby channel",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "lobby",
					Description: "Voice channel that spawns personal channels",
					Required:    true,
				},
				discord.ApplicationCommandOptionChannel{
					Name:        "category",
					Description: "Category new channels are created under",
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "disable",
			Description: "Disable join-to-create",
		},
	},
}

func JoinToCreateSetHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		lobby := data.Channel("lobby")
		cfg := &guildconfig.JoinToCreateConfig{Lobby: lobby.ID}
		if category, ok := data.OptChannel("category"); ok {
			cfg.Category = category.ID
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			gc.JoinToCreate = cfg
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the join-to-create config.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Joining <#%s> now creates a personal voice channel.", lobby.ID))
	}
}

func JoinToCreateDisableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			gc.JoinToCreate = nil
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the join-to-create config.")
		}

		return utils.EH.CreateSuccessEmbed(e, "Join-to-create disabled.")
	}
}

var TempVoice = discord.SlashCommandCreate{
	Name:        "tempvoice",
	Description: "🎙️ Create a personal voice channel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Channel name",
		},
		discord.ApplicationCommandOptionInt{
			Name:        "limit",
			Description: "User limit",
			MinValue:    intPtr(0),
		},
		discord.ApplicationCommandOptionBool{
			Name:        "hidden",
			Description: "Hide the channel from everyone else",
		},
	},
}

func TempVoiceHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		name, _ := data.OptString("name")
		limit, _ := data.OptInt("limit")
		hidden, _ := data.OptBool("hidden")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		channelID, err := b.VoiceManager.CreateOwned(ctx, gID, e.User().ID, name, limit, hidden)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to create the voice channel.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Created <#%s>. It will be removed once it sits empty.", channelID))
	}
}
