package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/automation"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var Suggest = discord.SlashCommandCreate{
	Name:        "suggest",
	Description: "💡 Submit a suggestion",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "text",
			Description: "Your suggestion",
			Required:    true,
		},
	},
}

func SuggestHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		text := e.SlashCommandInteractionData().String("text")
		user := e.User()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := b.Automation.SubmitSuggestion(ctx, gID, user.Username, user.EffectiveAvatarURL(), text)
		if err != nil {
			if errors.Is(err, automation.ErrNotConfigured) {
				return utils.EH.CreateEphemeralError(e, "Suggestions are not set up here. Ask an admin to run `/setupsuggestions`.")
			}
			return utils.EH.CreateErrorEmbed(e, "Failed to post your suggestion. Please try again.")
		}

		return utils.EH.CreateSuccessEmbed(e, "Your suggestion has been posted!")
	}
}

var SetupSuggestions = discord.SlashCommandCreate{
	Name:        "setupsuggestions",
	Description: "🛠️ Choose the suggestions channel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionChannel{
			Name:        "channel",
			Description: "Channel suggestions are posted to",
			Required:    true,
		},
	},
}

func SetupSuggestionsHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		channel := e.SlashCommandInteractionData().Channel("channel")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(cfg *guildconfig.GuildConfig) {
			cfg.Suggestions = &guildconfig.SuggestionsConfig{Channel: channel.ID}
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the suggestions config.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Suggestions will be posted to <#%s>.", channel.ID))
	}
}
