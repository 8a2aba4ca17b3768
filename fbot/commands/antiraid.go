package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/antiraid"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var AntiRaid = discord.SlashCommandCreate{
	Name:        "antiraid",
	Description: "🛡️ Configure raid detection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "enable",
			Description: "Enable raid detection",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionInt{
					Name:        "threshold",
					Description: "Joins inside the window before action is taken",
					Required:    true,
					MinValue:    intPtr(1),
				},
				discord.ApplicationCommandOptionString{
					Name:        "action",
					Description: "What to do with burst joiners",
					Required:    true,
					Choices: []discord.ApplicationCommandOptionChoiceString{
						{Name: "Kick", Value: antiraid.ActionKick},
						{Name: "Ban", Value: antiraid.ActionBan},
						{Name: "Alert only", Value: antiraid.ActionAlert},
					},
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "disable",
			Description: "Disable raid detection",
		},
	},
}

func AntiRaidEnableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		threshold := data.Int("threshold")
		action := data.String("action")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			gc.AntiRaid = &guildconfig.AntiRaidConfig{
				Threshold: threshold,
				Action:    action,
			}
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the anti-raid config.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Anti-raid enabled: more than **%d** joins inside the window triggers **%s**.",
				threshold, action))
	}
}

func AntiRaidDisableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			gc.AntiRaid = nil
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the anti-raid config.")
		}

		return utils.EH.CreateSuccessEmbed(e, "Anti-raid disabled.")
	}
}
