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
	"github.com/fbotlabs/fbot/fbot/utils"
)

var ReactionRole = discord.SlashCommandCreate{
	Name:        "reactionrole",
	Description: "🎭 Bind reactions to roles",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Bind an emoji on a message to a role",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel containing the message",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "message_id",
					Description: "The message to bind on",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "emoji",
					Description: "The emoji to react with",
					Required:    true,
				},
				discord.ApplicationCommandOptionRole{
					Name:        "role",
					Description: "The role to grant",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove a binding",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "message_id",
					Description: "The bound message",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "emoji",
					Description: "The bound emoji",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "List this server's bindings",
		},
	},
}

func ReactionRoleAddHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		channel := data.Channel("channel")
		emoji := strings.TrimSpace(data.String("emoji"))
		role := data.Role("role")

		messageID, err := snowflake.Parse(data.String("message_id"))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Invalid message id.")
		}

		b.ReactionRoles.Bind(gID, messageID, emoji, role.ID)

		// Seed the prompt reaction so members have something to click.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.Platform.AddReaction(ctx, channel.ID, messageID, emoji); err != nil {
			return utils.EH.CreateErrorEmbed(e,
				"Binding saved, but I could not react to the message. Check the emoji and my permissions.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Reacting with %s on that message now grants <@&%s>.", emoji, role.ID))
	}
}

func ReactionRoleRemoveHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		messageID, err := snowflake.Parse(data.String("message_id"))
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Invalid message id.")
		}

		b.ReactionRoles.Unbind(messageID, strings.TrimSpace(data.String("emoji")))
		return utils.EH.CreateSuccessEmbed(e, "Binding removed.")
	}
}

func ReactionRoleListHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		bindings := b.ReactionRoles.BindingsFor(gID)
		if len(bindings) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No reaction roles configured.")
		}

		var sb strings.Builder
		for _, binding := range bindings {
			fmt.Fprintf(&sb, "%s on `%s` → <@&%s>\n", binding.Emoji, binding.MessageID, binding.RoleID)
		}
		return utils.EH.CreateInfoEmbed(e, sb.String())
	}
}
