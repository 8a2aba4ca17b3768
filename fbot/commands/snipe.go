package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var Snipe = discord.SlashCommandCreate{
	Name:        "snipe",
	Description: "👀 Show the last deleted message in this channel",
}

func SnipeHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		snapshot, ok := b.Snipes.Deletion(e.ChannelID())
		if !ok {
			return utils.EH.CreateInfoEmbed(e, "Nothing to snipe in this channel.")
		}

		embed := discord.Embed{
			Author: &discord.EmbedAuthor{
				Name: snapshot.AuthorName,
			},
			Description: snapshot.Content,
			Color:       utils.WarningColor,
			Footer: &discord.EmbedFooter{
				Text: "Deleted",
			},
			Timestamp: &snapshot.DeletedAt,
		}
		if len(snapshot.AttachmentURLs) > 0 {
			embed.Image = &discord.EmbedResource{URL: snapshot.AttachmentURLs[0]}
		}
		return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}

var EditSnipe = discord.SlashCommandCreate{
	Name:        "editsnipe",
	Description: "✏️ Show the last edited message in this channel",
}

func EditSnipeHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		snapshot, ok := b.Snipes.Edit(e.ChannelID())
		if !ok {
			return utils.EH.CreateInfoEmbed(e, "No edits to snipe in this channel.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Author: &discord.EmbedAuthor{
					Name: snapshot.AuthorName,
				},
				Color: utils.WarningColor,
				Fields: []discord.EmbedField{
					{Name: "Before", Value: snapshot.Before},
					{Name: "After", Value: snapshot.After},
				},
				Footer: &discord.EmbedFooter{
					Text: "Edited",
				},
				Timestamp: &snapshot.EditedAt,
			}},
		})
	}
}
