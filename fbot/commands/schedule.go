package commands

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var Remind = discord.SlashCommandCreate{
	Name:        "remind",
	Description: "⏰ Set a reminder in this channel",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "duration",
			Description: "When to remind you, e.g. 10m, 2h, 1h30m",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "text",
			Description: "What to remind you about",
			Required:    true,
		},
	},
}

func RemindHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		data := e.SlashCommandInteractionData()

		duration, err := time.ParseDuration(data.String("duration"))
		if err != nil || duration <= 0 {
			return utils.EH.CreateErrorEmbed(e, "Invalid duration. Use formats like `10m`, `2h` or `1h30m`.")
		}
		if duration > 30*24*time.Hour {
			return utils.EH.CreateErrorEmbed(e, "Reminders can be at most 30 days out.")
		}

		dueAt := time.Now().Add(duration)
		b.Scheduler.AddReminder(gID, e.ChannelID(), e.User().ID, data.String("text"), dueAt)

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("I'll remind you <t:%d:R>.", dueAt.Unix()))
	}
}

var Schedule = discord.SlashCommandCreate{
	Name:        "schedule",
	Description: "📨 Schedule a message",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionChannel{
			Name:        "channel",
			Description: "Channel to post in",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "duration",
			Description: "When to post, e.g. 10m, 2h",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "message",
			Description: "The message content",
			Required:    true,
		},
	},
}

func ScheduleHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}
		data := e.SlashCommandInteractionData()

		duration, err := time.ParseDuration(data.String("duration"))
		if err != nil || duration <= 0 {
			return utils.EH.CreateErrorEmbed(e, "Invalid duration. Use formats like `10m`, `2h` or `1h30m`.")
		}

		channel := data.Channel("channel")
		dueAt := time.Now().Add(duration)
		b.Scheduler.AddScheduledMessage(gID, channel.ID, data.String("message"), dueAt)

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Message scheduled for <#%s> <t:%d:R>.", channel.ID, dueAt.Unix()))
	}
}
