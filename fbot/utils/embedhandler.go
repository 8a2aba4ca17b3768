package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

// Embed colors shared by commands and log notifications.
const (
	SuccessColor = 0x57F287
	ErrorColor   = 0xED4245
	WarningColor = 0xFEE75C
	InfoColor    = 0x5865F2
	StarColor    = 0xFFAC33
	LevelColor   = 0x9B59B6
	EconomyColor = 0xF1C40F
)

// ResponseHandler provides standardized response methods for commands.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// CreateErrorEmbed creates a standard error embed for command events.
func (h *ResponseHandler) CreateErrorEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       ErrorColor,
		}},
	})
}

// CreateSuccessEmbed creates a standard success embed for command events.
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       SuccessColor,
		}},
	})
}

// CreateInfoEmbed creates a standard info embed for command events.
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       InfoColor,
		}},
	})
}

// CreateEphemeralError creates an ephemeral error message.
func (h *ResponseHandler) CreateEphemeralError(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: message,
			Color:       ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}
