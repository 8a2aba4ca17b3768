package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var SaveTemplate = discord.SlashCommandCreate{
	Name:        "savetemplate",
	Description: "📐 Save a channel blueprint for later",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Template name",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "topic",
			Description: "Channel topic",
		},
		discord.ApplicationCommandOptionBool{
			Name:        "private",
			Description: "Hide the channel from everyone",
		},
	},
}

func SaveTemplateHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		name := strings.TrimSpace(data.String("name"))
		if name == "" {
			return utils.EH.CreateErrorEmbed(e, "The template name cannot be empty.")
		}
		topic, _ := data.OptString("topic")
		private, _ := data.OptBool("private")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			if gc.ChannelTemplates == nil {
				gc.ChannelTemplates = make(map[string]guildconfig.ChannelTemplate)
			}
			gc.ChannelTemplates[name] = guildconfig.ChannelTemplate{
				Name:      name,
				Topic:     topic,
				Private:   private,
				SavedAt:   time.Now(),
				SavedByID: e.User().ID,
			}
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the template.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Template `%s` saved. Restore it with `/loadtemplate`.", name))
	}
}

var LoadTemplate = discord.SlashCommandCreate{
	Name:        "loadtemplate",
	Description: "📐 Create a channel from a saved template",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Template to restore",
			Required:     true,
			Autocomplete: true,
		},
		discord.ApplicationCommandOptionChannel{
			Name:        "category",
			Description: "Category to create the channel under",
		},
	},
}

func LoadTemplateHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		name := strings.TrimSpace(data.String("name"))

		cfg := b.Store.Get(gID)
		if cfg == nil {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No template named `%s`.", name))
		}
		tmpl, ok := cfg.ChannelTemplates[name]
		if !ok {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No template named `%s`.", name))
		}

		spec := platform.TextChannelSpec{
			Name:    tmpl.Name,
			Topic:   tmpl.Topic,
			Private: tmpl.Private,
		}
		if category, hasCategory := data.OptChannel("category"); hasCategory {
			spec.CategoryID = category.ID
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		channelID, err := b.Platform.CreateTextChannel(ctx, gID, spec)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to create the channel.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Created <#%s> from template `%s`.", channelID, name))
	}
}

func LoadTemplateAutocompleteHandler(b *fbot.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic in autocomplete handler",
					slog.Any("panic", r),
					slog.String("stack_trace", string(debug.Stack())),
				)
			}
		}()

		focused := e.Data.Focused()
		if focused.Name != "name" {
			return nil
		}

		searchTerm := ""
		if focused.Value != nil {
			var s string
			if err := json.Unmarshal(focused.Value, &s); err != nil {
				return e.AutocompleteResult([]discord.AutocompleteChoice{})
			}
			searchTerm = strings.TrimSpace(s)
		}

		gID := e.GuildID()
		if gID == nil {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		cfg := b.Store.Get(*gID)
		if cfg == nil || len(cfg.ChannelTemplates) == 0 {
			return e.AutocompleteResult([]discord.AutocompleteChoice{})
		}

		names := make([]string, 0, len(cfg.ChannelTemplates))
		for name := range cfg.ChannelTemplates {
			names = append(names, name)
		}
		sort.Strings(names)

		if searchTerm != "" {
			matches := fuzzy.Find(searchTerm, names)
			matched := make([]string, 0, len(matches))
			for _, match := range matches {
				matched = append(matched, match.Str)
			}
			names = matched
		}

		choices := make([]discord.AutocompleteChoice, 0, min(len(names), 25))
		for _, name := range names {
			if len(choices) == 25 {
				break
			}
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  name,
				Value: name,
			})
		}
		return e.AutocompleteResult(choices)
	}
}
