package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var AutoWelcome = discord.SlashCommandCreate{
	Name:        "autowelcome",
	Description: "👋 Configure welcome messages",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "set",
			Description: "Set the welcome channel and message",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        "channel",
					Description: "Channel welcomes are posted to",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "message",
					Description: "Template, {user} and {server} are replaced",
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "disable",
			Description: "Disable welcome messages",
		},
	},
}

func AutoWelcomeSetHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		channel := data.Channel("channel")
		template, _ := data.OptString("message")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			gc.Welcome = &guildconfig.WelcomeConfig{
				Channel:  channel.ID,
				Template: template,
			}
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the welcome config.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("New members will be welcomed in <#%s>.", channel.ID))
	}
}

func AutoWelcomeDisableHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			gc.Welcome = nil
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the welcome config.")
		}

		return utils.EH.CreateSuccessEmbed(e, "Welcome messages disabled.")
	}
}

var AutoRole = discord.SlashCommandCreate{
	Name:        "autorole",
	Description: "🏷️ Roles granted to every new member",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Add a role to the auto-role list",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionRole{
					Name:        "role",
					Description: "Role to grant on join",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove a role from the auto-role list",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionRole{
					Name:        "role",
					Description: "Role to stop granting",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "List auto-roles",
		},
	},
}

func AutoRoleAddHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		role := e.SlashCommandInteractionData().Role("role")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var already bool
		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			for _, id := range gc.AutoRoles {
				if id == role.ID {
					already = true
					return
				}
			}
			gc.AutoRoles = append(gc.AutoRoles, role.ID)
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the auto-role config.")
		}

		if already {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("<@&%s> is already an auto-role.", role.ID))
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("<@&%s> will be granted to new members.", role.ID))
	}
}

func AutoRoleRemoveHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		role := e.SlashCommandInteractionData().Role("role")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			kept := gc.AutoRoles[:0]
			for _, id := range gc.AutoRoles {
				if id != role.ID {
					kept = append(kept, id)
				}
			}
			gc.AutoRoles = kept
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the auto-role config.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("<@&%s> removed from auto-roles.", role.ID))
	}
}

func AutoRoleListHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		cfg := b.Store.Get(gID)
		if cfg == nil || len(cfg.AutoRoles) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No auto-roles configured.")
		}

		var sb strings.Builder
		for _, id := range cfg.AutoRoles {
			fmt.Fprintf(&sb, "<@&%s>\n", id)
		}
		return utils.EH.CreateInfoEmbed(e, sb.String())
	}
}

var AutoResponse = discord.SlashCommandCreate{
	Name:        "autoresponse",
	Description: "💬 Reply automatically when a trigger appears in chat",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Add an auto-response",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "trigger",
					Description: "Text that triggers the response",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "response",
					Description: "What to reply with",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove an auto-response",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "trigger",
					Description: "Trigger of the response to remove",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "List auto-responses",
		},
	},
}

func AutoResponseAddHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		trigger := strings.TrimSpace(data.String("trigger"))
		response := data.String("response")
		if trigger == "" {
			return utils.EH.CreateErrorEmbed(e, "The trigger cannot be empty.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			for i, ar := range gc.AutoResponses {
				if strings.EqualFold(ar.Trigger, trigger) {
					gc.AutoResponses[i].Response = response
					return
				}
			}
			gc.AutoResponses = append(gc.AutoResponses, guildconfig.AutoResponse{
				Trigger:  trigger,
				Response: response,
			})
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the auto-response.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("Messages containing `%s` will get a reply.", trigger))
	}
}

func AutoResponseRemoveHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		trigger := strings.TrimSpace(e.SlashCommandInteractionData().String("trigger"))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var found bool
		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			kept := gc.AutoResponses[:0]
			for _, ar := range gc.AutoResponses {
				if strings.EqualFold(ar.Trigger, trigger) {
					found = true
					continue
				}
				kept = append(kept, ar)
			}
			gc.AutoResponses = kept
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the auto-response config.")
		}

		if !found {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("No auto-response with trigger `%s`.", trigger))
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("Auto-response `%s` removed.", trigger))
	}
}

func AutoResponseListHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		cfg := b.Store.Get(gID)
		if cfg == nil || len(cfg.AutoResponses) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No auto-responses configured.")
		}

		var sb strings.Builder
		for _, ar := range cfg.AutoResponses {
			fmt.Fprintf(&sb, "`%s` → %s\n", ar.Trigger, truncateValue(ar.Response, 80))
		}
		return utils.EH.CreateInfoEmbed(e, sb.String())
	}
}

var CustomCmd = discord.SlashCommandCreate{
	Name:        "customcmd",
	Description: "⚙️ Manage custom ! commands",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "add",
			Description: "Add a custom command",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "name",
					Description: "Command name, invoked as !name",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "response",
					Description: "What the command replies with",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "remove",
			Description: "Remove a custom command",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "name",
					Description: "Command name to remove",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "list",
			Description: "List custom commands",
		},
	},
}

func CustomCmdAddHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		name := strings.ToLower(strings.TrimSpace(data.String("name")))
		response := data.String("response")
		if name == "" || strings.ContainsAny(name, " \t\n") {
			return utils.EH.CreateErrorEmbed(e, "Command names cannot contain spaces.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			if gc.CustomCommands == nil {
				gc.CustomCommands = make(map[string]string)
			}
			gc.CustomCommands[name] = response
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the custom command.")
		}

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("`!%s` is ready to use.", name))
	}
}

func CustomCmdRemoveHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		name := strings.ToLower(strings.TrimSpace(e.SlashCommandInteractionData().String("name")))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var found bool
		if err := b.Store.Mutate(ctx, gID, func(gc *guildconfig.GuildConfig) {
			if _, ok := gc.CustomCommands[name]; ok {
				found = true
				delete(gc.CustomCommands, name)
			}
		}); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to save the custom command config.")
		}

		if !found {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("No custom command named `%s`.", name))
		}
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("`!%s` removed.", name))
	}
}

func CustomCmdListHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		cfg := b.Store.Get(gID)
		if cfg == nil || len(cfg.CustomCommands) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No custom commands configured.")
		}

		names := make([]string, 0, len(cfg.CustomCommands))
		for name := range cfg.CustomCommands {
			names = append(names, name)
		}
		sort.Strings(names)

		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "`!%s` → %s\n", name, truncateValue(cfg.CustomCommands[name], 80))
		}
		return utils.EH.CreateInfoEmbed(e, sb.String())
	}
}

func truncateValue(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
