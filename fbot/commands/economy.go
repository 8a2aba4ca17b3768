package commands

import (
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/economy"
	"github.com/fbotlabs/fbot/fbot/utils"
)

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 Check a member's balance",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "Member to look up (defaults to you)",
		},
	},
}

func BalanceHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		target := e.User()
		if member, ok := e.SlashCommandInteractionData().OptUser("member"); ok {
			target = member
		}

		acct := b.Economy.Account(gID, target.ID)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("💰 %s's Balance", target.Username),
				Color: utils.EconomyColor,
				Fields: []discord.EmbedField{
					{Name: "💵 Cash", Value: fmt.Sprintf("$%d", acct.Balance), Inline: boolPtr(true)},
					{Name: "🏦 Bank", Value: fmt.Sprintf("$%d", acct.Bank), Inline: boolPtr(true)},
					{Name: "💎 Total", Value: fmt.Sprintf("$%d", acct.Total()), Inline: boolPtr(true)},
				},
			}},
		})
	}
}

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "🎁 Claim your daily reward",
}

func DailyHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		reward, err := b.Economy.Daily(gID, e.User().ID)
		if errors.Is(err, economy.ErrDailyClaimed) {
			return utils.EH.CreateErrorEmbed(e, "You already claimed your daily reward. Come back tomorrow!")
		}
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to claim the daily reward.")
		}

		acct := b.Economy.Account(gID, e.User().ID)
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🎁 Daily Reward!",
				Description: fmt.Sprintf("You received **$%d**!", reward),
				Color:       utils.SuccessColor,
				Fields: []discord.EmbedField{
					{Name: "New Balance", Value: fmt.Sprintf("$%d", acct.Balance), Inline: boolPtr(true)},
				},
			}},
		})
	}
}

var Pay = discord.SlashCommandCreate{
	Name:        "pay",
	Description: "💸 Pay another member",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "Member to pay",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Amount to pay",
			Required:    true,
			MinValue:    intPtr(1),
		},
	},
}

func PayHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		target := data.User("member")
		amount := data.Int("amount")

		if target.Bot {
			return utils.EH.CreateErrorEmbed(e, "You can't pay bots.")
		}
		if target.ID == e.User().ID {
			return utils.EH.CreateErrorEmbed(e, "You can't pay yourself.")
		}

		switch err := b.Economy.Pay(gID, e.User().ID, target.ID, amount); {
		case errors.Is(err, economy.ErrInvalidAmount):
			return utils.EH.CreateErrorEmbed(e, "The amount must be positive.")
		case errors.Is(err, economy.ErrInsufficientFunds):
			return utils.EH.CreateErrorEmbed(e, "Insufficient balance.")
		case err != nil:
			return utils.EH.CreateErrorEmbed(e, "Failed to send the payment.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("<@%s> paid <@%s> **$%d**.", e.User().ID, target.ID, amount))
	}
}
