package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/leveling"
	"github.com/fbotlabs/fbot/fbot/utils"
)

const membersPerPage = 10

var Rank = discord.SlashCommandCreate{
	Name:        "rank",
	Description: "📈 Show a member's level and XP",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "Member to look up (defaults to you)",
		},
	},
}

func RankHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		target := e.User()
		if member, ok := e.SlashCommandInteractionData().OptUser("member"); ok {
			target = member
		}

		rec := b.Leveling.Record(gID, target.ID)
		needed := leveling.Threshold(rec.Level)

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: fmt.Sprintf("📈 %s", target.Username),
				Color: utils.LevelColor,
				Fields: []discord.EmbedField{
					{Name: "Level", Value: fmt.Sprintf("%d", rec.Level), Inline: boolPtr(true)},
					{Name: "XP", Value: fmt.Sprintf("%d / %d", rec.XP, needed), Inline: boolPtr(true)},
					{Name: "Messages", Value: fmt.Sprintf("%d", rec.Messages), Inline: boolPtr(true)},
				},
			}},
		})
	}
}

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🏆 Show the server's leaderboard",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "board",
			Description: "Which leaderboard to show (defaults to levels)",
			Choices: []discord.ApplicationCommandOptionChoiceString{
				{Name: "Levels", Value: "levels"},
				{Name: "Balance", Value: "balance"},
			},
		},
	},
}

func LeaderboardHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		board, _ := e.SlashCommandInteractionData().OptString("board")
		if board == "balance" {
			accounts := b.Economy.Top(gID, 0)
			if len(accounts) == 0 {
				return utils.EH.CreateInfoEmbed(e, "Nobody has earned any money yet.")
			}
			lines := make([]string, len(accounts))
			for i, acct := range accounts {
				lines[i] = fmt.Sprintf("<@%s> • 💰 **$%d**", acct.UserID, acct.Total())
			}
			return paginateBoard(b, e, "🏆 Richest Members", utils.EconomyColor, lines)
		}

		records := b.Leveling.Top(gID, 0)
		if len(records) == 0 {
			return utils.EH.CreateInfoEmbed(e, "Nobody has earned XP yet.")
		}
		lines := make([]string, len(records))
		for i, rec := range records {
			lines[i] = fmt.Sprintf("<@%s> • Level **%d** (%d XP, %d messages)",
				rec.UserID, rec.Level, rec.XP, rec.Messages)
		}
		return paginateBoard(b, e, "🏆 Leaderboard", utils.LevelColor, lines)
	}
}

// paginateBoard renders ranked lines ten per page, medals for the top
// three.
func paginateBoard(b *fbot.Bot, e *handler.CommandEvent, title string, color int, lines []string) error {
	totalPages := int(math.Ceil(float64(len(lines)) / float64(membersPerPage)))

	return b.Paginator.Create(e.Respond, paginator.Pages{
		ID:      e.ID().String(),
		Creator: e.User().ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			startIdx := page * membersPerPage
			endIdx := min(startIdx+membersPerPage, len(lines))

			var description strings.Builder
			for i, line := range lines[startIdx:endIdx] {
				rank := startIdx + i + 1
				medal := fmt.Sprintf("`#%d`", rank)
				switch rank {
				case 1:
					medal = "🥇"
				case 2:
					medal = "🥈"
				case 3:
					medal = "🥉"
				}
				fmt.Fprintf(&description, "%s %s\n", medal, line)
			}

			embed.
				SetTitle(title).
				SetDescription(description.String()).
				SetColor(color).
				SetFooter(fmt.Sprintf("Page %d/%d • %d members ranked", page+1, totalPages, len(lines)), "")
		},
		Pages:      totalPages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}

func boolPtr(b bool) *bool {
	return &b
}
