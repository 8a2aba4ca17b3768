package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/utils"
)

const transcriptLimit = 500

var Transcript = discord.SlashCommandCreate{
	Name:        "transcript",
	Description: "📄 Archive this channel's recent messages",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "limit",
			Description: "How many messages to archive (default 100, max 500)",
			MinValue:    intPtr(1),
		},
	},
}

func TranscriptHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}
		if b.ArchiveService == nil {
			return utils.EH.CreateErrorEmbed(e, "Archiving is not configured on this bot.")
		}

		limit := 100
		if v, ok := e.SlashCommandInteractionData().OptInt("limit"); ok {
			limit = v
		}
		if limit > transcriptLimit {
			limit = transcriptLimit
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		messages, err := b.Platform.MessagesBefore(ctx, e.ChannelID(), time.Now(), limit)
		if err != nil {
			_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "Failed to fetch channel history.",
					Color:       utils.ErrorColor,
				}},
			})
			return err
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Transcript of channel %s, taken %s\n\n",
			e.ChannelID(), time.Now().UTC().Format(time.RFC3339))
		// MessagesBefore yields newest first; render oldest first.
		for i := len(messages) - 1; i >= 0; i-- {
			msg := messages[i]
			fmt.Fprintf(&sb, "[%s] %s: %s\n",
				msg.CreatedAt.UTC().Format("2006-01-02 15:04:05"), msg.AuthorName, msg.Content)
			for _, url := range msg.AttachmentURLs {
				fmt.Fprintf(&sb, "    attachment: %s\n", url)
			}
		}

		url, err := b.ArchiveService.UploadTranscript(ctx, gID.String(), e.ChannelID().String(), []byte(sb.String()))
		if err != nil {
			_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "Failed to upload the transcript.",
					Color:       utils.ErrorColor,
				}},
			})
			return err
		}

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "📄 Transcript ready",
				Description: fmt.Sprintf("Archived **%d** messages.\n[Download](%s)", len(messages), url),
				Color:       utils.SuccessColor,
			}},
		})
		return err
	}
}

var Backup = discord.SlashCommandCreate{
	Name:        "backup",
	Description: "💾 Snapshot this server's structure and settings",
}

type backupSnapshot struct {
	GuildID   string           `json:"guild_id"`
	TakenAt   time.Time        `json:"taken_at"`
	Counts    *backupCounts    `json:"counts,omitempty"`
	Channels  []backupChannel  `json:"channels"`
	LogRoutes map[string]string `json:"log_routes,omitempty"`
}

type backupCounts struct {
	Members  int `json:"members"`
	Bots     int `json:"bots"`
	Channels int `json:"channels"`
	Roles    int `json:"roles"`
	Boosts   int `json:"boosts"`
}

type backupChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func BackupHandler(b *fbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		gID := guildID(e)
		if gID == 0 {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}
		if b.ArchiveService == nil {
			return utils.EH.CreateErrorEmbed(e, "Archiving is not configured on this bot.")
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		snapshot := backupSnapshot{
			GuildID: gID.String(),
			TakenAt: time.Now().UTC(),
		}
		if counts, ok := b.Platform.GuildCounts(gID); ok {
			snapshot.Counts = &backupCounts{
				Members:  counts.Members,
				Bots:     counts.Bots,
				Channels: counts.Channels,
				Roles:    counts.Roles,
				Boosts:   counts.Boosts,
			}
		}
		for _, ch := range b.Platform.TextChannels(gID) {
			snapshot.Channels = append(snapshot.Channels, backupChannel{
				ID:   ch.ID.String(),
				Name: ch.Name,
			})
		}
		if cfg := b.Store.Get(gID); cfg != nil {
			routes := make(map[string]string, len(cfg.LogChannels))
			for category, channelID := range cfg.LogChannels {
				routes[category] = channelID.String()
			}
			snapshot.LogRoutes = routes
		}

		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		url, err := b.ArchiveService.UploadBackup(ctx, gID.String(), data)
		if err != nil {
			_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "Failed to upload the backup.",
					Color:       utils.ErrorColor,
				}},
			})
			return err
		}

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "💾 Backup complete",
				Description: fmt.Sprintf("Snapshotted **%d** channels.\n[Download](%s)", len(snapshot.Channels), url),
				Color:       utils.SuccessColor,
			}},
		})
		return err
	}
}
