// Package starboard promotes messages that collect enough star
// reactions into a dedicated channel, at most once per message.
package starboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/utils"
)

const DefaultEmoji = "⭐"

// Entry records a completed promotion, keyed by source message id.
type Entry struct {
	Posted             bool
	StarboardMessageID snowflake.ID
}

type Aggregator struct {
	mu      sync.Mutex
	entries map[snowflake.ID]Entry
	store   *guildconfig.Store
	client  platform.Client
}

func NewAggregator(store *guildconfig.Store, client platform.Client) *Aggregator {
	return &Aggregator{
		entries: make(map[snowflake.ID]Entry),
		store:   store,
		client:  client,
	}
}

// Entry returns the promotion record for a source message.
func (a *Aggregator) Entry(messageID snowflake.ID) (Entry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry, ok := a.entries[messageID]
	return entry, ok
}

// Observe evaluates a star-count observation. Disabled starboard, a
// count below threshold, and an already promoted message are all
// no-ops. Crossing the threshold cross-posts the source message and
// records the promotion so later observations never post again.
//
// A zero starCount means the gateway message cache missed, so the
// message is fetched and its star reaction counted instead. Messages
// older than the cache can still be promoted that way.
func (a *Aggregator) Observe(ctx context.Context, guildID, channelID, messageID snowflake.ID, starCount int) error {
	cfg := a.store.Get(guildID)
	if cfg == nil || cfg.Starboard == nil {
		return nil
	}
	sb := cfg.Starboard
	if channelID == sb.Channel {
		return nil
	}

	var source *platform.Message
	if starCount == 0 {
		fetched, err := a.client.FetchMessage(ctx, channelID, messageID)
		if err != nil {
			return fmt.Errorf("failed to count stars: %w", err)
		}
		source = fetched
		starCount = fetched.Reactions[emojiFor(sb)]
	}
	if starCount < sb.Threshold {
		return nil
	}

	// Reserve the entry under the lock so concurrent observations of
	// the same message cannot both promote it.
	a.mu.Lock()
	if _, exists := a.entries[messageID]; exists {
		a.mu.Unlock()
		return nil
	}
	a.entries[messageID] = Entry{}
	a.mu.Unlock()

	starboardMessageID, err := a.promote(ctx, guildID, channelID, messageID, starCount, sb, source)
	if err != nil {
		// Drop the reservation so a later observation can retry.
		a.mu.Lock()
		delete(a.entries, messageID)
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	a.entries[messageID] = Entry{Posted: true, StarboardMessageID: starboardMessageID}
	a.mu.Unlock()
	return nil
}

func (a *Aggregator) promote(ctx context.Context, guildID, channelID, messageID snowflake.ID, starCount int, cfg *guildconfig.StarboardConfig, source *platform.Message) (snowflake.ID, error) {
	if source == nil {
		fetched, err := a.client.FetchMessage(ctx, channelID, messageID)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch starred message: %w", err)
		}
		source = fetched
	}

	emoji := emojiFor(cfg)

	jumpLink := fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
	embed := discord.Embed{
		Author: &discord.EmbedAuthor{
			Name:    source.AuthorName,
			IconURL: source.AuthorAvatarURL,
		},
		Description: source.Content,
		Color:       utils.StarColor,
		Fields: []discord.EmbedField{
			{Name: "Source", Value: fmt.Sprintf("[Jump to message](%s)", jumpLink)},
		},
	}
	if len(source.AttachmentURLs) > 0 {
		embed.Image = &discord.EmbedResource{URL: source.AttachmentURLs[0]}
	}

	posted, err := a.client.SendMessage(ctx, cfg.Channel, discord.MessageCreate{
		Content: fmt.Sprintf("%s **%d** <#%s>", emoji, starCount, channelID),
		Embeds:  []discord.Embed{embed},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to post to starboard: %w", err)
	}
	return posted, nil
}

func emojiFor(cfg *guildconfig.StarboardConfig) string {
	if cfg.Emoji == "" {
		return DefaultEmoji
	}
	return cfg.Emoji
}
