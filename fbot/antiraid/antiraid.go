// Package antiraid watches join bursts through a sliding time window
// and responds with the configured action.
package antiraid

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/utils"
)

// Actions a triggered detector can take against the joining member.
const (
	ActionKick  = "kick"
	ActionBan   = "ban"
	ActionAlert = "alert"
)

type Detector struct {
	mu      sync.Mutex
	windows map[snowflake.ID][]time.Time
	window  time.Duration
	store   *guildconfig.Store
	client  platform.Client
	now     func() time.Time
}

func New(store *guildconfig.Store, client platform.Client, window time.Duration) *Detector {
	if window <= 0 {
		window = time.Minute
	}
	return &Detector{
		windows: make(map[snowflake.ID][]time.Time),
		window:  window,
		store:   store,
		client:  client,
		now:     time.Now,
	}
}

// WindowSize returns the current join count inside the guild's window.
func (d *Detector) WindowSize(guildID snowflake.ID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.windows[guildID])
}

// OnJoin records the join and, while the window stays over threshold,
// fires the configured action. The detector deliberately re-triggers
// on every join during an ongoing burst; there is no cooldown.
func (d *Detector) OnJoin(ctx context.Context, guildID, userID snowflake.ID) error {
	cfg := d.store.Get(guildID)
	if cfg == nil || cfg.AntiRaid == nil {
		return nil
	}
	ar := cfg.AntiRaid

	now := d.now()
	cutoff := now.Add(-d.window)

	d.mu.Lock()
	window := d.windows[guildID]
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)
	d.windows[guildID] = kept
	count := len(kept)
	d.mu.Unlock()

	if count <= ar.Threshold {
		return nil
	}

	slog.Warn("Raid threshold exceeded",
		slog.String("type", "evt"),
		slog.String("guild_id", guildID.String()),
		slog.Int("joins", count),
		slog.String("action", ar.Action),
	)
	return d.respond(ctx, guildID, userID, count, ar)
}

func (d *Detector) respond(ctx context.Context, guildID, userID snowflake.ID, count int, cfg *guildconfig.AntiRaidConfig) error {
	switch cfg.Action {
	case ActionKick:
		if err := d.client.KickMember(ctx, guildID, userID, "Anti-raid: join burst detected"); err != nil {
			return fmt.Errorf("failed to kick raider: %w", err)
		}
	case ActionBan:
		if err := d.client.BanMember(ctx, guildID, userID, "Anti-raid: join burst detected"); err != nil {
			return fmt.Errorf("failed to ban raider: %w", err)
		}
	default:
		return d.alert(ctx, guildID, count, cfg.Threshold)
	}
	return nil
}

// alert posts to the first text channel the bot can write to.
func (d *Detector) alert(ctx context.Context, guildID snowflake.ID, count, threshold int) error {
	embed := discord.Embed{
		Title:       "Possible raid in progress",
		Description: fmt.Sprintf("%d members joined within the last %s (threshold %d).", count, d.window, threshold),
		Color:       utils.ErrorColor,
	}

	for _, channel := range d.client.TextChannels(guildID) {
		_, err := d.client.SendMessage(ctx, channel.ID, discord.MessageCreate{
			Embeds: []discord.Embed{embed},
		})
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("no writable channel for raid alert in guild %s", guildID)
}
