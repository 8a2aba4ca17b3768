package scheduler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/fbotlabs/fbot/fbot/platform"
)

// maxConcurrentRenames bounds the stats fan-out so a bot in many guilds
// does not open one rename request per channel at once.
const maxConcurrentRenames = 4

// RefreshStats recomputes guild counters and renames every configured
// stat channel whose rendered label changed since the last pass.
func (s *Scheduler) RefreshStats(ctx context.Context) {
	start := time.Now()

	type rename struct {
		guild   string
		channel string
		label   string
	}

	var renames []rename
	sem := semaphore.NewWeighted(maxConcurrentRenames)
	group, groupCtx := errgroup.WithContext(ctx)

	for _, guildID := range s.store.GuildIDs() {
		cfg := s.store.Get(guildID)
		if cfg == nil || len(cfg.StatsChannels) == 0 {
			continue
		}
		counts, ok := s.client.GuildCounts(guildID)
		if !ok {
			continue
		}

		for channelID, template := range cfg.StatsChannels {
			label := renderStatsLabel(template, counts)

			s.mu.Lock()
			unchanged := s.lastLabels[channelID] == label
			if !unchanged {
				s.lastLabels[channelID] = label
			}
			s.mu.Unlock()
			if unchanged {
				continue
			}

			guildID, channelID, label := guildID, channelID, label
			group.Go(func() error {
				if err := sem.Acquire(groupCtx, 1); err != nil {
					return nil
				}
				defer sem.Release(1)

				if err := s.client.RenameChannel(groupCtx, channelID, label); err != nil {
					slog.Warn("Failed to rename stats channel",
						slog.String("type", "sys"),
						slog.String("guild_id", guildID.String()),
						slog.String("channel_id", channelID.String()),
						slog.String("error", err.Error()),
					)
				}
				return nil
			})
			renames = append(renames, rename{guild: guildID.String(), channel: channelID.String(), label: label})
		}
	}

	_ = group.Wait()

	if len(renames) > 0 {
		slog.Info("Stats channels refreshed",
			slog.String("type", "sys"),
			slog.Int("renamed", len(renames)),
			slog.Duration("took", time.Since(start)),
		)
	}
}

// renderStatsLabel substitutes counter placeholders in a stat-channel
// name template.
func renderStatsLabel(template string, counts platform.GuildCounts) string {
	replacer := strings.NewReplacer(
		"{members}", strconv.Itoa(counts.Members),
		"{bots}", strconv.Itoa(counts.Bots),
		"{online}", strconv.Itoa(counts.Online),
		"{channels}", strconv.Itoa(counts.Channels),
		"{roles}", strconv.Itoa(counts.Roles),
		"{boosts}", strconv.Itoa(counts.Boosts),
	)
	return replacer.Replace(template)
}
