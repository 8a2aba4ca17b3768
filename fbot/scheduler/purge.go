package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
)

const purgeBatchSize = 100

func purgeProcessName(channelID snowflake.ID) string {
	return fmt.Sprintf("autopurge-%s", channelID)
}

// StartPurge launches the per-channel purge loop: delete messages older
// than MaxAge, sleep Interval, repeat until stopped.
func (s *Scheduler) StartPurge(guildID, channelID snowflake.ID, cfg guildconfig.AutoPurgeConfig) {
	s.procs.StartProcess(purgeProcessName(channelID), func(ctx context.Context) {
		for {
			if err := s.purgeOnce(ctx, guildID, channelID, cfg.MaxAge); err != nil {
				slog.Warn("Auto-purge pass failed",
					slog.String("type", "sys"),
					slog.String("guild_id", guildID.String()),
					slog.String("channel_id", channelID.String()),
					slog.String("error", err.Error()),
				)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(cfg.Interval):
			}
		}
	})
}

// StopPurge cancels the channel's purge loop.
func (s *Scheduler) StopPurge(channelID snowflake.ID) {
	s.procs.StopProcess(purgeProcessName(channelID))
}

// PurgeRunning reports whether a purge loop is active for the channel.
func (s *Scheduler) PurgeRunning(channelID snowflake.ID) bool {
	return s.procs.Running(purgeProcessName(channelID))
}

func (s *Scheduler) purgeOnce(ctx context.Context, guildID, channelID snowflake.ID, maxAge time.Duration) error {
	cutoff := s.now().Add(-maxAge)

	messages, err := s.client.MessagesBefore(ctx, channelID, cutoff, purgeBatchSize)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			// Channel gone; the loop is stopped by config teardown.
			return nil
		}
		return fmt.Errorf("failed to list purge candidates: %w", err)
	}

	deleted := 0
	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}
		if err := s.client.DeleteMessage(ctx, channelID, msg.ID); err != nil {
			if errors.Is(err, platform.ErrNotFound) {
				continue
			}
			return fmt.Errorf("failed to delete message: %w", err)
		}
		deleted++
	}

	if deleted > 0 {
		slog.Debug("Auto-purge pass complete",
			slog.String("type", "sys"),
			slog.String("guild_id", guildID.String()),
			slog.String("channel_id", channelID.String()),
			slog.Int("deleted", deleted),
		)
	}
	return nil
}
