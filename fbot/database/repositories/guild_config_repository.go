package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/uptrace/bun"

	"github.com/fbotlabs/fbot/fbot/database/models"
)

// GuildConfigRepository persists the per-guild log-route document. It
// backs the guildconfig.Store via its Persister seam.
type GuildConfigRepository interface {
	LoadAll(ctx context.Context) (map[snowflake.ID]map[string]snowflake.ID, error)
	SaveRoutes(ctx context.Context, guildID snowflake.ID, routes map[string]snowflake.ID) error
	Delete(ctx context.Context, guildID snowflake.ID) error
}

type guildConfigRepository struct {
	db *bun.DB
}

func NewGuildConfigRepository(db *bun.DB) GuildConfigRepository {
	return &guildConfigRepository{db: db}
}

func (r *guildConfigRepository) LoadAll(ctx context.Context) (map[snowflake.ID]map[string]snowflake.ID, error) {
	start := time.Now()

	var rows []models.GuildConfig
	if err := r.db.NewSelect().
		Model(&rows).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load guild configs: %w", err)
	}

	out := make(map[snowflake.ID]map[string]snowflake.ID, len(rows))
	for _, row := range rows {
		guildID, err := snowflake.Parse(row.GuildID)
		if err != nil {
			slog.Warn("Skipping guild config with bad guild id",
				slog.String("type", "db"),
				slog.String("guild_id", row.GuildID),
			)
			continue
		}
		routes := make(map[string]snowflake.ID, len(row.LogChannels))
		for category, channel := range row.LogChannels {
			channelID, err := snowflake.Parse(channel)
			if err != nil {
				continue
			}
			routes[category] = channelID
		}
		out[guildID] = routes
	}

	slog.Info("Guild configs loaded",
		slog.String("type", "db"),
		slog.Int("count", len(out)),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (r *guildConfigRepository) SaveRoutes(ctx context.Context, guildID snowflake.ID, routes map[string]snowflake.ID) error {
	channels := make(map[string]string, len(routes))
	for category, channel := range routes {
		channels[category] = channel.String()
	}

	row := &models.GuildConfig{
		GuildID:     guildID.String(),
		LogChannels: channels,
		UpdatedAt:   time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("log_channels = EXCLUDED.log_channels").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save guild config: %w", err)
	}
	return nil
}

func (r *guildConfigRepository) Delete(ctx context.Context, guildID snowflake.ID) error {
	_, err := r.db.NewDelete().
		Model((*models.GuildConfig)(nil)).
		Where("guild_id = ?", guildID.String()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete guild config: %w", err)
	}
	return nil
}
