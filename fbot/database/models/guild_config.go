package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GuildConfig is the persisted slice of a guild's configuration. Only
// the log-channel routing map survives restarts; the rest of the
// feature state is rebuilt from commands.
type GuildConfig struct {
	bun.BaseModel `bun:"table:guild_configs,alias:gc"`

	GuildID string `bun:"guild_id,pk"`

	// LogChannels maps a log category to a channel id, both as strings
	// so the JSONB document round-trips without precision loss.
	LogChannels map[string]string `bun:"log_channels,type:jsonb"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
