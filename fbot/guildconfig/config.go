// Package guildconfig holds per-guild feature configuration. A guild's
// config is a bag of optional feature sections; a nil section (or empty
// map) means the feature is disabled for that guild. Referenced channel
// and role ids may have been deleted on the platform side, so consumers
// treat lookups that fail there as a skip, not an error.
package guildconfig

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// GuildConfig is one guild's full feature bag. Only LogChannels is
// persisted; everything else lives for the lifetime of the process.
type GuildConfig struct {
	GuildID snowflake.ID

	// LogChannels maps a log category to its destination channel.
	LogChannels map[string]snowflake.ID

	Welcome          *WelcomeConfig
	AutoRoles        []snowflake.ID
	AutoResponses    []AutoResponse
	Automod          map[string]string
	Starboard        *StarboardConfig
	Suggestions      *SuggestionsConfig
	JoinToCreate     *JoinToCreateConfig
	ChannelTemplates map[string]ChannelTemplate
	StatsChannels    map[snowflake.ID]string
	AntiRaid         *AntiRaidConfig
	CustomCommands   map[string]string
	AutoPurge        map[snowflake.ID]AutoPurgeConfig
}

// WelcomeConfig renders Template with {user} and {server} placeholders
// into Channel on every member join.
type WelcomeConfig struct {
	Channel  snowflake.ID
	Template string
}

// AutoResponse replies with Response to the first message containing
// Trigger (case-insensitive substring).
type AutoResponse struct {
	Trigger  string
	Response string
}

type StarboardConfig struct {
	Channel   snowflake.ID
	Threshold int
	Emoji     string
}

type SuggestionsConfig struct {
	Channel snowflake.ID
}

// JoinToCreateConfig marks Lobby as the trigger channel. Temp channels
// are created under Category when set, otherwise next to the lobby.
type JoinToCreateConfig struct {
	Lobby    snowflake.ID
	Category snowflake.ID
}

// ChannelTemplate is a saved channel blueprint restorable by name.
type ChannelTemplate struct {
	Name      string
	Topic     string
	Private   bool
	SavedAt   time.Time
	SavedByID snowflake.ID
}

// AntiRaidConfig triggers Action when more than Threshold joins land
// inside the sliding window. Action is one of "kick", "ban", "alert".
type AntiRaidConfig struct {
	Threshold int
	Action    string
}

type AutoPurgeConfig struct {
	MaxAge   time.Duration
	Interval time.Duration
}

// LogRoutes returns a copy of the log-channel routing map, safe to hand
// to the persister after the store lock is released.
func (c *GuildConfig) LogRoutes() map[string]snowflake.ID {
	routes := make(map[string]snowflake.ID, len(c.LogChannels))
	for category, channel := range c.LogChannels {
		routes[category] = channel
	}
	return routes
}
