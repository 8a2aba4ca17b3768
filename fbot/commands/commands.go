// Package commands defines the slash command surface and its handlers.
package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

var Commands = []discord.ApplicationCommandCreate{
	SetLog,
	SetupLogChannels,
	Snipe,
	EditSnipe,
	Starboard,
	Suggest,
	SetupSuggestions,
	Remind,
	Schedule,
	ReactionRole,
	JoinToCreate,
	TempVoice,
	AutoPurge,
	AntiRaid,
	Rank,
	Leaderboard,
	Balance,
	Daily,
	Pay,
	AutoWelcome,
	AutoRole,
	AutoResponse,
	Automod,
	CustomCmd,
	SaveTemplate,
	LoadTemplate,
	ChannelStats,
	Transcript,
	Backup,
}

// guildID extracts the invoking guild, zero for DM invocations.
func guildID(e *handler.CommandEvent) snowflake.ID {
	if id := e.GuildID(); id != nil {
		return *id
	}
	return 0
}

func intPtr(v int) *int {
	return &v
}
