package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/fbotlabs/fbot/backend/utils"
	"github.com/fbotlabs/fbot/fbot/antiraid"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/router"
)

// configUpdateRequest is the writable slice of a guild's config. Absent
// sections are left untouched; present sections replace the stored one.
type configUpdateRequest struct {
	LogRoutes *map[string]string `json:"log_routes"`
	Welcome   *struct {
		Channel  string `json:"channel"`
		Template string `json:"template"`
	} `json:"welcome"`
	Starboard *struct {
		Channel   string `json:"channel"`
		Threshold int    `json:"threshold"`
	} `json:"starboard"`
	Suggestions *struct {
		Channel string `json:"channel"`
	} `json:"suggestions"`
	AntiRaid *struct {
		Threshold int    `json:"threshold"`
		Action    string `json:"action"`
	} `json:"anti_raid"`
	AutoRoles      *[]string          `json:"auto_roles"`
	CustomCommands *map[string]string `json:"custom_commands"`
}

// PostGuildConfig applies a partial config update to one guild.
func (w *WebApp) PostGuildConfig(c *fiber.Ctx) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}

	var body configUpdateRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.SendBadRequest(c, "Malformed config body")
	}

	var (
		routes    map[string]snowflake.ID
		autoRoles []snowflake.ID
	)
	if body.LogRoutes != nil {
		routes = make(map[string]snowflake.ID, len(*body.LogRoutes))
		for category, raw := range *body.LogRoutes {
			if !router.ValidCategory(category) {
				return utils.SendBadRequest(c, "Unknown log category: "+category)
			}
			channelID, err := snowflake.Parse(raw)
			if err != nil {
				return utils.SendBadRequest(c, "Invalid channel id for category "+category)
			}
			routes[category] = channelID
		}
	}
	if body.Welcome != nil {
		if _, err := snowflake.Parse(body.Welcome.Channel); err != nil {
			return utils.SendBadRequest(c, "Invalid welcome channel id")
		}
	}
	if body.Starboard != nil {
		if _, err := snowflake.Parse(body.Starboard.Channel); err != nil {
			return utils.SendBadRequest(c, "Invalid starboard channel id")
		}
		if body.Starboard.Threshold < 1 {
			return utils.SendBadRequest(c, "Starboard threshold must be at least 1")
		}
	}
	if body.Suggestions != nil {
		if _, err := snowflake.Parse(body.Suggestions.Channel); err != nil {
			return utils.SendBadRequest(c, "Invalid suggestions channel id")
		}
	}
	if body.AntiRaid != nil {
		if body.AntiRaid.Threshold < 1 {
			return utils.SendBadRequest(c, "Anti-raid threshold must be at least 1")
		}
		switch body.AntiRaid.Action {
		case antiraid.ActionKick, antiraid.ActionBan, antiraid.ActionAlert:
		default:
			return utils.SendBadRequest(c, "Unknown anti-raid action: "+body.AntiRaid.Action)
		}
	}
	if body.AutoRoles != nil {
		autoRoles = make([]snowflake.ID, 0, len(*body.AutoRoles))
		for _, raw := range *body.AutoRoles {
			roleID, err := snowflake.Parse(raw)
			if err != nil {
				return utils.SendBadRequest(c, "Invalid auto-role id: "+raw)
			}
			autoRoles = append(autoRoles, roleID)
		}
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := w.Store.Mutate(ctx, guildID, func(cfg *guildconfig.GuildConfig) {
		if routes != nil {
			cfg.LogChannels = routes
		}
		if body.Welcome != nil {
			cfg.Welcome = &guildconfig.WelcomeConfig{
				Channel:  snowflake.MustParse(body.Welcome.Channel),
				Template: body.Welcome.Template,
			}
		}
		if body.Starboard != nil {
			cfg.Starboard = &guildconfig.StarboardConfig{
				Channel:   snowflake.MustParse(body.Starboard.Channel),
				Threshold: body.Starboard.Threshold,
			}
		}
		if body.Suggestions != nil {
			cfg.Suggestions = &guildconfig.SuggestionsConfig{
				Channel: snowflake.MustParse(body.Suggestions.Channel),
			}
		}
		if body.AntiRaid != nil {
			cfg.AntiRaid = &guildconfig.AntiRaidConfig{
				Threshold: body.AntiRaid.Threshold,
				Action:    body.AntiRaid.Action,
			}
		}
		if body.AutoRoles != nil {
			cfg.AutoRoles = autoRoles
		}
		if body.CustomCommands != nil {
			cfg.CustomCommands = *body.CustomCommands
		}
	}); err != nil {
		return utils.SendInternalServerError(c, "Failed to persist config")
	}

	snapshot, _ := w.Store.Snapshot(guildID)
	return utils.SendSuccess(c, configView(snapshot), "Config updated")
}

// GetGuildMembers lists the cached members of one guild.
func (w *WebApp) GetGuildMembers(c *fiber.Ctx) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}

	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	members := w.Platform.Members(guildID)
	sort.Slice(members, func(i, j int) bool { return members[i].Username < members[j].Username })
	if len(members) > limit {
		members = members[:limit]
	}

	entries := make([]fiber.Map, 0, len(members))
	for _, member := range members {
		entries = append(entries, fiber.Map{
			"id":         member.ID.String(),
			"username":   member.Username,
			"avatar_url": member.AvatarURL,
			"bot":        member.IsBot,
		})
	}
	return utils.SendSuccess(c, entries, "")
}

// GetGuildLogs is the log-feed endpoint. Log notifications are delivered
// to Discord channels and not retained, so the feed is always empty.
func (w *WebApp) GetGuildLogs(c *fiber.Ctx) error {
	if _, err := parseGuildID(c); err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}
	return utils.SendSuccess(c, []fiber.Map{}, "Log notifications are delivered to Discord and not retained")
}

// GetGlobalStats aggregates counters across every guild.
func (w *WebApp) GetGlobalStats(c *fiber.Ctx) error {
	var totalMembers, cachedGuilds int
	ids := w.Store.GuildIDs()
	for _, id := range ids {
		if counts, ok := w.Platform.GuildCounts(id); ok {
			totalMembers += counts.Members
			cachedGuilds++
		}
	}
	reminders, scheduled := w.Scheduler.PendingCounts()

	return utils.SendSuccess(c, fiber.Map{
		"guilds":             len(ids),
		"cached_guilds":      cachedGuilds,
		"members":            totalMembers,
		"pending_reminders":  reminders,
		"pending_messages":   scheduled,
		"version":            w.Version,
		"uptime":             time.Since(w.startedAt).String(),
	}, "")
}
