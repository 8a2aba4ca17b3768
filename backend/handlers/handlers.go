// Package handlers implements the dashboard API endpoints.
package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/gofiber/fiber/v2"

	"github.com/fbotlabs/fbot/backend/utils"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/leveling"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/router"
	"github.com/fbotlabs/fbot/fbot/scheduler"
)

// WebApp bundles the live bot state the dashboard reads and writes.
// It runs in the bot process; there is no separate database session.
type WebApp struct {
	Store     *guildconfig.Store
	Platform  platform.Client
	Leveling  *leveling.Ledger
	Scheduler *scheduler.Scheduler
	Version   string
	Commit    string
	startedAt time.Time
}

func NewWebApp(store *guildconfig.Store, client platform.Client, ledger *leveling.Ledger, sched *scheduler.Scheduler, version, commit string) *WebApp {
	return &WebApp{
		Store:     store,
		Platform:  client,
		Leveling:  ledger,
		Scheduler: sched,
		Version:   version,
		Commit:    commit,
		startedAt: time.Now(),
	}
}

// Health reports process liveness, build info and scheduler backlog.
func (w *WebApp) Health(c *fiber.Ctx) error {
	reminders, scheduled := w.Scheduler.PendingCounts()
	return utils.SendSuccess(c, fiber.Map{
		"status":             "ok",
		"version":            w.Version,
		"commit":             w.Commit,
		"uptime":             time.Since(w.startedAt).String(),
		"guilds":             len(w.Store.GuildIDs()),
		"pending_reminders":  reminders,
		"pending_messages":   scheduled,
	}, "")
}

// ListGuilds returns every guild the bot holds config for.
func (w *WebApp) ListGuilds(c *fiber.Ctx) error {
	ids := w.Store.GuildIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	guilds := make([]fiber.Map, 0, len(ids))
	for _, id := range ids {
		entry := fiber.Map{"id": id.String()}
		if counts, ok := w.Platform.GuildCounts(id); ok {
			entry["members"] = counts.Members
			entry["channels"] = counts.Channels
		}
		guilds = append(guilds, entry)
	}
	return utils.SendSuccess(c, guilds, "")
}

// GetGuildConfig renders a read-only view of one guild's config.
func (w *WebApp) GetGuildConfig(c *fiber.Ctx) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}

	cfg, ok := w.Store.Snapshot(guildID)
	if !ok {
		return utils.SendNotFound(c, "Unknown guild")
	}

	return utils.SendSuccess(c, configView(cfg), "")
}

// PutLogRoutes replaces a guild's log-channel routing map.
func (w *WebApp) PutLogRoutes(c *fiber.Ctx) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}

	var body map[string]string
	if err := c.BodyParser(&body); err != nil {
		return utils.SendBadRequest(c, "Body must be a category to channel-id map")
	}

	routes := make(map[string]snowflake.ID, len(body))
	for category, raw := range body {
		if !router.ValidCategory(category) {
			return utils.SendBadRequest(c, "Unknown log category: "+category)
		}
		channelID, err := snowflake.Parse(raw)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid channel id for category "+category)
		}
		routes[category] = channelID
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := w.Store.Mutate(ctx, guildID, func(cfg *guildconfig.GuildConfig) {
		cfg.LogChannels = routes
	}); err != nil {
		return utils.SendInternalServerError(c, "Failed to persist log routes")
	}

	return utils.SendSuccess(c, body, "Log routes updated")
}

// GetGuildStats renders the live cache counters for one guild.
func (w *WebApp) GetGuildStats(c *fiber.Ctx) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}

	counts, ok := w.Platform.GuildCounts(guildID)
	if !ok {
		return utils.SendNotFound(c, "Guild not in cache")
	}

	return utils.SendSuccess(c, fiber.Map{
		"members":  counts.Members,
		"bots":     counts.Bots,
		"online":   counts.Online,
		"channels": counts.Channels,
		"roles":    counts.Roles,
		"boosts":   counts.Boosts,
	}, "")
}

// GetLeaderboard renders a guild's XP standings.
func (w *WebApp) GetLeaderboard(c *fiber.Ctx) error {
	guildID, err := parseGuildID(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid guild id")
	}

	limit := c.QueryInt("limit", 25)
	if limit < 1 || limit > 100 {
		limit = 25
	}

	records := w.Leveling.Top(guildID, limit)
	entries := make([]fiber.Map, 0, len(records))
	for i, rec := range records {
		entries = append(entries, fiber.Map{
			"rank":     i + 1,
			"user_id":  rec.UserID.String(),
			"level":    rec.Level,
			"xp":       rec.XP,
			"messages": rec.Messages,
		})
	}
	return utils.SendSuccess(c, entries, "")
}

func parseGuildID(c *fiber.Ctx) (snowflake.ID, error) {
	return snowflake.Parse(c.Params("id"))
}

// configView flattens a GuildConfig into JSON-friendly shapes. Map keys
// become strings; nil sections are omitted.
func configView(cfg guildconfig.GuildConfig) fiber.Map {
	view := fiber.Map{
		"guild_id": cfg.GuildID.String(),
	}

	if len(cfg.LogChannels) > 0 {
		routes := make(map[string]string, len(cfg.LogChannels))
		for category, channelID := range cfg.LogChannels {
			routes[category] = channelID.String()
		}
		view["log_routes"] = routes
	}
	if cfg.Welcome != nil {
		view["welcome"] = fiber.Map{
			"channel":  cfg.Welcome.Channel.String(),
			"template": cfg.Welcome.Template,
		}
	}
	if len(cfg.AutoRoles) > 0 {
		roles := make([]string, 0, len(cfg.AutoRoles))
		for _, id := range cfg.AutoRoles {
			roles = append(roles, id.String())
		}
		view["auto_roles"] = roles
	}
	if len(cfg.AutoResponses) > 0 {
		view["auto_responses"] = cfg.AutoResponses
	}
	if cfg.Starboard != nil {
		view["starboard"] = fiber.Map{
			"channel":   cfg.Starboard.Channel.String(),
			"threshold": cfg.Starboard.Threshold,
		}
	}
	if cfg.Suggestions != nil {
		view["suggestions"] = fiber.Map{"channel": cfg.Suggestions.Channel.String()}
	}
	if cfg.JoinToCreate != nil {
		view["join_to_create"] = fiber.Map{
			"lobby":    cfg.JoinToCreate.Lobby.String(),
			"category": cfg.JoinToCreate.Category.String(),
		}
	}
	if cfg.AntiRaid != nil {
		view["anti_raid"] = fiber.Map{
			"threshold": cfg.AntiRaid.Threshold,
			"action":    cfg.AntiRaid.Action,
		}
	}
	if len(cfg.CustomCommands) > 0 {
		view["custom_commands"] = cfg.CustomCommands
	}
	if len(cfg.StatsChannels) > 0 {
		stats := make(map[string]string, len(cfg.StatsChannels))
		for channelID, template := range cfg.StatsChannels {
			stats[channelID.String()] = template
		}
		view["stats_channels"] = stats
	}
	if len(cfg.AutoPurge) > 0 {
		purge := make(map[string]fiber.Map, len(cfg.AutoPurge))
		for channelID, pc := range cfg.AutoPurge {
			purge[channelID.String()] = fiber.Map{
				"max_age":  pc.MaxAge.String(),
				"interval": pc.Interval.String(),
			}
		}
		view["auto_purge"] = purge
	}
	if len(cfg.ChannelTemplates) > 0 {
		view["channel_templates"] = cfg.ChannelTemplates
	}
	return view
}
