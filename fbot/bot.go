package fbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	dgoevents "github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"

	"github.com/fbotlabs/fbot/fbot/antiraid"
	"github.com/fbotlabs/fbot/fbot/automation"
	"github.com/fbotlabs/fbot/fbot/database"
	"github.com/fbotlabs/fbot/fbot/database/repositories"
	"github.com/fbotlabs/fbot/fbot/economy"
	"github.com/fbotlabs/fbot/fbot/events"
	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/leveling"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/reactionroles"
	"github.com/fbotlabs/fbot/fbot/router"
	"github.com/fbotlabs/fbot/fbot/scheduler"
	"github.com/fbotlabs/fbot/fbot/services"
	"github.com/fbotlabs/fbot/fbot/snipe"
	"github.com/fbotlabs/fbot/fbot/starboard"
	"github.com/fbotlabs/fbot/fbot/utils"
	"github.com/fbotlabs/fbot/fbot/voicemanager"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
		Processes: utils.NewBackgroundProcessManager(),
	}
}

// Bot wires the engine together: the gateway client, the per-guild
// config store, every feature component, and the background processes.
type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	DB              *database.DB
	ConfigRepo      repositories.GuildConfigRepository
	Platform        platform.Client
	Store           *guildconfig.Store
	Dispatcher      *events.Dispatcher
	Router          *router.Router
	Snipes          *snipe.Cache
	ReactionRoles   *reactionroles.Table
	Starboard       *starboard.Aggregator
	VoiceManager    *voicemanager.Manager
	AntiRaid        *antiraid.Detector
	Leveling        *leveling.Ledger
	Economy         *economy.Vault
	Scheduler       *scheduler.Scheduler
	Automation      *automation.Engine
	ArchiveService  *services.ArchiveService
	Processes       *utils.BackgroundProcessManager
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMembers,
			gateway.IntentGuildMessages,
			gateway.IntentGuildMessageReactions,
			gateway.IntentGuildVoiceStates,
			gateway.IntentGuildPresences,
			gateway.IntentMessageContent,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(
			cache.FlagGuilds,
			cache.FlagChannels,
			cache.FlagMembers,
			cache.FlagVoiceStates,
			cache.FlagPresences,
			cache.FlagRoles,
			cache.FlagMessages,
		)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// SetupEngine builds every feature component on top of the gateway
// client and registers the event wiring. Call after SetupBot.
func (b *Bot) SetupEngine() {
	b.Platform = platform.NewDisgoClient(b.Client)
	b.Store = guildconfig.NewStore(b.ConfigRepo)
	b.Dispatcher = events.NewDispatcher()
	b.Router = router.New(b.Store, b.Platform)
	b.Snipes = snipe.NewCache()
	b.ReactionRoles = reactionroles.NewTable(b.Platform)
	b.Starboard = starboard.NewAggregator(b.Store, b.Platform)
	b.VoiceManager = voicemanager.New(b.Store, b.Platform)
	b.AntiRaid = antiraid.New(b.Store, b.Platform, b.Cfg.Engine.RaidWindow)
	b.Leveling = leveling.NewLedger(b.Platform)
	b.Economy = economy.NewVault()
	b.Scheduler = scheduler.New(b.Store, b.Platform, b.Processes, b.Cfg.Engine.SchedulerTick, b.Cfg.Engine.StatsRefreshTick)
	b.Automation = automation.NewEngine(b.Store, b.Platform)
}

func (b *Bot) OnReady(_ *dgoevents.Ready) {
	slog.Info("fbot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the server"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
