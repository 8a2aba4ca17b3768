package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/fbotlabs/fbot/backend"
	backendhandlers "github.com/fbotlabs/fbot/backend/handlers"
	"github.com/fbotlabs/fbot/fbot"
	"github.com/fbotlabs/fbot/fbot/commands"
	"github.com/fbotlabs/fbot/fbot/database"
	"github.com/fbotlabs/fbot/fbot/database/repositories"
	"github.com/fbotlabs/fbot/fbot/handlers"
	"github.com/fbotlabs/fbot/fbot/logger"
	"github.com/fbotlabs/fbot/fbot/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler("fbot")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting fbot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := fbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.String("error", err.Error()))
		os.Exit(-1)
	}
	defer db.Close()

	b := fbot.New(*cfg, version, commit)
	b.DB = db
	b.ConfigRepo = repositories.NewGuildConfigRepository(db.BunDB())

	if cfg.Spaces.Key != "" {
		archiveService, err := services.NewArchiveService(
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.Root,
		)
		if err != nil {
			slog.Error("Failed to initialize archive service", slog.String("error", err.Error()))
			os.Exit(-1)
		}
		b.ArchiveService = archiveService
	} else {
		slog.Warn("Spaces credentials missing, transcript and backup commands are disabled",
			slog.String("type", "sys"))
	}

	h := handler.New()

	// Logging commands
	h.Route("/setlog", func(r handler.Router) {
		r.Command("/set", handlers.WrapWithLogging("setlog-set", commands.SetLogSetHandler(b)))
		r.Command("/unset", handlers.WrapWithLogging("setlog-unset", commands.SetLogUnsetHandler(b)))
		r.Command("/list", handlers.WrapWithLogging("setlog-list", commands.SetLogListHandler(b)))
	})
	h.Command("/setuplogchannels", handlers.WrapWithLogging("setuplogchannels", commands.SetupLogChannelsHandler(b)))

	// Message commands
	h.Command("/snipe", handlers.WrapWithLogging("snipe", commands.SnipeHandler(b)))
	h.Command("/editsnipe", handlers.WrapWithLogging("editsnipe", commands.EditSnipeHandler(b)))
	h.Route("/starboard", func(r handler.Router) {
		r.Command("/enable", handlers.WrapWithLogging("starboard-enable", commands.StarboardEnableHandler(b)))
		r.Command("/disable", handlers.WrapWithLogging("starboard-disable", commands.StarboardDisableHandler(b)))
	})
	h.Command("/suggest", handlers.WrapWithLogging("suggest", commands.SuggestHandler(b)))
	h.Command("/setupsuggestions", handlers.WrapWithLogging("setupsuggestions", commands.SetupSuggestionsHandler(b)))

	// Scheduling commands
	h.Command("/remind", handlers.WrapWithLogging("remind", commands.RemindHandler(b)))
	h.Command("/schedule", handlers.WrapWithLogging("schedule", commands.ScheduleHandler(b)))
	h.Route("/autopurge", func(r handler.Router) {
		r.Command("/enable", handlers.WrapWithLogging("autopurge-enable", commands.AutoPurgeEnableHandler(b)))
		r.Command("/disable", handlers.WrapWithLogging("autopurge-disable", commands.AutoPurgeDisableHandler(b)))
	})

	// Role and reaction commands
	h.Route("/reactionrole", func(r handler.Router) {
		r.Command("/add", handlers.WrapWithLogging("reactionrole-add", commands.ReactionRoleAddHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("reactionrole-remove", commands.ReactionRoleRemoveHandler(b)))
		r.Command("/list", handlers.WrapWithLogging("reactionrole-list", commands.ReactionRoleListHandler(b)))
	})

	// Voice commands
	h.Route("/jointocreate", func(r handler.Router) {
		r.Command("/set", handlers.WrapWithLogging("jointocreate-set", commands.JoinToCreateSetHandler(b)))
		r.Command("/disable", handlers.WrapWithLogging("jointocreate-disable", commands.JoinToCreateDisableHandler(b)))
	})
	h.Command("/tempvoice", handlers.WrapWithLogging("tempvoice", commands.TempVoiceHandler(b)))

	// Moderation commands
	h.Route("/antiraid", func(r handler.Router) {
		r.Command("/enable", handlers.WrapWithLogging("antiraid-enable", commands.AntiRaidEnableHandler(b)))
		r.Command("/disable", handlers.WrapWithLogging("antiraid-disable", commands.AntiRaidDisableHandler(b)))
	})

	// Leveling commands
	h.Command("/rank", handlers.WrapWithLogging("rank", commands.RankHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", commands.LeaderboardHandler(b)))

	// Economy commands
	h.Command("/balance", handlers.WrapWithLogging("balance", commands.BalanceHandler(b)))
	h.Command("/daily", handlers.WrapWithLogging("daily", commands.DailyHandler(b)))
	h.Command("/pay", handlers.WrapWithLogging("pay", commands.PayHandler(b)))

	// Automation commands
	h.Route("/autowelcome", func(r handler.Router) {
		r.Command("/set", handlers.WrapWithLogging("autowelcome-set", commands.AutoWelcomeSetHandler(b)))
		r.Command("/disable", handlers.WrapWithLogging("autowelcome-disable", commands.AutoWelcomeDisableHandler(b)))
	})
	h.Route("/autorole", func(r handler.Router) {
		r.Command("/add", handlers.WrapWithLogging("autorole-add", commands.AutoRoleAddHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("autorole-remove", commands.AutoRoleRemoveHandler(b)))
		r.Command("/list", handlers.WrapWithLogging("autorole-list", commands.AutoRoleListHandler(b)))
	})
	h.Route("/autoresponse", func(r handler.Router) {
		r.Command("/add", handlers.WrapWithLogging("autoresponse-add", commands.AutoResponseAddHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("autoresponse-remove", commands.AutoResponseRemoveHandler(b)))
		r.Command("/list", handlers.WrapWithLogging("autoresponse-list", commands.AutoResponseListHandler(b)))
	})
	h.Route("/automod", func(r handler.Router) {
		r.Command("/set", handlers.WrapWithLogging("automod-set", commands.AutomodSetHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("automod-remove", commands.AutomodRemoveHandler(b)))
		r.Command("/list", handlers.WrapWithLogging("automod-list", commands.AutomodListHandler(b)))
	})
	h.Route("/customcmd", func(r handler.Router) {
		r.Command("/add", handlers.WrapWithLogging("customcmd-add", commands.CustomCmdAddHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("customcmd-remove", commands.CustomCmdRemoveHandler(b)))
		r.Command("/list", handlers.WrapWithLogging("customcmd-list", commands.CustomCmdListHandler(b)))
	})

	// Server-structure commands
	h.Command("/savetemplate", handlers.WrapWithLogging("savetemplate", commands.SaveTemplateHandler(b)))
	h.Command("/loadtemplate", handlers.WrapWithLogging("loadtemplate", commands.LoadTemplateHandler(b)))
	h.Autocomplete("/loadtemplate", commands.LoadTemplateAutocompleteHandler(b))
	h.Route("/channelstats", func(r handler.Router) {
		r.Command("/set", handlers.WrapWithLogging("channelstats-set", commands.ChannelStatsSetHandler(b)))
		r.Command("/remove", handlers.WrapWithLogging("channelstats-remove", commands.ChannelStatsRemoveHandler(b)))
	})
	h.Command("/transcript", handlers.WrapWithLogging("transcript", commands.TranscriptHandler(b)))
	h.Command("/backup", handlers.WrapWithLogging("backup", commands.BackupHandler(b)))

	listeners := append([]bot.EventListener{h, bot.NewListenerFunc(b.OnReady)}, handlers.NewListeners(b)...)
	if err = b.SetupBot(listeners...); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	b.SetupEngine()
	handlers.RegisterEngineHandlers(b)

	if err := b.Store.Load(ctx); err != nil {
		slog.Error("Failed to load guild configs", slog.String("error", err.Error()))
		os.Exit(-1)
	}

	b.Scheduler.Start()

	var dashboard *backend.Server
	if cfg.Dashboard.Enabled {
		webApp := backendhandlers.NewWebApp(b.Store, b.Platform, b.Leveling, b.Scheduler, version, commit)
		dashboard = backend.New(cfg.Dashboard.Addr, cfg.Dashboard.APIToken, webApp)
		go dashboard.Start()
	}

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("error_details", fmt.Sprintf("%+v", err)),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s

	slog.Info("Shutting down bot...")
	if dashboard != nil {
		if err := dashboard.Shutdown(); err != nil {
			slog.Error("Failed to shut down dashboard", slog.String("error", err.Error()))
		}
	}
	if err := b.Processes.Shutdown(10 * time.Second); err != nil {
		slog.Error("Background processes did not stop cleanly", slog.String("error", err.Error()))
	}
}
