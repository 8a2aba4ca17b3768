package guildconfig

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// Persister loads and saves the durable slice of a guild's config, the
// log-channel routing map. The bun-backed implementation lives in
// database/repositories.
type Persister interface {
	LoadAll(ctx context.Context) (map[snowflake.ID]map[string]snowflake.ID, error)
	SaveRoutes(ctx context.Context, guildID snowflake.ID, routes map[string]snowflake.ID) error
	Delete(ctx context.Context, guildID snowflake.ID) error
}

// Store is the in-memory config registry for every guild the bot has
// seen. All access goes through the store mutex; mutations additionally
// persist the log-route document.
type Store struct {
	mu        sync.RWMutex
	guilds    map[snowflake.ID]*GuildConfig
	persister Persister
}

func NewStore(persister Persister) *Store {
	return &Store{
		guilds:    make(map[snowflake.ID]*GuildConfig),
		persister: persister,
	}
}

// Load hydrates the store from the persisted log-route documents. An
// empty table yields an empty store, not an error.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	routes, err := s.persister.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load guild configs: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for guildID, channels := range routes {
		cfg := s.guilds[guildID]
		if cfg == nil {
			cfg = &GuildConfig{GuildID: guildID}
			s.guilds[guildID] = cfg
		}
		cfg.LogChannels = channels
	}
	slog.Info("Loaded guild configs", slog.String("type", "db"), slog.Int("guilds", len(routes)))
	return nil
}

// Get returns the guild's config or nil when the guild has never been
// referenced. Callers must not mutate the result; use Mutate.
func (s *Store) Get(guildID snowflake.ID) *GuildConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guilds[guildID]
}

// GetOrCreate returns the guild's config, creating an empty one on
// first reference.
func (s *Store) GetOrCreate(guildID snowflake.ID) *GuildConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(guildID)
}

func (s *Store) getOrCreateLocked(guildID snowflake.ID) *GuildConfig {
	cfg := s.guilds[guildID]
	if cfg == nil {
		cfg = &GuildConfig{GuildID: guildID}
		s.guilds[guildID] = cfg
	}
	return cfg
}

// Mutate applies fn to the guild's config under the store lock, then
// persists the log-route document. The persist error is returned so
// mutating commands can surface it, but the in-memory change sticks
// either way.
func (s *Store) Mutate(ctx context.Context, guildID snowflake.ID, fn func(*GuildConfig)) error {
	s.mu.Lock()
	cfg := s.getOrCreateLocked(guildID)
	fn(cfg)
	routes := cfg.LogRoutes()
	s.mu.Unlock()

	if s.persister == nil {
		return nil
	}
	if err := s.persister.SaveRoutes(ctx, guildID, routes); err != nil {
		slog.Error("Failed to persist guild config",
			slog.String("type", "db"),
			slog.String("guild_id", guildID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to persist guild config: %w", err)
	}
	return nil
}

// Remove drops the guild's config from the store and deletes its
// persisted document. Called when the bot leaves a guild; removing an
// unknown guild is a no-op apart from the persisted delete.
func (s *Store) Remove(ctx context.Context, guildID snowflake.ID) error {
	s.mu.Lock()
	delete(s.guilds, guildID)
	s.mu.Unlock()

	if s.persister == nil {
		return nil
	}
	if err := s.persister.Delete(ctx, guildID); err != nil {
		return fmt.Errorf("failed to delete guild config: %w", err)
	}
	return nil
}

// GuildIDs returns every guild the store has a config for.
func (s *Store) GuildIDs() []snowflake.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]snowflake.ID, 0, len(s.guilds))
	for id := range s.guilds {
		ids = append(ids, id)
	}
	return ids
}

// Snapshot returns a shallow copy of the guild's config for read-only
// consumers such as the dashboard.
func (s *Store) Snapshot(guildID snowflake.ID) (GuildConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg := s.guilds[guildID]
	if cfg == nil {
		return GuildConfig{}, false
	}
	return *cfg, true
}
