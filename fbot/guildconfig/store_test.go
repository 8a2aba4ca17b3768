package guildconfig

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

const testGuild = snowflake.ID(100)

type fakePersister struct {
	loaded    map[snowflake.ID]map[string]snowflake.ID
	loadErr   error
	saveErr   error
	deleteErr error

	saves   []map[string]snowflake.ID
	deletes []snowflake.ID
}

func (f *fakePersister) LoadAll(context.Context) (map[snowflake.ID]map[string]snowflake.ID, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) SaveRoutes(_ context.Context, _ snowflake.ID, routes map[string]snowflake.ID) error {
	f.saves = append(f.saves, routes)
	return f.saveErr
}

func (f *fakePersister) Delete(_ context.Context, guildID snowflake.ID) error {
	f.deletes = append(f.deletes, guildID)
	return f.deleteErr
}

func TestMutatePersistsLogRoutes(t *testing.T) {
	persister := &fakePersister{}
	store := NewStore(persister)

	err := store.Mutate(context.Background(), testGuild, func(cfg *GuildConfig) {
		cfg.LogChannels = map[string]snowflake.ID{"messages": 701}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(persister.saves) != 1 {
		t.Fatalf("saves = %d, want 1", len(persister.saves))
	}
	if persister.saves[0]["messages"] != 701 {
		t.Errorf("persisted routes = %v", persister.saves[0])
	}
}

func TestMutateKeepsInMemoryChangeOnPersistError(t *testing.T) {
	persister := &fakePersister{saveErr: errors.New("db down")}
	store := NewStore(persister)

	err := store.Mutate(context.Background(), testGuild, func(cfg *GuildConfig) {
		cfg.LogChannels = map[string]snowflake.ID{"voice": 702}
	})
	if err == nil {
		t.Fatal("a persist failure must be surfaced")
	}

	cfg := store.Get(testGuild)
	if cfg == nil || cfg.LogChannels["voice"] != 702 {
		t.Error("the in-memory change must stick despite the persist error")
	}
}

func TestMutateWithoutPersister(t *testing.T) {
	store := NewStore(nil)

	err := store.Mutate(context.Background(), testGuild, func(cfg *GuildConfig) {
		cfg.Starboard = &StarboardConfig{Channel: 700, Threshold: 5}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := store.Get(testGuild)
	if cfg == nil || cfg.Starboard == nil || cfg.Starboard.Threshold != 5 {
		t.Error("mutation not applied")
	}
}

func TestLoadHydratesRoutes(t *testing.T) {
	persister := &fakePersister{
		loaded: map[snowflake.ID]map[string]snowflake.ID{
			testGuild: {"members": 703},
		},
	}
	store := NewStore(persister)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := store.Get(testGuild)
	if cfg == nil || cfg.LogChannels["members"] != 703 {
		t.Errorf("hydrated config = %+v", cfg)
	}
}

func TestLoadPropagatesError(t *testing.T) {
	persister := &fakePersister{loadErr: errors.New("db down")}
	store := NewStore(persister)

	if err := store.Load(context.Background()); err == nil {
		t.Fatal("load failure must be surfaced")
	}
}

func TestRemoveDropsConfigAndPersistedDocument(t *testing.T) {
	persister := &fakePersister{}
	store := NewStore(persister)

	if err := store.Mutate(context.Background(), testGuild, func(cfg *GuildConfig) {
		cfg.LogChannels = map[string]snowflake.ID{"all": 704}
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	if err := store.Remove(context.Background(), testGuild); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.Get(testGuild) != nil {
		t.Error("removed guild must no longer resolve")
	}
	if len(persister.deletes) != 1 || persister.deletes[0] != testGuild {
		t.Errorf("deletes = %v, want [%s]", persister.deletes, testGuild)
	}
}

func TestRemoveSurfacesDeleteError(t *testing.T) {
	persister := &fakePersister{deleteErr: errors.New("db down")}
	store := NewStore(persister)

	if err := store.Remove(context.Background(), testGuild); err == nil {
		t.Fatal("a delete failure must be surfaced")
	}
}

func TestGetUnknownGuildIsNil(t *testing.T) {
	store := NewStore(nil)
	if store.Get(testGuild) != nil {
		t.Error("unknown guild must yield nil")
	}
}

func TestSnapshot(t *testing.T) {
	store := NewStore(nil)
	if _, ok := store.Snapshot(testGuild); ok {
		t.Error("snapshot of an unknown guild must report not-ok")
	}

	if err := store.Mutate(context.Background(), testGuild, func(cfg *GuildConfig) {
		cfg.Starboard = &StarboardConfig{Channel: 700, Threshold: 3}
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap, ok := store.Snapshot(testGuild)
	if !ok || snap.Starboard == nil || snap.Starboard.Threshold != 3 {
		t.Errorf("snapshot = %+v ok = %v", snap, ok)
	}
}
