package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
	"github.com/fbotlabs/fbot/fbot/utils"
)

const statsChannel = snowflake.ID(160)

func newStatsScheduler(t *testing.T, template string) (*Scheduler, *mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	store := guildconfig.NewStore(nil)
	if err := store.Mutate(context.Background(), testGuild, func(cfg *guildconfig.GuildConfig) {
		cfg.StatsChannels = map[snowflake.ID]string{statsChannel: template}
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	return New(store, client, utils.NewBackgroundProcessManager(), time.Second, time.Minute), client
}

func TestRefreshStatsRenamesChangedChannel(t *testing.T) {
	s, client := newStatsScheduler(t, "👥 Members: {members}")

	client.EXPECT().GuildCounts(testGuild).Return(platform.GuildCounts{Members: 42}, true)
	client.EXPECT().
		RenameChannel(gomock.Any(), statsChannel, "👥 Members: 42").
		Return(nil)

	s.RefreshStats(context.Background())
}

func TestRefreshStatsSkipsUnchangedLabel(t *testing.T) {
	s, client := newStatsScheduler(t, "👥 Members: {members}")

	client.EXPECT().GuildCounts(testGuild).Return(platform.GuildCounts{Members: 42}, true).Times(2)
	// Only the first pass renames; the second renders the same label.
	client.EXPECT().
		RenameChannel(gomock.Any(), statsChannel, "👥 Members: 42").
		Return(nil)

	s.RefreshStats(context.Background())
	s.RefreshStats(context.Background())
}

func TestRefreshStatsSkipsUncachedGuild(t *testing.T) {
	s, client := newStatsScheduler(t, "👥 Members: {members}")

	client.EXPECT().GuildCounts(testGuild).Return(platform.GuildCounts{}, false)

	s.RefreshStats(context.Background())
}

func TestRenderStatsLabel(t *testing.T) {
	counts := platform.GuildCounts{
		Members: 100, Bots: 5, Online: 40, Channels: 20, Roles: 15, Boosts: 3,
	}
	cases := []struct {
		template, want string
	}{
		{"👥 {members} members", "👥 100 members"},
		{"{online}/{members} online", "40/100 online"},
		{"bots {bots} roles {roles} boosts {boosts}", "bots 5 roles 15 boosts 3"},
		{"no placeholders", "no placeholders"},
	}
	for _, tc := range cases {
		if got := renderStatsLabel(tc.template, counts); got != tc.want {
			t.Errorf("renderStatsLabel(%q) = %q, want %q", tc.template, got, tc.want)
		}
	}
}

func TestPurgeOnceDeletesOldMessages(t *testing.T) {
	s, client := newStatsScheduler(t, "")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	cutoff := base.Add(-time.Hour)
	client.EXPECT().
		MessagesBefore(gomock.Any(), testChannel, cutoff, purgeBatchSize).
		Return([]platform.Message{{ID: 1}, {ID: 2}}, nil)
	client.EXPECT().DeleteMessage(gomock.Any(), testChannel, snowflake.ID(1)).Return(nil)
	client.EXPECT().DeleteMessage(gomock.Any(), testChannel, snowflake.ID(2)).Return(platform.ErrNotFound)

	if err := s.purgeOnce(context.Background(), testGuild, testChannel, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurgeOnceToleratesDeletedChannel(t *testing.T) {
	s, client := newStatsScheduler(t, "")

	client.EXPECT().
		MessagesBefore(gomock.Any(), testChannel, gomock.Any(), purgeBatchSize).
		Return(nil, platform.ErrNotFound)

	if err := s.purgeOnce(context.Background(), testGuild, testChannel, time.Hour); err != nil {
		t.Fatalf("a missing channel must not error: %v", err)
	}
}
