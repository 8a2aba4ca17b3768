package antiraid

import (
	"context"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
)

const (
	testGuild = snowflake.ID(100)
	testUser  = snowflake.ID(200)
)

func newTestDetector(t *testing.T, threshold int, action string) (*Detector, *mock.MockClient, func(time.Time)) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	store := guildconfig.NewStore(nil)
	if err := store.Mutate(context.Background(), testGuild, func(cfg *guildconfig.GuildConfig) {
		cfg.AntiRaid = &guildconfig.AntiRaidConfig{Threshold: threshold, Action: action}
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	d := New(store, client, time.Minute)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return current }
	setNow := func(ts time.Time) { current = ts }
	return d, client, setNow
}

func TestOnJoinBelowThresholdTakesNoAction(t *testing.T) {
	d, _, _ := newTestDetector(t, 5, ActionKick)

	for i := 0; i < 5; i++ {
		if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
	if got := d.WindowSize(testGuild); got != 5 {
		t.Errorf("window size = %d, want 5", got)
	}
}

func TestOnJoinOverThresholdKicks(t *testing.T) {
	d, client, _ := newTestDetector(t, 5, ActionKick)

	client.EXPECT().
		KickMember(gomock.Any(), testGuild, testUser, gomock.Any()).
		Return(nil)

	for i := 0; i < 6; i++ {
		if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
}

func TestOnJoinRetriggersDuringBurst(t *testing.T) {
	d, client, _ := newTestDetector(t, 2, ActionBan)

	// Joins 3 and 4 both exceed the threshold; each fires the action.
	client.EXPECT().
		BanMember(gomock.Any(), testGuild, testUser, gomock.Any()).
		Return(nil).
		Times(2)

	for i := 0; i < 4; i++ {
		if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
}

func TestOnJoinEvictsExpiredEntries(t *testing.T) {
	d, _, setNow := newTestDetector(t, 10, ActionKick)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setNow(base)
	for i := 0; i < 3; i++ {
		if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}

	// Two minutes later the earlier joins fall out of the window.
	setNow(base.Add(2 * time.Minute))
	if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
		t.Fatalf("late join: %v", err)
	}
	if got := d.WindowSize(testGuild); got != 1 {
		t.Errorf("window size after eviction = %d, want 1", got)
	}
}

func TestOnJoinAlertPostsToFirstWritableChannel(t *testing.T) {
	d, client, _ := newTestDetector(t, 0, ActionAlert)

	client.EXPECT().TextChannels(testGuild).Return([]platform.Channel{
		{ID: 1, Name: "locked"},
		{ID: 2, Name: "general"},
	})
	client.EXPECT().
		SendMessage(gomock.Any(), snowflake.ID(1), gomock.Any()).
		Return(snowflake.ID(0), platform.ErrPermissionDenied)
	client.EXPECT().
		SendMessage(gomock.Any(), snowflake.ID(2), gomock.Any()).
		Return(snowflake.ID(900), nil)

	if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
		t.Fatalf("alert join: %v", err)
	}
}

func TestOnJoinUnconfiguredGuildIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	d := New(guildconfig.NewStore(nil), client, time.Minute)

	if err := d.OnJoin(context.Background(), testGuild, testUser); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := d.WindowSize(testGuild); got != 0 {
		t.Errorf("window size = %d, want 0", got)
	}
}
