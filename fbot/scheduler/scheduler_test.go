package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
	"github.com/fbotlabs/fbot/fbot/utils"
)

const (
	testGuild   = snowflake.ID(100)
	testChannel = snowflake.ID(150)
	testUser    = snowflake.ID(200)
)

func newTestScheduler(t *testing.T) (*Scheduler, *mock.MockClient, func(time.Time)) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	s := New(guildconfig.NewStore(nil), client, utils.NewBackgroundProcessManager(), time.Second, time.Minute)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }
	return s, client, func(ts time.Time) { current = ts }
}

func TestDispatchDueSendsOnlyDueItems(t *testing.T) {
	s, client, setNow := newTestScheduler(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setNow(base)

	s.AddReminder(testGuild, testChannel, testUser, "due now", base.Add(-time.Minute))
	s.AddReminder(testGuild, testChannel, testUser, "due later", base.Add(time.Hour))

	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, gomock.Any()).
		Return(snowflake.ID(1), nil)

	s.DispatchDue(context.Background())

	reminders, _ := s.PendingCounts()
	if reminders != 1 {
		t.Errorf("pending reminders = %d, want the future one kept", reminders)
	}
}

func TestDispatchDueIsAtMostOnce(t *testing.T) {
	s, client, setNow := newTestScheduler(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setNow(base)

	s.AddScheduledMessage(testGuild, testChannel, "hello", base.Add(-time.Second))

	// The send fails, but the item must still be removed; a second pass
	// never retries it.
	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, gomock.Any()).
		Return(snowflake.ID(0), errors.New("channel deleted"))

	s.DispatchDue(context.Background())
	s.DispatchDue(context.Background())

	_, scheduled := s.PendingCounts()
	if scheduled != 0 {
		t.Errorf("pending scheduled = %d, want 0 after failed dispatch", scheduled)
	}
}

func TestDispatchDueBoundaryIsInclusive(t *testing.T) {
	s, client, setNow := newTestScheduler(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setNow(base)

	s.AddScheduledMessage(testGuild, testChannel, "exactly due", base)

	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, gomock.Any()).
		Return(snowflake.ID(1), nil)

	s.DispatchDue(context.Background())

	_, scheduled := s.PendingCounts()
	if scheduled != 0 {
		t.Errorf("an item due exactly now must dispatch, %d left", scheduled)
	}
}

func TestDispatchDueSendsInDueOrder(t *testing.T) {
	s, client, setNow := newTestScheduler(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setNow(base)

	// Queued out of order; dispatch follows due time.
	s.AddScheduledMessage(testGuild, testChannel, "second", base.Add(-time.Minute))
	s.AddScheduledMessage(testGuild, testChannel, "first", base.Add(-2*time.Minute))

	first := client.EXPECT().
		SendMessage(gomock.Any(), testChannel, gomock.Eq(messageWith("first"))).
		Return(snowflake.ID(1), nil)
	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, gomock.Eq(messageWith("second"))).
		Return(snowflake.ID(2), nil).
		After(first)

	s.DispatchDue(context.Background())
}

func messageWith(content string) discord.MessageCreate {
	return discord.MessageCreate{Content: content}
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	s, _, _ := newTestScheduler(t)

	id1 := s.AddReminder(testGuild, testChannel, testUser, "a", time.Now().Add(time.Hour))
	id2 := s.AddScheduledMessage(testGuild, testChannel, "b", time.Now().Add(time.Hour))
	if id1 == id2 {
		t.Errorf("ids must be distinct across queues, both %d", id1)
	}
}
