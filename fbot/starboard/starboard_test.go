package starboard

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
)

const (
	testGuild     = snowflake.ID(100)
	testChannel   = snowflake.ID(150)
	testMessage   = snowflake.ID(300)
	boardChannel  = snowflake.ID(700)
	boardMessage  = snowflake.ID(800)
	testThreshold = 3
)

func newTestAggregator(t *testing.T) (*Aggregator, *mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	store := guildconfig.NewStore(nil)
	if err := store.Mutate(context.Background(), testGuild, func(cfg *guildconfig.GuildConfig) {
		cfg.Starboard = &guildconfig.StarboardConfig{
			Channel:   boardChannel,
			Threshold: testThreshold,
		}
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	return NewAggregator(store, client), client
}

func TestObservePromotesOnce(t *testing.T) {
	a, client := newTestAggregator(t)

	client.EXPECT().
		FetchMessage(gomock.Any(), testChannel, testMessage).
		Return(&platform.Message{
			ID:         testMessage,
			ChannelID:  testChannel,
			AuthorName: "alice",
			Content:    "great post",
		}, nil)
	client.EXPECT().
		SendMessage(gomock.Any(), boardChannel, gomock.Any()).
		Return(boardMessage, nil)

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 3); err != nil {
		t.Fatalf("first observation: %v", err)
	}

	// Further observations of the same message never post again.
	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 5); err != nil {
		t.Fatalf("second observation: %v", err)
	}

	entry, ok := a.Entry(testMessage)
	if !ok || !entry.Posted {
		t.Fatalf("entry = %+v, ok = %v, want posted", entry, ok)
	}
	if entry.StarboardMessageID != boardMessage {
		t.Errorf("starboard message = %s, want %s", entry.StarboardMessageID, boardMessage)
	}
}

func TestObserveBelowThresholdIsNoop(t *testing.T) {
	a, _ := newTestAggregator(t)

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := a.Entry(testMessage); ok {
		t.Error("below-threshold observation must not record an entry")
	}
}

func TestObserveDisabledGuildIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := NewAggregator(guildconfig.NewStore(nil), mock.NewMockClient(ctrl))

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestObserveIgnoresStarboardChannelItself(t *testing.T) {
	a, _ := newTestAggregator(t)

	if err := a.Observe(context.Background(), testGuild, boardChannel, testMessage, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := a.Entry(testMessage); ok {
		t.Error("reactions inside the starboard channel must not re-promote")
	}
}

func TestObserveCountsFromFetchOnCacheMiss(t *testing.T) {
	a, client := newTestAggregator(t)

	// A zero count means the message cache missed; the stars on the
	// fetched message decide, and the fetch is reused for the post.
	client.EXPECT().
		FetchMessage(gomock.Any(), testChannel, testMessage).
		Return(&platform.Message{
			ID:         testMessage,
			ChannelID:  testChannel,
			AuthorName: "alice",
			Content:    "old but gold",
			Reactions:  map[string]int{DefaultEmoji: testThreshold},
		}, nil)
	client.EXPECT().
		SendMessage(gomock.Any(), boardChannel, gomock.Any()).
		Return(boardMessage, nil)

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, ok := a.Entry(testMessage)
	if !ok || !entry.Posted {
		t.Fatalf("entry = %+v, ok = %v, want posted", entry, ok)
	}
}

func TestObserveCacheMissBelowThresholdIsNoop(t *testing.T) {
	a, client := newTestAggregator(t)

	client.EXPECT().
		FetchMessage(gomock.Any(), testChannel, testMessage).
		Return(&platform.Message{
			ID:        testMessage,
			ChannelID: testChannel,
			Reactions: map[string]int{DefaultEmoji: testThreshold - 1},
		}, nil)

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := a.Entry(testMessage); ok {
		t.Error("a fetched count below threshold must not promote")
	}
}

func TestObserveDropsReservationOnFailure(t *testing.T) {
	a, client := newTestAggregator(t)

	client.EXPECT().
		FetchMessage(gomock.Any(), testChannel, testMessage).
		Return(nil, errors.New("boom"))

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 3); err == nil {
		t.Fatal("expected the fetch error to surface")
	}
	if _, ok := a.Entry(testMessage); ok {
		t.Fatal("failed promotion must drop its reservation")
	}

	// A later observation retries cleanly.
	client.EXPECT().
		FetchMessage(gomock.Any(), testChannel, testMessage).
		Return(&platform.Message{ID: testMessage, ChannelID: testChannel}, nil)
	client.EXPECT().
		SendMessage(gomock.Any(), boardChannel, gomock.Any()).
		Return(boardMessage, nil)

	if err := a.Observe(context.Background(), testGuild, testChannel, testMessage, 4); err != nil {
		t.Fatalf("retry observation: %v", err)
	}
}
