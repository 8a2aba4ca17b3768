package router

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
)

const (
	testGuild       = snowflake.ID(100)
	messagesChannel = snowflake.ID(701)
	catchAllChannel = snowflake.ID(702)
)

func newTestRouter(t *testing.T, routes map[string]snowflake.ID) (*Router, *mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	store := guildconfig.NewStore(nil)
	if routes != nil {
		if err := store.Mutate(context.Background(), testGuild, func(cfg *guildconfig.GuildConfig) {
			cfg.LogChannels = routes
		}); err != nil {
			t.Fatalf("seed config: %v", err)
		}
	}
	return New(store, client), client
}

func TestRoutePrefersSpecificCategory(t *testing.T) {
	r, _ := newTestRouter(t, map[string]snowflake.ID{
		CategoryMessages: messagesChannel,
		CategoryAll:      catchAllChannel,
	})

	if got := r.Route(testGuild, CategoryMessages); got != messagesChannel {
		t.Errorf("route = %s, want the specific channel", got)
	}
}

func TestRouteFallsBackToCatchAll(t *testing.T) {
	r, _ := newTestRouter(t, map[string]snowflake.ID{
		CategoryAll: catchAllChannel,
	})

	if got := r.Route(testGuild, CategoryVoice); got != catchAllChannel {
		t.Errorf("route = %s, want the catch-all channel", got)
	}
}

func TestRouteUnconfiguredIsZero(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	if got := r.Route(testGuild, CategoryMembers); got != 0 {
		t.Errorf("route = %s, want 0 for an unconfigured guild", got)
	}
}

func TestSendUnroutedIsSilentDrop(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	// No SendMessage expectation: nothing may be sent.
	r.Send(context.Background(), testGuild, CategoryMessages, discord.Embed{Title: "x"})
}

func TestSendDeliversToRoutedChannel(t *testing.T) {
	r, client := newTestRouter(t, map[string]snowflake.ID{
		CategoryMessages: messagesChannel,
	})

	client.EXPECT().
		SendMessage(gomock.Any(), messagesChannel, gomock.Any()).
		Return(snowflake.ID(1), nil)

	r.Send(context.Background(), testGuild, CategoryMessages, discord.Embed{Title: "deleted"})
}

func TestSendSwallowsDeliveryError(t *testing.T) {
	r, client := newTestRouter(t, map[string]snowflake.ID{
		CategoryAll: catchAllChannel,
	})

	client.EXPECT().
		SendMessage(gomock.Any(), catchAllChannel, gomock.Any()).
		Return(snowflake.ID(0), errors.New("missing permissions"))

	// Must not panic or propagate.
	r.Send(context.Background(), testGuild, CategoryRoles, discord.Embed{Title: "x"})
}

func TestValidCategory(t *testing.T) {
	for _, category := range Categories {
		if !ValidCategory(category) {
			t.Errorf("ValidCategory(%q) = false", category)
		}
	}
	if !ValidCategory(CategoryAll) {
		t.Error("the catch-all must be valid")
	}
	if ValidCategory("bogus") {
		t.Error("unknown names must be invalid")
	}
}
