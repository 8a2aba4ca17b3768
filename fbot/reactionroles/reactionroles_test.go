package reactionroles

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
)

const (
	testGuild   = snowflake.ID(100)
	testMessage = snowflake.ID(300)
	testUser    = snowflake.ID(200)
	testRole    = snowflake.ID(400)
	botUser     = snowflake.ID(999)
)

func TestBindIsIdempotentUpsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := NewTable(mock.NewMockClient(ctrl))

	table.Bind(testGuild, testMessage, "🎉", testRole)
	table.Bind(testGuild, testMessage, "🎉", snowflake.ID(500))

	bindings := table.BindingsFor(testGuild)
	if len(bindings) != 1 {
		t.Fatalf("bindings = %d, want 1", len(bindings))
	}
	if bindings[0].RoleID != 500 {
		t.Errorf("role = %s, want the rebinding to win", bindings[0].RoleID)
	}
}

func TestOnReactionAddedGrantsRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	table := NewTable(client)
	table.Bind(testGuild, testMessage, "🎉", testRole)

	client.EXPECT().BotUserID().Return(botUser)
	client.EXPECT().GrantRole(gomock.Any(), testGuild, testUser, testRole).Return(nil)

	if err := table.OnReactionAdded(context.Background(), testGuild, testMessage, testUser, "🎉"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnReactionAddedIgnoresBotSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	table := NewTable(client)
	table.Bind(testGuild, testMessage, "🎉", testRole)

	client.EXPECT().BotUserID().Return(botUser)

	if err := table.OnReactionAdded(context.Background(), testGuild, testMessage, botUser, "🎉"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnReactionAddedUnboundIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	table := NewTable(client)

	client.EXPECT().BotUserID().Return(botUser)

	if err := table.OnReactionAdded(context.Background(), testGuild, testMessage, testUser, "🎉"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnReactionAddedSwallowsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	table := NewTable(client)
	table.Bind(testGuild, testMessage, "🎉", testRole)

	client.EXPECT().BotUserID().Return(botUser)
	client.EXPECT().
		GrantRole(gomock.Any(), testGuild, testUser, testRole).
		Return(platform.ErrNotFound)

	if err := table.OnReactionAdded(context.Background(), testGuild, testMessage, testUser, "🎉"); err != nil {
		t.Fatalf("NotFound must be swallowed, got: %v", err)
	}
}

func TestOnReactionAddedSurfacesOtherErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	table := NewTable(client)
	table.Bind(testGuild, testMessage, "🎉", testRole)

	client.EXPECT().BotUserID().Return(botUser)
	client.EXPECT().
		GrantRole(gomock.Any(), testGuild, testUser, testRole).
		Return(errors.New("rate limited"))

	if err := table.OnReactionAdded(context.Background(), testGuild, testMessage, testUser, "🎉"); err == nil {
		t.Fatal("expected the grant error to surface")
	}
}

func TestOnReactionRemovedRevokesRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	table := NewTable(client)
	table.Bind(testGuild, testMessage, "🎉", testRole)

	client.EXPECT().BotUserID().Return(botUser)
	client.EXPECT().RevokeRole(gomock.Any(), testGuild, testUser, testRole).Return(nil)

	if err := table.OnReactionRemoved(context.Background(), testGuild, testMessage, testUser, "🎉"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnbindRemovesRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	table := NewTable(mock.NewMockClient(ctrl))

	table.Bind(testGuild, testMessage, "🎉", testRole)
	table.Unbind(testMessage, "🎉")

	if got := table.BindingsFor(testGuild); len(got) != 0 {
		t.Errorf("bindings after unbind = %d, want 0", len(got))
	}
}
