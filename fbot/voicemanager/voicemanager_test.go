package voicemanager

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
	testGuild    = snowflake.ID(100)
	testUser     = snowflake.ID(200)
	lobbyChannel = snowflake.ID(500)
	tempChannel  = snowflake.ID(600)
	categoryID   = snowflake.ID(550)
)

func newTestManager(t *testing.T) (*Manager, *mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	store := guildconfig.NewStore(nil)
	if err := store.Mutate(context.Background(), testGuild, func(cfg *guildconfig.GuildConfig) {
		cfg.JoinToCreate = &guildconfig.JoinToCreateConfig{
			Lobby:    lobbyChannel,
			Category: categoryID,
		}
	}); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	return New(store, client), client
}

func TestLobbyJoinProvisionsChannel(t *testing.T) {
	m, client := newTestManager(t)

	client.EXPECT().
		FetchUser(gomock.Any(), testUser).
		Return(&platform.User{ID: testUser, Username: "alice"}, nil)
	client.EXPECT().
		CreateVoiceChannel(gomock.Any(), testGuild, platform.VoiceChannelSpec{
			Name:       "alice's Channel",
			CategoryID: categoryID,
			OwnerID:    testUser,
		}).
		Return(tempChannel, nil)
	client.EXPECT().
		MoveMember(gomock.Any(), testGuild, testUser, tempChannel).
		Return(nil)

	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, 0, lobbyChannel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, ok := m.Owner(tempChannel)
	if !ok || owner != testUser {
		t.Errorf("owner = %s, ok = %v, want %s", owner, ok, testUser)
	}
}

func TestCreationFailureLeavesNoRecord(t *testing.T) {
	m, client := newTestManager(t)

	client.EXPECT().
		FetchUser(gomock.Any(), testUser).
		Return(&platform.User{ID: testUser, Username: "alice"}, nil)
	client.EXPECT().
		CreateVoiceChannel(gomock.Any(), testGuild, gomock.Any()).
		Return(snowflake.ID(0), errors.New("missing permissions"))

	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, 0, lobbyChannel); err == nil {
		t.Fatal("expected the creation error to surface")
	}
	if _, ok := m.Owner(tempChannel); ok {
		t.Error("failed creation must not leave an ownership record")
	}
}

func TestFailedMoveIsNotFatal(t *testing.T) {
	m, client := newTestManager(t)

	client.EXPECT().
		FetchUser(gomock.Any(), testUser).
		Return(&platform.User{ID: testUser, Username: "alice"}, nil)
	client.EXPECT().
		CreateVoiceChannel(gomock.Any(), testGuild, gomock.Any()).
		Return(tempChannel, nil)
	client.EXPECT().
		MoveMember(gomock.Any(), testGuild, testUser, tempChannel).
		Return(errors.New("member left"))

	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, 0, lobbyChannel); err != nil {
		t.Fatalf("a failed move must not fail the provision: %v", err)
	}
	if _, ok := m.Owner(tempChannel); !ok {
		t.Error("channel must stay tracked after a failed move")
	}
}

func TestEmptyTrackedChannelIsReclaimed(t *testing.T) {
	m, client := newTestManager(t)
	m.owners[tempChannel] = testUser

	client.EXPECT().VoiceOccupancy(testGuild, tempChannel).Return(0)
	client.EXPECT().DeleteChannel(gomock.Any(), tempChannel).Return(nil)

	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, tempChannel, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Owner(tempChannel); ok {
		t.Error("reclaimed channel must be untracked")
	}
}

func TestOccupiedTrackedChannelIsKept(t *testing.T) {
	m, client := newTestManager(t)
	m.owners[tempChannel] = testUser

	client.EXPECT().VoiceOccupancy(testGuild, tempChannel).Return(2)

	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, tempChannel, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Owner(tempChannel); !ok {
		t.Error("occupied channel must stay tracked")
	}
}

func TestUntrackedChannelIsIgnored(t *testing.T) {
	m, _ := newTestManager(t)

	// No occupancy or delete expectations: leaving a normal channel
	// touches nothing.
	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, snowflake.ID(42), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReclaimSwallowsNotFound(t *testing.T) {
	m, client := newTestManager(t)
	m.owners[tempChannel] = testUser

	client.EXPECT().VoiceOccupancy(testGuild, tempChannel).Return(0)
	client.EXPECT().DeleteChannel(gomock.Any(), tempChannel).Return(platform.ErrNotFound)

	if err := m.HandleVoiceState(context.Background(), testGuild, testUser, tempChannel, 0); err != nil {
		t.Fatalf("NotFound on delete must be swallowed: %v", err)
	}
	if _, ok := m.Owner(tempChannel); ok {
		t.Error("record must be gone even when the channel was already deleted")
	}
}

func TestCreateOwnedUsesProvidedName(t *testing.T) {
	m, client := newTestManager(t)

	client.EXPECT().
		CreateVoiceChannel(gomock.Any(), testGuild, platform.VoiceChannelSpec{
			Name:       "study hall",
			CategoryID: categoryID,
			OwnerID:    testUser,
			UserLimit:  4,
			Hidden:     true,
		}).
		Return(tempChannel, nil)

	got, err := m.CreateOwned(context.Background(), testGuild, testUser, "study hall", 4, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tempChannel {
		t.Errorf("channel = %s, want %s", got, tempChannel)
	}
	if owner, ok := m.Owner(tempChannel); !ok || owner != testUser {
		t.Error("created channel must join the reclaim path")
	}
}
