// Package voicemanager provisions personal voice channels when members
// join a designated lobby and reclaims them once they sit empty.
package voicemanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
)

type Manager struct {
	mu     sync.Mutex
	owners map[snowflake.ID]snowflake.ID
	store  *guildconfig.Store
	client platform.Client
}

func New(store *guildconfig.Store, client platform.Client) *Manager {
	return &Manager{
		owners: make(map[snowflake.ID]snowflake.ID),
		store:  store,
		client: client,
	}
}

// Owner returns the owner of a tracked temp channel.
func (m *Manager) Owner(channelID snowflake.ID) (snowflake.ID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.owners[channelID]
	return owner, ok
}

// HandleVoiceState drives both transitions of the temp-channel state
// machine: provisioning when a member enters the lobby, and reclaiming
// when a tracked channel's occupancy drops to zero.
func (m *Manager) HandleVoiceState(ctx context.Context, guildID, userID, oldChannel, newChannel snowflake.ID) error {
	var provisionErr error
	if newChannel != 0 {
		cfg := m.store.Get(guildID)
		if cfg != nil && cfg.JoinToCreate != nil && cfg.JoinToCreate.Lobby == newChannel {
			provisionErr = m.provision(ctx, guildID, userID, cfg.JoinToCreate)
		}
	}

	if oldChannel != 0 && oldChannel != newChannel {
		m.reclaimIfEmpty(ctx, guildID, oldChannel)
	}
	return provisionErr
}

// provision creates the member's channel and moves them into it. A
// creation failure leaves the member in the lobby with no ownership
// record; there is no retry.
func (m *Manager) provision(ctx context.Context, guildID, userID snowflake.ID, cfg *guildconfig.JoinToCreateConfig) error {
	name := "Private Channel"
	if user, err := m.client.FetchUser(ctx, userID); err == nil {
		name = fmt.Sprintf("%s's Channel", user.Username)
	}

	channelID, err := m.client.CreateVoiceChannel(ctx, guildID, platform.VoiceChannelSpec{
		Name:       name,
		CategoryID: cfg.Category,
		OwnerID:    userID,
	})
	if err != nil {
		return fmt.Errorf("failed to create temp voice channel: %w", err)
	}

	m.mu.Lock()
	m.owners[channelID] = userID
	m.mu.Unlock()

	if err := m.client.MoveMember(ctx, guildID, userID, channelID); err != nil {
		// The channel exists and is tracked; the member can still join
		// it by hand, so a failed move is not fatal.
		slog.Warn("Failed to move member into temp channel",
			slog.String("type", "evt"),
			slog.String("guild_id", guildID.String()),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// CreateOwned provisions a temp channel outside the lobby flow, used by
// the tempvoice command. The channel joins the same reclaim path.
func (m *Manager) CreateOwned(ctx context.Context, guildID, userID snowflake.ID, name string, userLimit int, hidden bool) (snowflake.ID, error) {
	if name == "" {
		name = "Private Channel"
		if user, err := m.client.FetchUser(ctx, userID); err == nil {
			name = fmt.Sprintf("%s's Channel", user.Username)
		}
	}

	var category snowflake.ID
	if cfg := m.store.Get(guildID); cfg != nil && cfg.JoinToCreate != nil {
		category = cfg.JoinToCreate.Category
	}

	channelID, err := m.client.CreateVoiceChannel(ctx, guildID, platform.VoiceChannelSpec{
		Name:       name,
		CategoryID: category,
		OwnerID:    userID,
		UserLimit:  userLimit,
		Hidden:     hidden,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create temp voice channel: %w", err)
	}

	m.mu.Lock()
	m.owners[channelID] = userID
	m.mu.Unlock()
	return channelID, nil
}

// reclaimIfEmpty deletes a tracked channel whose occupancy reached
// zero. The ownership record is removed before the delete call so a
// second zero-occupancy observation is a no-op even if the delete is
// still in flight.
func (m *Manager) reclaimIfEmpty(ctx context.Context, guildID, channelID snowflake.ID) {
	m.mu.Lock()
	_, tracked := m.owners[channelID]
	if !tracked {
		m.mu.Unlock()
		return
	}
	if m.client.VoiceOccupancy(guildID, channelID) > 0 {
		m.mu.Unlock()
		return
	}
	delete(m.owners, channelID)
	m.mu.Unlock()

	if err := m.client.DeleteChannel(ctx, channelID); err != nil && !errors.Is(err, platform.ErrNotFound) {
		slog.Error("Failed to delete empty temp channel",
			slog.String("type", "evt"),
			slog.String("guild_id", guildID.String()),
			slog.String("channel_id", channelID.String()),
			slog.String("error", err.Error()),
		)
	}
}
