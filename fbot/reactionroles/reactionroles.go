// Package reactionroles maps (message, emoji) pairs to roles and
// applies them as members react.
package reactionroles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/platform"
)

type bindingKey struct {
	MessageID snowflake.ID
	Emoji     string
}

// Binding is one reaction-role rule, exposed for listings.
type Binding struct {
	GuildID   snowflake.ID
	MessageID snowflake.ID
	Emoji     string
	RoleID    snowflake.ID
}

type Table struct {
	mu       sync.RWMutex
	bindings map[bindingKey]Binding
	client   platform.Client
}

func NewTable(client platform.Client) *Table {
	return &Table{
		bindings: make(map[bindingKey]Binding),
		client:   client,
	}
}

// Bind upserts a rule. Binding the same (message, emoji) pair again
// replaces the role, it never duplicates the entry.
func (t *Table) Bind(guildID, messageID snowflake.ID, emoji string, roleID snowflake.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings[bindingKey{MessageID: messageID, Emoji: emoji}] = Binding{
		GuildID:   guildID,
		MessageID: messageID,
		Emoji:     emoji,
		RoleID:    roleID,
	}
}

// Unbind removes a rule. Unknown pairs no-op.
func (t *Table) Unbind(messageID snowflake.ID, emoji string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.bindings, bindingKey{MessageID: messageID, Emoji: emoji})
}

// BindingsFor lists the guild's rules for the dashboard and the
// reactionrole list subcommand.
func (t *Table) BindingsFor(guildID snowflake.ID) []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Binding
	for _, binding := range t.bindings {
		if binding.GuildID == guildID {
			out = append(out, binding)
		}
	}
	return out
}

func (t *Table) lookup(messageID snowflake.ID, emoji string) (Binding, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	binding, ok := t.bindings[bindingKey{MessageID: messageID, Emoji: emoji}]
	return binding, ok
}

// OnReactionAdded grants the bound role. The bot's own seed reactions
// and reactions on unbound messages are ignored. NotFound conditions
// (member left, role deleted) are swallowed.
func (t *Table) OnReactionAdded(ctx context.Context, guildID, messageID, userID snowflake.ID, emoji string) error {
	if userID == t.client.BotUserID() {
		return nil
	}
	binding, ok := t.lookup(messageID, emoji)
	if !ok {
		return nil
	}

	if err := t.client.GrantRole(ctx, guildID, userID, binding.RoleID); err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to grant reaction role: %w", err)
	}

	slog.Debug("Granted reaction role",
		slog.String("type", "evt"),
		slog.String("guild_id", guildID.String()),
		slog.String("role_id", binding.RoleID.String()),
	)
	return nil
}

// OnReactionRemoved revokes the bound role, symmetric to
// OnReactionAdded.
func (t *Table) OnReactionRemoved(ctx context.Context, guildID, messageID, userID snowflake.ID, emoji string) error {
	if userID == t.client.BotUserID() {
		return nil
	}
	binding, ok := t.lookup(messageID, emoji)
	if !ok {
		return nil
	}

	if err := t.client.RevokeRole(ctx, guildID, userID, binding.RoleID); err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke reaction role: %w", err)
	}
	return nil
}
