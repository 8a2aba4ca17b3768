// Package events defines the closed set of inbound platform events the
// engine reacts to, decoupled from the gateway library's own event types.
// Gateway listeners translate into these variants; feature packages only
// ever see this set.
package events

import (
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/platform"
)

// Event is the sealed marker interface. Only types in this package
// implement it, so the dispatcher's handler table covers every case at
// compile time.
type Event interface {
	isEvent()
	GuildID() snowflake.ID
}

type MessageCreate struct {
	Message platform.Message
}

type MessageDelete struct {
	Guild    snowflake.ID
	Channel  snowflake.ID
	Snapshot *platform.Message
}

type MessageUpdate struct {
	Guild   snowflake.ID
	Channel snowflake.ID
	Before  *platform.Message
	After   platform.Message
}

type MemberJoin struct {
	Guild     snowflake.ID
	GuildName string
	UserID    snowflake.ID
	Username  string
	IsBot     bool
	JoinedAt  time.Time
}

type MemberLeave struct {
	Guild    snowflake.ID
	UserID   snowflake.ID
	Username string
}

// MemberUpdate currently carries nickname changes only; other member
// mutations (roles, avatar) are not surfaced.
type MemberUpdate struct {
	Guild    snowflake.ID
	UserID   snowflake.ID
	Username string
	OldNick  string
	NewNick  string
}

type VoiceStateUpdate struct {
	Guild      snowflake.ID
	UserID     snowflake.ID
	OldChannel snowflake.ID
	NewChannel snowflake.ID
}

type ReactionAdd struct {
	Guild     snowflake.ID
	Channel   snowflake.ID
	MessageID snowflake.ID
	UserID    snowflake.ID
	Emoji     string
	// StarCount is the post-add count for this emoji when the gateway
	// cache can supply it, zero otherwise.
	StarCount int
}

type ReactionRemove struct {
	Guild     snowflake.ID
	Channel   snowflake.ID
	MessageID snowflake.ID
	UserID    snowflake.ID
	Emoji     string
}

type MemberBan struct {
	Guild    snowflake.ID
	UserID   snowflake.ID
	Username string
}

type MemberUnban struct {
	Guild    snowflake.ID
	UserID   snowflake.ID
	Username string
}

type RoleChange struct {
	Guild    snowflake.ID
	RoleID   snowflake.ID
	RoleName string
	Action   ChangeAction
}

type ChannelChange struct {
	Guild       snowflake.ID
	ChannelID   snowflake.ID
	ChannelName string
	Action      ChangeAction
}

type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionDeleted ChangeAction = "deleted"
	ActionUpdated ChangeAction = "updated"
)

func (MessageCreate) isEvent()    {}
func (MessageDelete) isEvent()    {}
func (MessageUpdate) isEvent()    {}
func (MemberJoin) isEvent()       {}
func (MemberLeave) isEvent()      {}
func (MemberUpdate) isEvent()     {}
func (VoiceStateUpdate) isEvent() {}
func (ReactionAdd) isEvent()      {}
func (ReactionRemove) isEvent()   {}
func (MemberBan) isEvent()        {}
func (MemberUnban) isEvent()      {}
func (RoleChange) isEvent()       {}
func (ChannelChange) isEvent()    {}

func (e MessageCreate) GuildID() snowflake.ID    { return e.Message.GuildID }
func (e MessageDelete) GuildID() snowflake.ID    { return e.Guild }
func (e MessageUpdate) GuildID() snowflake.ID    { return e.Guild }
func (e MemberJoin) GuildID() snowflake.ID       { return e.Guild }
func (e MemberLeave) GuildID() snowflake.ID      { return e.Guild }
func (e MemberUpdate) GuildID() snowflake.ID     { return e.Guild }
func (e VoiceStateUpdate) GuildID() snowflake.ID { return e.Guild }
func (e ReactionAdd) GuildID() snowflake.ID      { return e.Guild }
func (e ReactionRemove) GuildID() snowflake.ID   { return e.Guild }
func (e MemberBan) GuildID() snowflake.ID        { return e.Guild }
func (e MemberUnban) GuildID() snowflake.ID      { return e.Guild }
func (e RoleChange) GuildID() snowflake.ID       { return e.Guild }
func (e ChannelChange) GuildID() snowflake.ID    { return e.Guild }
