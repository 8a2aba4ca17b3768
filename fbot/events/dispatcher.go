package events

import (
	"context"
	"log/slog"
)

// Dispatcher fans a typed event out to its registered handlers. One
// handler slice per variant keeps dispatch explicit: adding a new event
// type without a matching field here is a compile error at the
// registration site, not a silent drop at runtime.
//
// Handlers run sequentially in registration order so per-guild state
// mutations observe platform-delivery order. A handler error is logged
// and does not stop the remaining handlers.
type Dispatcher struct {
	onMessageCreate    []func(context.Context, MessageCreate) error
	onMessageDelete    []func(context.Context, MessageDelete) error
	onMessageUpdate    []func(context.Context, MessageUpdate) error
	onMemberJoin       []func(context.Context, MemberJoin) error
	onMemberLeave      []func(context.Context, MemberLeave) error
	onMemberUpdate     []func(context.Context, MemberUpdate) error
	onVoiceStateUpdate []func(context.Context, VoiceStateUpdate) error
	onReactionAdd      []func(context.Context, ReactionAdd) error
	onReactionRemove   []func(context.Context, ReactionRemove) error
	onMemberBan        []func(context.Context, MemberBan) error
	onMemberUnban      []func(context.Context, MemberUnban) error
	onRoleChange       []func(context.Context, RoleChange) error
	onChannelChange    []func(context.Context, ChannelChange) error
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) OnMessageCreate(fn func(context.Context, MessageCreate) error) {
	d.onMessageCreate = append(d.onMessageCreate, fn)
}

func (d *Dispatcher) OnMessageDelete(fn func(context.Context, MessageDelete) error) {
	d.onMessageDelete = append(d.onMessageDelete, fn)
}

func (d *Dispatcher) OnMessageUpdate(fn func(context.Context, MessageUpdate) error) {
	d.onMessageUpdate = append(d.onMessageUpdate, fn)
}

func (d *Dispatcher) OnMemberJoin(fn func(context.Context, MemberJoin) error) {
	d.onMemberJoin = append(d.onMemberJoin, fn)
}

func (d *Dispatcher) OnMemberLeave(fn func(context.Context, MemberLeave) error) {
	d.onMemberLeave = append(d.onMemberLeave, fn)
}

func (d *Dispatcher) OnMemberUpdate(fn func(context.Context, MemberUpdate) error) {
	d.onMemberUpdate = append(d.onMemberUpdate, fn)
}

func (d *Dispatcher) OnVoiceStateUpdate(fn func(context.Context, VoiceStateUpdate) error) {
	d.onVoiceStateUpdate = append(d.onVoiceStateUpdate, fn)
}

func (d *Dispatcher) OnReactionAdd(fn func(context.Context, ReactionAdd) error) {
	d.onReactionAdd = append(d.onReactionAdd, fn)
}

func (d *Dispatcher) OnReactionRemove(fn func(context.Context, ReactionRemove) error) {
	d.onReactionRemove = append(d.onReactionRemove, fn)
}

func (d *Dispatcher) OnMemberBan(fn func(context.Context, MemberBan) error) {
	d.onMemberBan = append(d.onMemberBan, fn)
}

func (d *Dispatcher) OnMemberUnban(fn func(context.Context, MemberUnban) error) {
	d.onMemberUnban = append(d.onMemberUnban, fn)
}

func (d *Dispatcher) OnRoleChange(fn func(context.Context, RoleChange) error) {
	d.onRoleChange = append(d.onRoleChange, fn)
}

func (d *Dispatcher) OnChannelChange(fn func(context.Context, ChannelChange) error) {
	d.onChannelChange = append(d.onChannelChange, fn)
}

// Dispatch routes the event to every handler registered for its variant.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	switch e := event.(type) {
	case MessageCreate:
		runAll(ctx, e, "message_create", d.onMessageCreate)
	case MessageDelete:
		runAll(ctx, e, "message_delete", d.onMessageDelete)
	case MessageUpdate:
		runAll(ctx, e, "message_update", d.onMessageUpdate)
	case MemberJoin:
		runAll(ctx, e, "member_join", d.onMemberJoin)
	case MemberLeave:
		runAll(ctx, e, "member_leave", d.onMemberLeave)
	case MemberUpdate:
		runAll(ctx, e, "member_update", d.onMemberUpdate)
	case VoiceStateUpdate:
		runAll(ctx, e, "voice_state_update", d.onVoiceStateUpdate)
	case ReactionAdd:
		runAll(ctx, e, "reaction_add", d.onReactionAdd)
	case ReactionRemove:
		runAll(ctx, e, "reaction_remove", d.onReactionRemove)
	case MemberBan:
		runAll(ctx, e, "member_ban", d.onMemberBan)
	case MemberUnban:
		runAll(ctx, e, "member_unban", d.onMemberUnban)
	case RoleChange:
		runAll(ctx, e, "role_change", d.onRoleChange)
	case ChannelChange:
		runAll(ctx, e, "channel_change", d.onChannelChange)
	}
}

func runAll[E Event](ctx context.Context, event E, name string, handlers []func(context.Context, E) error) {
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			slog.Error("Event handler failed",
				slog.String("type", "evt"),
				slog.String("event", name),
				slog.String("guild_id", event.GuildID().String()),
				slog.String("error", err.Error()),
			)
		}
	}
}
