package events

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/platform"
)

func TestDispatchRunsHandlersInRegistrationOrder(t *testing.T) {
	d := NewDispatcher()
	var order []string

	d.OnMessageCreate(func(_ context.Context, _ MessageCreate) error {
		order = append(order, "first")
		return nil
	})
	d.OnMessageCreate(func(_ context.Context, _ MessageCreate) error {
		order = append(order, "second")
		return nil
	})

	d.Dispatch(context.Background(), MessageCreate{Message: platform.Message{GuildID: 1}})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}

func TestDispatchContinuesPastHandlerError(t *testing.T) {
	d := NewDispatcher()
	var secondRan bool

	d.OnMemberJoin(func(_ context.Context, _ MemberJoin) error {
		return errors.New("boom")
	})
	d.OnMemberJoin(func(_ context.Context, _ MemberJoin) error {
		secondRan = true
		return nil
	})

	d.Dispatch(context.Background(), MemberJoin{Guild: 1, UserID: 2})

	if !secondRan {
		t.Error("a handler error must not stop the remaining handlers")
	}
}

func TestDispatchRoutesByVariant(t *testing.T) {
	d := NewDispatcher()
	var joinCount, leaveCount int

	d.OnMemberJoin(func(_ context.Context, _ MemberJoin) error {
		joinCount++
		return nil
	})
	d.OnMemberLeave(func(_ context.Context, _ MemberLeave) error {
		leaveCount++
		return nil
	})

	d.Dispatch(context.Background(), MemberJoin{Guild: 1})
	d.Dispatch(context.Background(), MemberJoin{Guild: 1})
	d.Dispatch(context.Background(), MemberLeave{Guild: 1})

	if joinCount != 2 || leaveCount != 1 {
		t.Errorf("joins = %d leaves = %d, want 2 and 1", joinCount, leaveCount)
	}
}

func TestDispatchWithNoHandlersIsNoop(t *testing.T) {
	d := NewDispatcher()
	d.Dispatch(context.Background(), ReactionAdd{Guild: 1, Emoji: "⭐"})
}

func TestEventsCarryGuildID(t *testing.T) {
	guild := snowflake.ID(7)
	cases := []Event{
		MessageCreate{Message: platform.Message{GuildID: guild}},
		MessageDelete{Guild: guild},
		MemberJoin{Guild: guild},
		MemberUpdate{Guild: guild},
		VoiceStateUpdate{Guild: guild},
		ReactionAdd{Guild: guild},
		MemberBan{Guild: guild},
		RoleChange{Guild: guild},
		ChannelChange{Guild: guild},
	}
	for _, event := range cases {
		if event.GuildID() != guild {
			t.Errorf("%T.GuildID() = %s, want %s", event, event.GuildID(), guild)
		}
	}
}
