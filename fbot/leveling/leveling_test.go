package leveling

import (
	"context"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/platform/mock"
)

const (
	testGuild   = snowflake.ID(100)
	testChannel = snowflake.ID(150)
	testUser    = snowflake.ID(200)
)

func TestOnMessageAccruesXP(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewLedger(mock.NewMockClient(ctrl))
	l.gain = func() int { return 10 }

	for i := 0; i < 3; i++ {
		if err := l.OnMessage(context.Background(), testGuild, testChannel, testUser, "alice"); err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
	}

	rec := l.Record(testGuild, testUser)
	if rec.XP != 30 || rec.Level != 0 || rec.Messages != 3 {
		t.Errorf("record = %+v, want XP 30, level 0, 3 messages", rec)
	}
}

func TestOnMessageLevelsUpAndResetsXP(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	l := NewLedger(client)
	l.gain = func() int { return 10 }

	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, gomock.Any()).
		Return(snowflake.ID(1), nil)

	// Level 0 needs 100 XP; the tenth message crosses it.
	for i := 0; i < 10; i++ {
		if err := l.OnMessage(context.Background(), testGuild, testChannel, testUser, "alice"); err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
	}

	rec := l.Record(testGuild, testUser)
	if rec.Level != 1 {
		t.Errorf("level = %d, want 1", rec.Level)
	}
	if rec.XP != 0 {
		t.Errorf("xp after level-up = %d, want 0", rec.XP)
	}
}

func TestOnMessageJustBelowThresholdDoesNotLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewLedger(mock.NewMockClient(ctrl))
	l.gain = func() int { return 99 }

	if err := l.OnMessage(context.Background(), testGuild, testChannel, testUser, "alice"); err != nil {
		t.Fatalf("message: %v", err)
	}

	rec := l.Record(testGuild, testUser)
	if rec.Level != 0 || rec.XP != 99 {
		t.Errorf("record = %+v, want level 0 xp 99", rec)
	}
}

func TestThreshold(t *testing.T) {
	cases := []struct {
		level, want int
	}{
		{0, 100},
		{1, 200},
		{4, 500},
	}
	for _, tc := range cases {
		if got := Threshold(tc.level); got != tc.want {
			t.Errorf("Threshold(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestTopOrdersByLevelThenXP(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	l := NewLedger(client)

	seed := func(user snowflake.ID, xp, level, messages int) {
		l.mu.Lock()
		l.records[memberKey{Guild: testGuild, User: user}] = &Record{
			UserID: user, XP: xp, Level: level, Messages: messages,
		}
		l.mu.Unlock()
	}
	seed(1, 50, 2, 40)
	seed(2, 80, 2, 30)
	seed(3, 10, 5, 90)

	top := l.Top(testGuild, 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].UserID != 3 {
		t.Errorf("top[0] = %s, want user 3", top[0].UserID)
	}
	if top[1].UserID != 2 {
		t.Errorf("top[1] = %s, want user 2 (higher XP at same level)", top[1].UserID)
	}
}

func TestRecordUnknownMemberIsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewLedger(mock.NewMockClient(ctrl))

	rec := l.Record(testGuild, testUser)
	if rec.XP != 0 || rec.Level != 0 || rec.Messages != 0 {
		t.Errorf("record = %+v, want zero values", rec)
	}
}
