// Package leveling accrues XP from message activity and announces
// level-ups.
package leveling

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/utils"
)

const (
	minGain = 5
	maxGain = 15
)

// Record is one member's progress. XP is the amount accrued inside the
// current level, not a lifetime total.
type Record struct {
	UserID   snowflake.ID
	XP       int
	Level    int
	Messages int
}

// Threshold returns the XP needed to advance out of the given level.
func Threshold(level int) int {
	return (level + 1) * 100
}

type memberKey struct {
	Guild snowflake.ID
	User  snowflake.ID
}

type Ledger struct {
	mu      sync.Mutex
	records map[memberKey]*Record
	client  platform.Client
	gain    func() int
}

func NewLedger(client platform.Client) *Ledger {
	return &Ledger{
		records: make(map[memberKey]*Record),
		client:  client,
		gain: func() int {
			return minGain + rand.Intn(maxGain-minGain+1)
		},
	}
}

// Record returns a copy of the member's progress, zero-valued when the
// member has never spoken.
func (l *Ledger) Record(guildID, userID snowflake.ID) Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	if rec, ok := l.records[memberKey{Guild: guildID, User: userID}]; ok {
		return *rec
	}
	return Record{UserID: userID}
}

// Top returns the guild's records ordered by level, then XP, then
// message count.
func (l *Ledger) Top(guildID snowflake.ID, limit int) []Record {
	l.mu.Lock()
	var out []Record
	for key, rec := range l.records {
		if key.Guild == guildID {
			out = append(out, *rec)
		}
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level > out[j].Level
		}
		if out[i].XP != out[j].XP {
			return out[i].XP > out[j].XP
		}
		return out[i].Messages > out[j].Messages
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// OnMessage credits one message worth of XP and, when the gain crosses
// the level threshold, advances the member exactly one level with XP
// reset to zero. The check is a single conditional; a gain can never
// skip a level.
func (l *Ledger) OnMessage(ctx context.Context, guildID, channelID, userID snowflake.ID, username string) error {
	key := memberKey{Guild: guildID, User: userID}

	l.mu.Lock()
	rec := l.records[key]
	if rec == nil {
		rec = &Record{UserID: userID}
		l.records[key] = rec
	}
	rec.Messages++
	rec.XP += l.gain()

	leveledUp := false
	if rec.XP >= Threshold(rec.Level) {
		rec.Level++
		rec.XP = 0
		leveledUp = true
	}
	newLevel := rec.Level
	l.mu.Unlock()

	if !leveledUp {
		return nil
	}

	slog.Debug("Member leveled up",
		slog.String("type", "evt"),
		slog.String("guild_id", guildID.String()),
		slog.Int("level", newLevel),
	)

	_, err := l.client.SendMessage(ctx, channelID, discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: fmt.Sprintf("🎉 **%s** reached level **%d**!", username, newLevel),
			Color:       utils.LevelColor,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to announce level-up: %w", err)
	}
	return nil
}
