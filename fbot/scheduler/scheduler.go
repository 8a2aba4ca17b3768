// Package scheduler runs the bot's time-driven work: reminder and
// scheduled-message dispatch, periodic stat-channel refresh, and
// per-channel auto-purge loops.
package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/utils"
)

// Reminder pings a user in a channel at its due time.
type Reminder struct {
	ID      int64
	Guild   snowflake.ID
	Channel snowflake.ID
	UserID  snowflake.ID
	Text    string
	DueAt   time.Time
}

// ScheduledMessage posts content to a channel at its due time.
type ScheduledMessage struct {
	ID      int64
	Guild   snowflake.ID
	Channel snowflake.ID
	Content string
	DueAt   time.Time
}

// dueItem is one queued dispatch. Exactly one of reminder and scheduled
// is set.
type dueItem struct {
	id        int64
	dueAt     time.Time
	reminder  *Reminder
	scheduled *ScheduledMessage
}

// dueQueue is a min-heap ordered by due time, so a dispatch pass pops
// only the items that are actually due instead of scanning everything.
type dueQueue []*dueItem

func (q dueQueue) Len() int           { return len(q) }
func (q dueQueue) Less(i, j int) bool { return q[i].dueAt.Before(q[j].dueAt) }
func (q dueQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *dueQueue) Push(x any)        { *q = append(*q, x.(*dueItem)) }
func (q *dueQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

type Scheduler struct {
	mu               sync.Mutex
	nextID           int64
	queue            dueQueue
	pendingReminders int
	pendingMessages  int

	store      *guildconfig.Store
	client     platform.Client
	procs      *utils.BackgroundProcessManager
	tick       time.Duration
	statsTick  time.Duration
	now        func() time.Time
	lastLabels map[snowflake.ID]string
}

func New(store *guildconfig.Store, client platform.Client, procs *utils.BackgroundProcessManager, tick, statsTick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = 30 * time.Second
	}
	if statsTick <= 0 {
		statsTick = 5 * time.Minute
	}
	return &Scheduler{
		store:      store,
		client:     client,
		procs:      procs,
		tick:       tick,
		statsTick:  statsTick,
		now:        time.Now,
		lastLabels: make(map[snowflake.ID]string),
	}
}

// Start launches the dispatch and stats loops under the process
// manager.
func (s *Scheduler) Start() {
	s.procs.StartProcess("scheduler-dispatch", func(ctx context.Context) {
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.DispatchDue(ctx)
			}
		}
	})

	s.procs.StartProcess("scheduler-stats", func(ctx context.Context) {
		ticker := time.NewTicker(s.statsTick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RefreshStats(ctx)
			}
		}
	})
}

// AddReminder queues a reminder and returns its id.
func (s *Scheduler) AddReminder(guildID, channelID, userID snowflake.ID, text string, dueAt time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	heap.Push(&s.queue, &dueItem{
		id:    s.nextID,
		dueAt: dueAt,
		reminder: &Reminder{
			ID:      s.nextID,
			Guild:   guildID,
			Channel: channelID,
			UserID:  userID,
			Text:    text,
			DueAt:   dueAt,
		},
	})
	s.pendingReminders++
	return s.nextID
}

// AddScheduledMessage queues a message send and returns its id.
func (s *Scheduler) AddScheduledMessage(guildID, channelID snowflake.ID, content string, dueAt time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	heap.Push(&s.queue, &dueItem{
		id:    s.nextID,
		dueAt: dueAt,
		scheduled: &ScheduledMessage{
			ID:      s.nextID,
			Guild:   guildID,
			Channel: channelID,
			Content: content,
			DueAt:   dueAt,
		},
	})
	s.pendingMessages++
	return s.nextID
}

// PendingCounts reports queue sizes for the dashboard.
func (s *Scheduler) PendingCounts() (reminders, scheduled int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingReminders, s.pendingMessages
}

// DispatchDue runs one dispatch pass: pop every item at or past due,
// send each, and keep it popped whether or not the send succeeded. At
// most once, best effort.
func (s *Scheduler) DispatchDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var due []*dueItem
	for s.queue.Len() > 0 && !s.queue[0].dueAt.After(now) {
		item := heap.Pop(&s.queue).(*dueItem)
		if item.reminder != nil {
			s.pendingReminders--
		} else {
			s.pendingMessages--
		}
		due = append(due, item)
	}
	s.mu.Unlock()

	for _, item := range due {
		if item.reminder != nil {
			if err := s.sendReminder(ctx, *item.reminder); err != nil {
				slog.Error("Failed to dispatch reminder",
					slog.String("type", "sys"),
					slog.String("guild_id", item.reminder.Guild.String()),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		m := item.scheduled
		if _, err := s.client.SendMessage(ctx, m.Channel, discord.MessageCreate{Content: m.Content}); err != nil {
			slog.Error("Failed to dispatch scheduled message",
				slog.String("type", "sys"),
				slog.String("guild_id", m.Guild.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Scheduler) sendReminder(ctx context.Context, r Reminder) error {
	_, err := s.client.SendMessage(ctx, r.Channel, discord.MessageCreate{
		Content: fmt.Sprintf("<@%s>", r.UserID),
		Embeds: []discord.Embed{{
			Title:       "Reminder",
			Description: r.Text,
			Color:       utils.InfoColor,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
