// Package snipe keeps the last deleted and last edited message per
// channel so the /snipe and /editsnipe commands can replay them. One
// live snapshot per channel; each new occurrence overwrites the last.
package snipe

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	lru "github.com/hashicorp/golang-lru"
)

// maxChannels bounds each cache so a large bot cannot grow snapshot
// state without limit. Eviction drops the coldest channel, which is the
// least likely to be sniped.
const maxChannels = 1024

// DeletedSnapshot is the retained view of a deleted message.
type DeletedSnapshot struct {
	AuthorID       snowflake.ID
	AuthorName     string
	Content        string
	AttachmentURLs []string
	DeletedAt      time.Time
}

// EditedSnapshot is the retained before/after pair of an edited message.
type EditedSnapshot struct {
	AuthorID   snowflake.ID
	AuthorName string
	Before     string
	After      string
	EditedAt   time.Time
}

// Cache holds both snapshot kinds. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	deleted  *lru.Cache
	edited   *lru.Cache
}

func NewCache() *Cache {
	deleted, _ := lru.New(maxChannels)
	edited, _ := lru.New(maxChannels)
	return &Cache{deleted: deleted, edited: edited}
}

// RecordDeletion overwrites the channel's deletion snapshot.
func (c *Cache) RecordDeletion(channelID snowflake.ID, snapshot DeletedSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted.Add(channelID, snapshot)
}

// RecordEdit overwrites the channel's edit snapshot. Edits where the
// content is byte-for-byte identical (embed-only updates) are ignored.
func (c *Cache) RecordEdit(channelID snowflake.ID, snapshot EditedSnapshot) {
	if snapshot.Before == snapshot.After {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edited.Add(channelID, snapshot)
}

// Deletion returns the channel's deletion snapshot, if any.
func (c *Cache) Deletion(channelID snowflake.ID) (DeletedSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.deleted.Get(channelID)
	if !ok {
		return DeletedSnapshot{}, false
	}
	return value.(DeletedSnapshot), true
}

// Edit returns the channel's edit snapshot, if any.
func (c *Cache) Edit(channelID snowflake.ID) (EditedSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.edited.Get(channelID)
	if !ok {
		return EditedSnapshot{}, false
	}
	return value.(EditedSnapshot), true
}
