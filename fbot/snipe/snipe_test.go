package snipe

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

func TestDeletionOverwritesPrevious(t *testing.T) {
	c := NewCache()
	channel := snowflake.ID(1)

	c.RecordDeletion(channel, DeletedSnapshot{AuthorName: "alice", Content: "first"})
	c.RecordDeletion(channel, DeletedSnapshot{AuthorName: "bob", Content: "second"})

	got, ok := c.Deletion(channel)
	if !ok {
		t.Fatal("expected a deletion snapshot")
	}
	if got.Content != "second" || got.AuthorName != "bob" {
		t.Errorf("snapshot = %+v, want the latest deletion", got)
	}
}

func TestDeletionEmptyChannel(t *testing.T) {
	c := NewCache()
	if _, ok := c.Deletion(42); ok {
		t.Error("expected no snapshot for an untouched channel")
	}
}

func TestDeletionIsPerChannel(t *testing.T) {
	c := NewCache()
	c.RecordDeletion(1, DeletedSnapshot{Content: "one"})
	c.RecordDeletion(2, DeletedSnapshot{Content: "two"})

	got, _ := c.Deletion(1)
	if got.Content != "one" {
		t.Errorf("channel 1 snapshot = %q, want %q", got.Content, "one")
	}
}

func TestRecordEditIgnoresUnchangedContent(t *testing.T) {
	c := NewCache()
	channel := snowflake.ID(1)

	c.RecordEdit(channel, EditedSnapshot{Before: "same", After: "same"})
	if _, ok := c.Edit(channel); ok {
		t.Error("embed-only edits must not be recorded")
	}

	c.RecordEdit(channel, EditedSnapshot{Before: "old", After: "new", EditedAt: time.Now()})
	got, ok := c.Edit(channel)
	if !ok {
		t.Fatal("expected an edit snapshot")
	}
	if got.Before != "old" || got.After != "new" {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestRecordEditKeepsWhitespaceOnlyChanges(t *testing.T) {
	c := NewCache()
	channel := snowflake.ID(1)

	c.RecordEdit(channel, EditedSnapshot{Before: "same ", After: " same"})
	got, ok := c.Edit(channel)
	if !ok {
		t.Fatal("a whitespace-only change is still an edit")
	}
	if got.Before != "same " || got.After != " same" {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestDeletionKeepsAttachments(t *testing.T) {
	c := NewCache()
	c.RecordDeletion(1, DeletedSnapshot{
		Content:        "look",
		AttachmentURLs: []string{"https://cdn.example/a.png"},
	})

	got, _ := c.Deletion(1)
	if len(got.AttachmentURLs) != 1 {
		t.Fatalf("attachments = %v, want one", got.AttachmentURLs)
	}
}
