package hub

import (
	"fmt"
	"strings"
	"testing"
)

func TestMessageStoreRejectsShortText(t *testing.T) {
	s := NewMessageStore(100)

	for _, text := range []string{"", " ", "a", " a "} {
		if _, ok := s.Add(text); ok {
			t.Fatalf("expected %q to be rejected", text)
		}
	}

	if s.Len() != 0 {
		t.Fatalf("rejected adds must not change the store, len=%d", s.Len())
	}

	if _, ok := s.Add("ok"); !ok {
		t.Fatal("expected two-rune message to be accepted")
	}
}

func TestMessageStoreTruncatesInsteadOfRejecting(t *testing.T) {
	s := NewMessageStore(5)

	record, ok := s.Add("hello world")
	if !ok {
		t.Fatal("expected over-length message to be stored truncated")
	}
	if record.Text != "hello" {
		t.Fatalf("expected truncation to 5 runes, got %q", record.Text)
	}
}

func TestMessageStoreCapacityEviction(t *testing.T) {
	s := NewMessageStore(100)

	var first MessageRecord
	for i := 0; i < MaxMessages; i++ {
		record, ok := s.Add(fmt.Sprintf("message %d", i))
		if !ok {
			t.Fatalf("add %d failed", i)
		}
		if i == 0 {
			first = record
		}
	}

	if s.Len() != MaxMessages {
		t.Fatalf("expected %d records, got %d", MaxMessages, s.Len())
	}

	if _, ok := s.Add("one more"); !ok {
		t.Fatal("insert beyond capacity must still succeed")
	}

	if s.Len() != MaxMessages {
		t.Fatalf("store exceeded capacity: %d", s.Len())
	}

	for _, record := range s.List() {
		if record.ID == first.ID {
			t.Fatal("expected the oldest record to be evicted")
		}
	}
}

func TestMessageStoreListIsMostRecentFirst(t *testing.T) {
	s := NewMessageStore(100)

	s.Add("first")
	s.Add("second")
	s.Add("third")

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	if list[0].Text != "third" || list[2].Text != "first" {
		t.Fatalf("expected most-recent-first ordering, got %q .. %q", list[0].Text, list[2].Text)
	}
}

func TestMessageStoreEdit(t *testing.T) {
	s := NewMessageStore(100)

	record, _ := s.Add("original text")

	if s.Edit(MessageRecord{ID: "missing", Text: "nope"}) {
		t.Fatal("edit of unknown id must return false")
	}
	if s.List()[0].Text != "original text" {
		t.Fatal("failed edit must leave the store unchanged")
	}

	replacement := MessageRecord{ID: record.ID, Text: "rewritten", CreatedAt: record.CreatedAt}
	if !s.Edit(replacement) {
		t.Fatal("edit of existing id must succeed")
	}

	got := s.List()[0]
	if got != replacement {
		t.Fatalf("expected wholesale replacement, got %+v", got)
	}
}

func TestMessageStoreDelete(t *testing.T) {
	s := NewMessageStore(100)

	a, _ := s.Add("message a")
	b, _ := s.Add("message b")

	remaining := s.Delete("missing")
	if len(remaining) != 2 {
		t.Fatalf("delete of unknown id must return the unchanged list, got %d records", len(remaining))
	}

	remaining = s.Delete(a.ID)
	if len(remaining) != 1 || remaining[0].ID != b.ID {
		t.Fatalf("expected exactly %q to remain, got %+v", b.ID, remaining)
	}
}

func TestMessageStoreSetMaxTextLength(t *testing.T) {
	s := NewMessageStore(100)

	s.SetMaxTextLength(4)

	record, _ := s.Add(strings.Repeat("x", 20))
	if record.Text != "xxxx" {
		t.Fatalf("expected new bound to apply, got %q", record.Text)
	}
}

func TestMessageStoreClampsTruncationBound(t *testing.T) {
	// A bound below the minimum accepted length would let truncation produce
	// a record Add itself would reject, or slice with a negative index.
	for _, n := range []int{-1, 0, 1} {
		s := NewMessageStore(n)

		record, ok := s.Add("hello world")
		if !ok {
			t.Fatalf("bound %d: expected insert to succeed", n)
		}
		if got := len([]rune(record.Text)); got < MinMessageRunes {
			t.Fatalf("bound %d: stored text %q shorter than minimum", n, record.Text)
		}
	}

	s := NewMessageStore(10)
	s.SetMaxTextLength(-5)
	record, ok := s.Add("hello world")
	if !ok || len([]rune(record.Text)) != MinMessageRunes {
		t.Fatalf("expected clamped truncation, got %q ok=%v", record.Text, ok)
	}
}
