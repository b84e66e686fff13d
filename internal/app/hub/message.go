package hub

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxMessages is the fixed capacity of the rolling history. Inserting
	// beyond it evicts the oldest record.
	MaxMessages = 10

	// MinMessageRunes is the minimum post-trim length accepted by Add.
	MinMessageRunes = 2
)

// MessageRecord is one entry of the public message history. Records are
// immutable once stored except for wholesale replacement via Edit, and are
// handed to callers as value copies.
type MessageRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageStore is the bounded, ordered collection of message records.
// Records are held newest-first.
type MessageStore struct {
	mu         sync.RWMutex
	records    []MessageRecord
	maxTextLen int
}

// NewMessageStore constructs an empty store truncating stored text to
// maxTextLen runes. The bound is clamped to MinMessageRunes so truncation
// can never produce a record Add would have rejected.
func NewMessageStore(maxTextLen int) *MessageStore {
	return &MessageStore{
		records:    make([]MessageRecord, 0, MaxMessages),
		maxTextLen: clampMaxTextLen(maxTextLen),
	}
}

// SetMaxTextLength updates the truncation bound for subsequent inserts,
// clamped to MinMessageRunes. Already-stored records are left as they are.
func (s *MessageStore) SetMaxTextLength(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxTextLen = clampMaxTextLen(n)
}

func clampMaxTextLen(n int) int {
	if n < MinMessageRunes {
		return MinMessageRunes
	}
	return n
}

// Add validates, formats, and stores a new message. The text is trimmed and
// rejected if shorter than MinMessageRunes; longer text is truncated to the
// configured maximum, not rejected. Returns the stored record and whether
// the insert happened.
func (s *MessageStore) Add(text string) (MessageRecord, bool) {
	text = strings.TrimSpace(text)

	if len([]rune(text)) < MinMessageRunes {
		return MessageRecord{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if runes := []rune(text); len(runes) > s.maxTextLen {
		text = string(runes[:s.maxTextLen])
	}

	record := MessageRecord{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now(),
	}

	s.records = append([]MessageRecord{record}, s.records...)

	if len(s.records) > MaxMessages {
		s.records = s.records[:MaxMessages]
	}

	return record, true
}

// List returns value copies of all records, most-recent-first.
func (s *MessageStore) List() []MessageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]MessageRecord, len(s.records))
	copy(out, s.records)

	return out
}

// Edit replaces the record with the matching id wholesale. Returns false
// and leaves the store unchanged when the id is unknown.
func (s *MessageStore) Edit(record MessageRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record
			return true
		}
	}

	return false
}

// Delete removes the record with the given id, if present, and returns the
// remaining records most-recent-first. Deleting an unknown id is a no-op.
func (s *MessageStore) Delete(id string) []MessageRecord {
	s.mu.Lock()

	remaining := s.records[:0]
	for _, record := range s.records {
		if record.ID != id {
			remaining = append(remaining, record)
		}
	}
	s.records = remaining

	s.mu.Unlock()

	return s.List()
}

// Len reports the number of stored records.
func (s *MessageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
