package hub

import (
	"strconv"
	"sync"
	"time"
)

// Settings field names as they appear on the wire.
const (
	FieldMessagesPerInterval    = "messagesPerInterval"
	FieldMessagesIntervalLength = "messagesIntervalLength"
	FieldMaxMessageLength       = "maxMessageLength"
	FieldSecret                 = "secret"
)

// settingsFields is the canonical field enumeration order. Per-field change
// events fire in this order after the generic one.
var settingsFields = [...]string{
	FieldMessagesPerInterval,
	FieldMessagesIntervalLength,
	FieldMaxMessageLength,
	FieldSecret,
}

// SettingsSnapshot is the externally visible settings state. The credential
// verification secret is always redacted to null, matching what admin
// clients receive from `get settings` and `settings change`.
type SettingsSnapshot struct {
	MessagesPerInterval    int     `json:"messagesPerInterval"`
	MessagesIntervalLength int64   `json:"messagesIntervalLength"`
	MaxMessageLength       int     `json:"maxMessageLength"`
	Secret                 *string `json:"secret"`
}

// Settings is the process-wide configuration gateway. All mutation goes
// through Write, which validates keys, coerces values, applies atomically,
// and notifies dispatcher listeners.
type Settings struct {
	mu sync.RWMutex

	messagesPerInterval    int
	messagesIntervalLength time.Duration
	maxMessageLength       int
	secret                 string

	dispatcher *Dispatcher
}

// NewSettings constructs the gateway with the given initial values.
func NewSettings(quota int, interval time.Duration, maxMessageLength int, secret string, d *Dispatcher) *Settings {
	return &Settings{
		messagesPerInterval:    quota,
		messagesIntervalLength: interval,
		maxMessageLength:       maxMessageLength,
		secret:                 secret,
		dispatcher:             d,
	}
}

// MessagesPerInterval returns the current per-window quota.
func (s *Settings) MessagesPerInterval() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messagesPerInterval
}

// MessagesIntervalLength returns the current rate-limit window length.
func (s *Settings) MessagesIntervalLength() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messagesIntervalLength
}

// MaxMessageLength returns the current message truncation bound.
func (s *Settings) MaxMessageLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxMessageLength
}

// Secret returns the raw credential verification key. Internal use only;
// it never appears in a SettingsSnapshot.
func (s *Settings) Secret() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}

// Read returns the redacted snapshot served to admin clients.
// The interval is expressed in milliseconds on the wire.
func (s *Settings) Read() SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SettingsSnapshot{
		MessagesPerInterval:    s.messagesPerInterval,
		MessagesIntervalLength: s.messagesIntervalLength.Milliseconds(),
		MaxMessageLength:       s.maxMessageLength,
		Secret:                 nil,
	}
}

// Write applies a partial settings update. Unrecognized keys and
// out-of-range values are silently dropped, remaining values are coerced to
// their declared types, and a write whose coerced values all equal the
// current ones is a no-op returning false.
// On change the new values are applied as a single assignment, then the
// generic change event fires followed by one event per changed field in
// field-enumeration order.
func (s *Settings) Write(partial map[string]any) bool {
	s.mu.Lock()

	changed := make(map[string]any)

	for _, field := range settingsFields {
		raw, present := partial[field]
		if !present {
			continue
		}

		switch field {
		case FieldMessagesPerInterval:
			if v, ok := coerceInt(raw); ok && v != s.messagesPerInterval {
				changed[field] = v
			}
		case FieldMessagesIntervalLength:
			if v, ok := coerceDuration(raw); ok && v != s.messagesIntervalLength {
				changed[field] = v
			}
		case FieldMaxMessageLength:
			// A bound below MinMessageRunes would make the store truncate
			// every submission into rejection territory (or worse, slice with
			// a negative index), so such values are dropped like uncoercible
			// ones.
			if v, ok := coerceInt(raw); ok && v >= MinMessageRunes && v != s.maxMessageLength {
				changed[field] = v
			}
		case FieldSecret:
			if v, ok := raw.(string); ok && v != s.secret {
				changed[field] = v
			}
		}
	}

	if len(changed) == 0 {
		s.mu.Unlock()
		return false
	}

	for field, v := range changed {
		switch field {
		case FieldMessagesPerInterval:
			s.messagesPerInterval = v.(int)
		case FieldMessagesIntervalLength:
			s.messagesIntervalLength = v.(time.Duration)
		case FieldMaxMessageLength:
			s.maxMessageLength = v.(int)
		case FieldSecret:
			s.secret = v.(string)
		}
	}

	snapshot := SettingsSnapshot{
		MessagesPerInterval:    s.messagesPerInterval,
		MessagesIntervalLength: s.messagesIntervalLength.Milliseconds(),
		MaxMessageLength:       s.maxMessageLength,
	}

	s.mu.Unlock()

	// Listeners run outside the settings lock so they may read back through
	// the gateway without deadlocking.
	s.dispatcher.Publish(TopicSettingsChanged, snapshot)

	for _, field := range settingsFields {
		v, ok := changed[field]
		if !ok {
			continue
		}
		s.dispatcher.Publish(fieldTopic(field), v)
	}

	return true
}

// fieldTopic maps a settings field name to its dispatcher topic.
func fieldTopic(field string) Topic {
	switch field {
	case FieldMessagesPerInterval:
		return TopicMessagesPerInterval
	case FieldMessagesIntervalLength:
		return TopicMessagesIntervalLength
	case FieldMaxMessageLength:
		return TopicMaxMessageLength
	default:
		return TopicSecret
	}
}

// coerceInt converts a JSON-decoded value to int. Numeric strings parse;
// anything else is rejected so Write can drop the key.
func coerceInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// coerceDuration converts a wire value in milliseconds to a time.Duration.
func coerceDuration(raw any) (time.Duration, bool) {
	ms, ok := coerceInt(raw)
	if !ok {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
