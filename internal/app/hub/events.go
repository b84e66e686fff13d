/*
Package hub contains the core logic of the broadcast hub: connection
sessions, scoped broadcasting, the rolling message history, the per-identity
rate limiter, and the runtime settings gateway.

This file defines the internal event dispatcher used to let settings changes
reactively reconfigure the rate limiter and other listeners.
*/
package hub

import "sync"

// Topic identifies an internal event stream. One generic topic fires on any
// settings change, plus one topic per settings field.
type Topic int

const (
	// TopicSettingsChanged fires once for any applied settings write.
	TopicSettingsChanged Topic = iota

	// TopicMessagesPerInterval fires with the new int quota.
	TopicMessagesPerInterval

	// TopicMessagesIntervalLength fires with the new time.Duration window length.
	TopicMessagesIntervalLength

	// TopicMaxMessageLength fires with the new int truncation bound.
	TopicMaxMessageLength

	// TopicSecret fires when the credential verification key changes.
	TopicSecret
)

// Dispatcher is an in-process listener registry keyed by Topic.
// Listeners for a topic are invoked synchronously in subscription order.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[Topic][]func(any)
}

// NewDispatcher constructs an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Topic][]func(any)),
	}
}

// Subscribe appends fn to the listener list for the given topic.
func (d *Dispatcher) Subscribe(topic Topic, fn func(any)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners[topic] = append(d.listeners[topic], fn)
}

// Publish invokes every listener subscribed to the topic, in the order they
// were registered, passing the value through untouched.
func (d *Dispatcher) Publish(topic Topic, value any) {
	d.mu.RLock()
	fns := d.listeners[topic]
	d.mu.RUnlock()

	for _, fn := range fns {
		fn(value)
	}
}
