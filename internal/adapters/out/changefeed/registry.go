package changefeed

import (
	"log/slog"
	"sync"
)

// DefaultBuffer is the per-subscription channel capacity.
const DefaultBuffer = 64

// Subscription receives the events of one topic. Close it when done.
type Subscription struct {
	id       uint64
	topic    Topic
	events   chan Event
	registry *Registry
	once     sync.Once
}

func (s *Subscription) Topic() Topic         { return s.topic }
func (s *Subscription) Events() <-chan Event { return s.events }

// Close detaches the subscription and closes its channel.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.registry.remove(s)
	})
}

// Registry is the typed observer table. Dispatch never blocks: an observer whose
// buffer is full misses the event and the drop is logged.
type Registry struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic]map[uint64]*Subscription
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		subs:   make(map[Topic]map[uint64]*Subscription),
		logger: logger.With("component", "changefeed_registry"),
	}
}

// Subscribe registers an observer of topic. buffer <= 0 selects DefaultBuffer.
func (r *Registry) Subscribe(topic Topic, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := &Subscription{
		id:       r.nextID,
		topic:    topic,
		events:   make(chan Event, buffer),
		registry: r,
	}
	if r.subs[topic] == nil {
		r.subs[topic] = make(map[uint64]*Subscription)
	}
	r.subs[topic][sub.id] = sub
	return sub
}

// Dispatch hands e to the observers of its exact topic and of the entity wildcard.
// It returns the number of observers that received the event.
func (r *Registry) Dispatch(e Event) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := r.deliver(r.subs[e.Topic], e)
	if e.Topic.Scope != "" {
		delivered += r.deliver(r.subs[All(e.Topic.Entity)], e)
	}
	return delivered
}

// Len returns the number of open subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, subs := range r.subs {
		n += len(subs)
	}
	return n
}

func (r *Registry) deliver(subs map[uint64]*Subscription, e Event) int {
	delivered := 0
	for _, sub := range subs {
		select {
		case sub.events <- e:
			delivered++
		default:
			r.logger.Warn("dropping change event for slow observer",
				"entity", e.Topic.Entity, "scope", e.Topic.Scope, "id", e.ID)
		}
	}
	return delivered
}

func (r *Registry) remove(s *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subs, ok := r.subs[s.topic]; ok {
		delete(subs, s.id)
		if len(subs) == 0 {
			delete(r.subs, s.topic)
		}
	}
	close(s.events)
}
