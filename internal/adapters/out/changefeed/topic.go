// Package changefeed carries change events of committed aggregates to in-process
// observers. Events are published after commit and fan out through a typed registry
// keyed by Topic. Delivery is at-least-once per transport and observers must
// tolerate duplicates.
package changefeed

import (
	"context"
	"encoding/json"
	"time"
)

// Entity names the aggregate family an event belongs to.
type Entity string

const (
	EntityOrder        Entity = "order"
	EntityNotification Entity = "notification"
	EntityPacking      Entity = "packing"
	EntityLoyalty      Entity = "loyalty"
)

// Topic addresses a stream of events. Scope narrows the stream to one member or order;
// a subscription with an empty Scope observes every event of the entity.
type Topic struct {
	Entity Entity `json:"entity"`
	Scope  string `json:"scope,omitempty"`
}

// All is the wildcard topic of e.
func All(e Entity) Topic { return Topic{Entity: e} }

// Event is one committed change.
type Event struct {
	Topic Topic           `json:"topic"`
	ID    string          `json:"id"`
	Data  json.RawMessage `json:"data,omitempty"`
	At    time.Time       `json:"at"`
}

// Publisher sends events to every process observing the feed.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// Feed is a Publisher whose received events are dispatched to a local Registry.
// Run blocks until ctx is cancelled or the transport fails.
type Feed interface {
	Publisher
	Registry() *Registry
	Run(ctx context.Context) error
	Close() error
}

func encode(e Event) ([]byte, error) {
	return json.Marshal(e)
}

func decode(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}
