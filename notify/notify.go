// Package notify publishes fire-record change events over NATS so external
// rendering surfaces can refresh without polling the record service.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/tacsym/fires"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "tacsym"

// EventType identifies what happened to a record.
type EventType string

// Fire-record event types.
const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
)

// Event is the message published for each record change.
type Event struct {
	Type        EventType    `json:"type"`
	Record      fires.Record `json:"record"`
	PublishedAt time.Time    `json:"published_at"`
}

// Publisher publishes fire-record events. A nil connection degrades
// gracefully: publishes become no-ops so callers need no conditional wiring.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher over the given connection. prefix is the
// leading subject token; events go to "<prefix>.fires.<type>".
func NewPublisher(nc *nats.Conn, prefix string, opts ...PublisherOption) *Publisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	p := &Publisher{
		nc:     nc,
		prefix: prefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FireCreated publishes a created event for the record.
func (p *Publisher) FireCreated(record fires.Record) error {
	return p.publish(EventCreated, record)
}

// FireUpdated publishes an updated event for the record.
func (p *Publisher) FireUpdated(record fires.Record) error {
	return p.publish(EventUpdated, record)
}

// Subject returns the subject an event type is published on.
func (p *Publisher) Subject(t EventType) string {
	return fmt.Sprintf("%s.fires.%s", p.prefix, t)
}

func (p *Publisher) publish(t EventType, record fires.Record) error {
	if p == nil || p.nc == nil {
		return nil // Skip publishing if no NATS connection (graceful degradation)
	}

	event := Event{
		Type:        t,
		Record:      record,
		PublishedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal fire event: %w", err)
	}

	subject := p.Subject(t)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish fire event to %s: %w", subject, err)
	}

	p.logger.Debug("Published fire event", "subject", subject, "id", record.ID)
	return nil
}
