package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// MessagePublisher is the part of *nats.Conn the publisher needs.
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher forwards events as JSON to <prefix>.<type>.
type NATSPublisher struct {
	conn   MessagePublisher
	prefix string
	logger *zap.Logger
}

// NewNATSPublisher creates the publisher.
func NewNATSPublisher(conn MessagePublisher, prefix string, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix, logger: logger}
}

// Register subscribes the publisher to every event type.
func (p *NATSPublisher) Register(d Dispatcher) {
	SubscribeAll(d, AllEventTypes, p.Handle)
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(eventType EventType) string {
	return fmt.Sprintf("%s.%s", p.prefix, eventType)
}

// Handle publishes one event.
func (p *NATSPublisher) Handle(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	subject := p.Subject(event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish event", zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
