package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flashdeals/internal/logger"
	"flashdeals/pkg/mqtt"

	"go.uber.org/zap"
)

const (
	AccountRegistered          = "account.registered"
	OfferCreated               = "offer.created"
	OfferUpdated               = "offer.updated"
	OfferDeleted               = "offer.deleted"
	TicketCreated              = "ticket.created"
	TicketStatusChanged        = "ticket.status_changed"
	VendorApplicationSubmitted = "vendor.application_submitted"
	VendorApprovalChanged      = "vendor.approval_changed"
)

// Event is a domain fact announced to downstream consumers
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

func New(eventType string, data interface{}) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

// Publisher announces events. Implementations never fail the caller's operation.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type noopPublisher struct{}

// NewNoop returns a publisher that drops every event
func NewNoop() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) {}

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTPublisher sends events as JSON to <prefix>/<type>
type MQTTPublisher struct {
	client mqttClient
	prefix string
	qos    byte
}

var _ mqttClient = (*mqtt.Client)(nil)

func NewMQTTPublisher(client *mqtt.Client, topicPrefix string, qos int) *MQTTPublisher {
	return newMQTTPublisher(client, topicPrefix, qos)
}

func newMQTTPublisher(client mqttClient, topicPrefix string, qos int) *MQTTPublisher {
	if qos < 0 || qos > 2 {
		qos = 1
	}
	return &MQTTPublisher{client: client, prefix: topicPrefix, qos: byte(qos)}
}

func (p *MQTTPublisher) Topic(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return fmt.Sprintf("%s/%s", p.prefix, eventType)
}

func (p *MQTTPublisher) Publish(ctx context.Context, event Event) {
	if ctx.Err() != nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode event",
			zap.String("event", "event_encode_failed"),
			zap.String("type", event.Type),
			zap.Error(err),
		)
		return
	}

	topic := p.Topic(event.Type)
	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("event", "event_publish_failed"),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return
	}

	logger.Debug("Event published",
		zap.String("event", "event_published"),
		zap.String("topic", topic),
	)
}
