package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadImported  = "lead.imported"
	EventStatusChanged = "status.changed"
)

// ClientEventPayload is the message published after a client mutation. The
// notification worker consumes it; business state never depends on delivery.
type ClientEventPayload struct {
	Event string `json:"event"`

	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`
	Stage       string `json:"stage"`
	LeadID      string `json:"lead_id,omitempty"`

	AdvisorName     string `json:"advisor_name"`
	AdvisorEmail    string `json:"advisor_email"`
	WhatsappNumber  string `json:"whatsapp_number,omitempty"`
	WhatsappEnabled bool   `json:"whatsapp_enabled"`

	OccurredAt time.Time `json:"occurred_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishClientEvent(ctx context.Context, payload ClientEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
