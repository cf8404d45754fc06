package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier delivers one client event to the assigned advisor (email, and
// WhatsApp when the advisor opted in).
type Notifier interface {
	Notify(ctx context.Context, payload ClientEventPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
}

func NewWorker(ch *amqp.Channel, notifier Notifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ClientEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] malformed payload: %s", err)
				// Poison message, reject without requeue.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] %s for client %s (advisor %s)", payload.Event, payload.ClientName, payload.AdvisorName)

			if err := w.Notifier.Notify(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker waiting on queue '%s'", queueName)
	<-forever
}
