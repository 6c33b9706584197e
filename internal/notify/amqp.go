package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationsExchange = "notifications"

// envelope is the wire format handed to delivery workers.
type envelope struct {
	Channel     string    `json:"channel"`
	Destination string    `json:"destination"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sentAt"`
}

// AMQPSink publishes notifications to a RabbitMQ topic exchange with
// routing key "notify.<channel>". Delivery workers bind per channel.
type AMQPSink struct {
	ch *amqp.Channel
}

// NewAMQPSink declares the notifications exchange on the given channel.
func NewAMQPSink(ch *amqp.Channel) (*AMQPSink, error) {
	if err := ch.ExchangeDeclare(notificationsExchange, "topic",
		true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare notifications exchange: %w", err)
	}
	return &AMQPSink{ch: ch}, nil
}

// Send publishes one persistent message for one channel.
func (s *AMQPSink) Send(ctx context.Context, channel, destination, message string) error {
	body, err := json.Marshal(envelope{
		Channel:     channel,
		Destination: destination,
		Message:     message,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = s.ch.PublishWithContext(ctx,
		notificationsExchange,
		"notify."+channel,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Dial connects to RabbitMQ and opens a channel for the sink.
func Dial(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	return conn, ch, nil
}
