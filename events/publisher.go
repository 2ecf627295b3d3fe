// Package events publishes domain events to RabbitMQ for downstream
// consumers (notifications, analytics pipelines). The broker is optional:
// when no URL is configured the service runs without this sink.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"mentconnect/domain/event"
)

const (
	routingMessageCreated     = "chat.message.created"
	routingConversationOpened = "chat.conversation.opened"
)

// messageCreatedPayload is the wire schema of a message event. Content is
// not forwarded, only a descriptor, so the broker never stores chat text.
type messageCreatedPayload struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Kind           string    `json:"kind"`
	ContentLength  int       `json:"content_length"`
	CreatedAt      time.Time `json:"created_at"`
}

type conversationOpenedPayload struct {
	ConversationID string    `json:"conversation_id"`
	MenteeID       string    `json:"user_id"`
	MentorID       string    `json:"mentor_id"`
	OpenedBy       string    `json:"opened_by"`
	OpenedAt       time.Time `json:"opened_at"`
}

// Publisher forwards domain events to a topic exchange. It implements
// contract.EventSink and is registered as a permanent sink.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *slog.Logger
}

// Connect dials the broker and declares the topic exchange.
func Connect(url, exchange string, log *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}
	log.Info("Connected to RabbitMQ", "exchange", exchange)
	return &Publisher{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *Publisher) Consume(ctx context.Context, e event.DomainEvent) error {
	routingKey, payload := toPayload(e)
	if payload == nil {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
}

func toPayload(e event.DomainEvent) (string, any) {
	switch evt := e.(type) {
	case event.MessageCreated:
		return routingMessageCreated, messageCreatedPayload{
			MessageID:      evt.Message.ID.String(),
			ConversationID: evt.Message.ConversationID.String(),
			SenderID:       evt.Message.SenderID,
			Kind:           string(evt.Message.Kind),
			ContentLength:  len(evt.Message.Content),
			CreatedAt:      evt.Message.CreatedAt,
		}
	case event.ConversationOpened:
		return routingConversationOpened, conversationOpenedPayload{
			ConversationID: evt.Conversation.ID.String(),
			MenteeID:       evt.Conversation.MenteeID,
			MentorID:       evt.Conversation.MentorID,
			OpenedBy:       evt.OpenedBy,
			OpenedAt:       evt.At,
		}
	default:
		return "", nil
	}
}
