package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"newsprep/internal/model"
)

// ArticlePublisher enqueues fetched articles for the ingest worker so HTTP
// requests never wait on database writes. Channels are opened per publish;
// amqp channels are not safe for concurrent use.
type ArticlePublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewArticlePublisher(conn *amqp.Connection, queueName string) *ArticlePublisher {
	return &ArticlePublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ArticlePublisher) Publish(ctx context.Context, article model.Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("marshal article payload failed: %w", err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(p.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	}
	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return fmt.Errorf("publish article failed: %w", err)
	}
	return nil
}
