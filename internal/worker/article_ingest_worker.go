package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"newsprep/internal/model"
	"newsprep/internal/storage"
)

// ArticleIngestWorker drains the article queue into the store. Articles
// already stored (same URL) are acked and dropped; ingest is idempotent.
type ArticleIngestWorker struct {
	conn      *amqp.Connection
	store     storage.Store
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewArticleIngestWorker(conn *amqp.Connection, store storage.Store, queueName string) *ArticleIngestWorker {
	return &ArticleIngestWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *ArticleIngestWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	// Durable queue shared with the publisher; declaration is idempotent.
	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.handle(d)
			}
		}
	}()

	return nil
}

func (w *ArticleIngestWorker) handle(d amqp.Delivery) {
	var article model.Article
	if err := json.Unmarshal(d.Body, &article); err != nil {
		log.Warn().Err(err).Msg("worker decode article failed")
		_ = d.Nack(false, false)
		return
	}

	err := w.store.CreateArticle(&article)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, storage.ErrDuplicate):
		// Same URL fetched twice; first write wins.
		_ = d.Ack(false)
	default:
		log.Warn().Err(err).Str("url", article.URL).Msg("worker persist article failed")
		_ = d.Nack(false, false)
	}
}

func (w *ArticleIngestWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
