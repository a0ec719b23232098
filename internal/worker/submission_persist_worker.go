package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"instructo-gateway/internal/model"
	"instructo-gateway/internal/repository"
)

// SubmissionPersistWorker drains the submission queue and writes the
// records to MySQL. Persistence is off the request path on purpose: a
// slow insert never delays the code-execution response.
type SubmissionPersistWorker struct {
	conn      *amqp.Connection
	repo      *repository.SubmissionRepository
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSubmissionPersistWorker(conn *amqp.Connection, repo *repository.SubmissionRepository, queueName string) *SubmissionPersistWorker {
	return &SubmissionPersistWorker{
		conn:      conn,
		repo:      repo,
		queueName: queueName,
	}
}

func (w *SubmissionPersistWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

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

				var submission model.Submission
				if err := json.Unmarshal(d.Body, &submission); err != nil {
					log.Printf("worker decode submission failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.repo.Create(&submission); err != nil {
					log.Printf("worker persist submission failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *SubmissionPersistWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
