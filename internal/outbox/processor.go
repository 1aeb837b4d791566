package outbox

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ecommerce/internal/infrastructure/kafka"
	"ecommerce/internal/repository/outbox_repo"
)

const batchSize = 10

// Processor drains pending outbox rows to Kafka on a fixed interval. Rows are
// marked sent only after the broker accepts them, so a crash between publish
// and mark re-publishes the message; consumers must tolerate duplicates.
type Processor struct {
	outboxRepo   outbox_repo.OutboxRepository
	producer     kafka.Producer
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
}

func NewProcessor(
	outboxRepo outbox_repo.OutboxRepository,
	producer kafka.Producer,
	pollInterval time.Duration,
	pollTimeout time.Duration,
	logger *zap.Logger,
) *Processor {
	return &Processor{
		outboxRepo:   outboxRepo,
		producer:     producer,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		logger:       logger,
		shutdown:     make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (p *Processor) Start(ctx context.Context) {
	p.logger.Info("Starting outbox processor",
		zap.Duration("poll_interval", p.pollInterval))

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.processPending(ctx)
			case <-p.shutdown:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop signals the poll loop and waits for the in-flight batch to finish.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		close(p.shutdown)
	})
	<-p.done
	p.logger.Info("Outbox processor stopped.")
}

func (p *Processor) processPending(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, p.pollTimeout)
	defer cancel()

	messages, err := p.outboxRepo.GetPendingMessages(pollCtx, batchSize)
	if err != nil {
		p.logger.Error("Failed to get pending outbox messages", zap.Error(err))
		return
	}
	if len(messages) == 0 {
		return
	}

	p.logger.Debug("Processing pending outbox messages", zap.Int("count", len(messages)))

	for _, msg := range messages {
		if err := p.producer.Produce(pollCtx, msg.Topic, msg.Key, msg.Payload); err != nil {
			p.logger.Error("Failed to publish outbox message",
				zap.String("message_id", msg.ID),
				zap.String("topic", msg.Topic),
				zap.Error(err))
			continue
		}

		if err := p.outboxRepo.MarkMessageSent(pollCtx, msg.ID); err != nil {
			p.logger.Error("Failed to mark outbox message as sent",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}
		p.logger.Debug("Outbox message published",
			zap.String("message_id", msg.ID),
			zap.String("topic", msg.Topic))
	}
}
