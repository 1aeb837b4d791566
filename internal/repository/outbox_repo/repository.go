package outbox_repo

import (
	"context"

	"ecommerce/internal/domain"
)

type OutboxRepository interface {
	InsertTx(ctx context.Context, q domain.Querier, msg *domain.OutboxMessage) error
	GetPendingMessages(ctx context.Context, limit int) ([]domain.OutboxMessage, error)
	MarkMessageSent(ctx context.Context, id string) error
}
