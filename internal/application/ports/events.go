package ports

import (
	"context"

	"file-manager-api/internal/infrastructure/mq"
)

type EventPublisher interface {
	Publish(ctx context.Context, e mq.Event) error
}
