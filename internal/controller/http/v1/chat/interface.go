package chat

import (
	"context"

	"college/backend/internal/entity"
	"college/backend/internal/repository/postgres/chat"
)

type Chat interface {
	GetHistory(ctx context.Context, filter chat.Filter) ([]entity.ChatMessage, int, error)
	Send(ctx context.Context, request chat.SendRequest) (entity.ChatMessage, error)
}
