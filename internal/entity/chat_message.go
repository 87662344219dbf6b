package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type ChatMessage struct {
	bun.BaseModel `bun:"table:chat_message"`

	ID          int        `json:"id" bun:"id,pk,autoincrement"`
	SenderID    *int       `json:"sender_id"    bun:"sender_id"`
	RecipientID *int       `json:"recipient_id" bun:"recipient_id"`
	Body        *string    `json:"body"         bun:"body"`
	CreatedAt   *time.Time `json:"created_at"   bun:"created_at"`
}
