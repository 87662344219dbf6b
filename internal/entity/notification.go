package entity

import (
	"github.com/uptrace/bun"
)

type Notification struct {
	bun.BaseModel `bun:"table:notification"`

	BasicEntity
	RecipientID *int    `json:"recipient_id" bun:"recipient_id"`
	Title       *string `json:"title"        bun:"title"`
	Body        *string `json:"body"         bun:"body"`
	Read        *bool   `json:"read"         bun:"read"`
}
