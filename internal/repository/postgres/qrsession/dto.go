package qrsession

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	SubjectID  *int
	ActiveOnly *bool
}

type CreateRequest struct {
	SubjectID       *int `json:"subject_id" form:"subject_id"`
	DurationMinutes *int `json:"duration_minutes" form:"duration_minutes"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:qr_session"`

	ID        int       `json:"id" bun:"-"`
	TeacherID int       `json:"teacher_id" bun:"teacher_id"`
	SubjectID int       `json:"subject_id" bun:"subject_id"`
	Token     string    `json:"token" bun:"token"`
	StartsAt  time.Time `json:"starts_at" bun:"starts_at"`
	ExpiresAt time.Time `json:"expires_at" bun:"expires_at"`
	Active    bool      `json:"active" bun:"active"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type SheetResponse struct {
	ID        int       `json:"id"`
	Token     string    `json:"token"`
	Subject   string    `json:"subject"`
	Teacher   string    `json:"teacher"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type GetListResponse struct {
	ID        int        `json:"id" bun:"id"`
	TeacherID *int       `json:"teacher_id" bun:"teacher_id"`
	Teacher   *string    `json:"teacher" bun:"full_name"`
	SubjectID *int       `json:"subject_id" bun:"subject_id"`
	Subject   *string    `json:"subject" bun:"name"`
	Token     *string    `json:"token" bun:"token"`
	StartsAt  *time.Time `json:"starts_at" bun:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at" bun:"expires_at"`
	Active    *bool      `json:"active" bun:"active"`
}
