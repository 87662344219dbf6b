package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// QRSession is a time-boxed token a teacher issues for one class meeting.
// At most one session per (teacher, subject) is active; expiry is evaluated
// lazily at scan time, there is no background sweep.
type QRSession struct {
	bun.BaseModel `bun:"table:qr_session"`

	BasicEntity
	TeacherID *int       `json:"teacher_id" bun:"teacher_id"`
	SubjectID *int       `json:"subject_id" bun:"subject_id"`
	Token     *string    `json:"token"      bun:"token"`
	StartsAt  *time.Time `json:"starts_at"  bun:"starts_at"`
	ExpiresAt *time.Time `json:"expires_at" bun:"expires_at"`
	Active    *bool      `json:"active"     bun:"active"`
}
