package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses. ABSENT rows are produced by manual marking only; a
// scan yields PRESENT or LATE.
const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	StudentID   *int       `json:"student_id" bun:"student_id"`
	SubjectID   *int       `json:"subject_id" bun:"subject_id"`
	TeacherID   *int       `json:"teacher_id" bun:"teacher_id"`
	QRSessionID *int       `json:"qr_session_id" bun:"qr_session_id"`
	AttendDay   *string    `json:"attend_day" bun:"attend_day"`
	Status      *string    `json:"status"     bun:"status"`
	MarkedAt    *time.Time `json:"marked_at"  bun:"marked_at"`
	Latitude    *float64   `json:"latitude"   bun:"latitude"`
	Longitude   *float64   `json:"longitude"  bun:"longitude"`
	DeviceInfo  *string    `json:"device_info" bun:"device_info"`
}
