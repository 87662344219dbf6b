package attendance

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	Search    *string
	SubjectID *int
	StudentID *int
	Status    *string
	Date      *string
}

type GetListResponse struct {
	ID        int        `json:"id"`
	StudentID *int       `json:"student_id"`
	Student   *string    `json:"student"`
	SubjectID *int       `json:"subject_id"`
	Subject   *string    `json:"subject"`
	TeacherID *int       `json:"teacher_id"`
	Teacher   *string    `json:"teacher"`
	AttendDay *date.Date `json:"attend_day"`
	Status    *string    `json:"status"`
	MarkedAt  *time.Time `json:"marked_at,omitempty"`
}

type GetDetailByIdResponse struct {
	ID          int        `json:"id"`
	StudentID   *int       `json:"student_id"`
	Student     *string    `json:"student"`
	SubjectID   *int       `json:"subject_id"`
	Subject     *string    `json:"subject"`
	TeacherID   *int       `json:"teacher_id"`
	Teacher     *string    `json:"teacher"`
	QRSessionID *int       `json:"qr_session_id,omitempty"`
	AttendDay   *date.Date `json:"attend_day"`
	Status      *string    `json:"status"`
	MarkedAt    *time.Time `json:"marked_at,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	DeviceInfo  *string    `json:"device_info,omitempty"`
}

type ScanRequest struct {
	Token      *string  `json:"token" form:"token"`
	Latitude   *float64 `json:"latitude" form:"latitude"`
	Longitude  *float64 `json:"longitude" form:"longitude"`
	DeviceInfo *string  `json:"device_info" form:"device_info"`
}

type ScanResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID            int        `json:"id" bun:"-"`
	StudentID     int        `json:"student_id" bun:"student_id"`
	SubjectID     int        `json:"subject_id" bun:"subject_id"`
	TeacherID     *int       `json:"teacher_id" bun:"teacher_id"`
	QRSessionID   *int       `json:"qr_session_id,omitempty" bun:"qr_session_id"`
	AttendDay     string     `json:"attend_day" bun:"attend_day"`
	Status        string     `json:"status" bun:"status"`
	MarkedAt      *time.Time `json:"marked_at,omitempty" bun:"marked_at"`
	Latitude      *float64   `json:"latitude,omitempty" bun:"latitude"`
	Longitude     *float64   `json:"longitude,omitempty" bun:"longitude"`
	DeviceInfo    *string    `json:"device_info,omitempty" bun:"device_info"`
	AlreadyMarked bool       `json:"already_marked" bun:"-"`
	CreatedAt     time.Time  `json:"-" bun:"created_at"`
	CreatedBy     int        `json:"-" bun:"created_by"`
}

type CreateManualRequest struct {
	StudentID *int    `json:"student_id" form:"student_id"`
	SubjectID *int    `json:"subject_id" form:"subject_id"`
	AttendDay *string `json:"attend_day" form:"attend_day"`
	Status    *string `json:"status" form:"status"`
}

type UpdateRequest struct {
	ID        int     `json:"id" form:"id"`
	AttendDay *string `json:"attend_day" form:"attend_day"`
	Status    *string `json:"status" form:"status"`
}
