package timetable

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	GroupName *string
	SubjectID *int
	Weekday   *int
}

type GetListResponse struct {
	ID        int     `json:"id"`
	SubjectID *int    `json:"subject_id"`
	Subject   *string `json:"subject"`
	Teacher   *string `json:"teacher"`
	GroupName *string `json:"group_name"`
	Weekday   *int    `json:"weekday"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Room      *string `json:"room"`
}

type CreateRequest struct {
	SubjectID *int    `json:"subject_id" form:"subject_id"`
	GroupName *string `json:"group_name" form:"group_name"`
	Weekday   *int    `json:"weekday"    form:"weekday"`
	StartTime *string `json:"start_time" form:"start_time"`
	EndTime   *string `json:"end_time"   form:"end_time"`
	Room      *string `json:"room"       form:"room"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:timetable"`

	ID        int       `json:"id" bun:"id,pk,autoincrement"`
	SubjectID *int      `json:"subject_id" bun:"subject_id"`
	GroupName *string   `json:"group_name" bun:"group_name"`
	Weekday   *int      `json:"weekday"    bun:"weekday"`
	StartTime *string   `json:"start_time" bun:"start_time"`
	EndTime   *string   `json:"end_time"   bun:"end_time"`
	Room      *string   `json:"room"       bun:"room"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID        int     `json:"id" form:"id"`
	SubjectID *int    `json:"subject_id" form:"subject_id"`
	GroupName *string `json:"group_name" form:"group_name"`
	Weekday   *int    `json:"weekday"    form:"weekday"`
	StartTime *string `json:"start_time" form:"start_time"`
	EndTime   *string `json:"end_time"   form:"end_time"`
	Room      *string `json:"room"       form:"room"`
}
