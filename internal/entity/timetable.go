package entity

import (
	"github.com/uptrace/bun"
)

type Timetable struct {
	bun.BaseModel `bun:"table:timetable"`

	BasicEntity
	SubjectID *int    `json:"subject_id" bun:"subject_id"`
	GroupName *string `json:"group_name" bun:"group_name"`
	Weekday   *int    `json:"weekday"    bun:"weekday"`
	StartTime *string `json:"start_time" bun:"start_time"`
	EndTime   *string `json:"end_time"   bun:"end_time"`
	Room      *string `json:"room"       bun:"room"`
}
