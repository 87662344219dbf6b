package entity

import (
	"github.com/uptrace/bun"
)

type Subject struct {
	bun.BaseModel `bun:"table:subject"`

	BasicEntity
	Name         *string `json:"name"     bun:"name"`
	Code         *string `json:"code"     bun:"code"`
	DepartmentID *int    `json:"department_id" bun:"department_id"`
	TeacherID    *int    `json:"teacher_id" bun:"teacher_id"`
}
