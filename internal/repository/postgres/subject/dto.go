package subject

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	TeacherID    *int
}

type GetListResponse struct {
	ID           int     `json:"id"`
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	DepartmentID *int    `json:"department_id"`
	Department   *string `json:"department"`
	TeacherID    *int    `json:"teacher_id"`
	Teacher      *string `json:"teacher"`
}

type CreateRequest struct {
	Name         *string `json:"name" form:"name"`
	Code         *string `json:"code" form:"code"`
	DepartmentID *int    `json:"department_id" form:"department_id"`
	TeacherID    *int    `json:"teacher_id" form:"teacher_id"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:subject"`

	ID           int       `json:"id" bun:"-"`
	Name         *string   `json:"name" bun:"name"`
	Code         *string   `json:"code" bun:"code"`
	DepartmentID *int      `json:"department_id" bun:"department_id"`
	TeacherID    *int      `json:"teacher_id" bun:"teacher_id"`
	CreatedAt    time.Time `json:"-" bun:"created_at"`
	CreatedBy    int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int     `json:"id" form:"id"`
	Name         *string `json:"name" form:"name"`
	Code         *string `json:"code" form:"code"`
	DepartmentID *int    `json:"department_id" form:"department_id"`
	TeacherID    *int    `json:"teacher_id" form:"teacher_id"`
}
