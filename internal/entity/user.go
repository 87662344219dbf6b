package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	Login          *string `json:"login"       bun:"login"`
	Password       *string `json:"password"    bun:"password"`
	Role           *string `json:"role"        bun:"role"`
	FullName       *string `json:"full_name"   bun:"full_name"`
	DepartmentID   *int    `json:"department_id" bun:"department_id"`
	GroupName      *string `json:"group_name"  bun:"group_name"`
	ParentID       *int    `json:"parent_id"   bun:"parent_id"`
	GraduationYear *int    `json:"graduation_year" bun:"graduation_year"`
	Phone          *string `json:"phone"       bun:"phone"`
	Email          *string `json:"email"       bun:"email"`
}
