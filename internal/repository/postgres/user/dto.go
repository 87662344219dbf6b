package user

import (
	"mime/multipart"
	"time"

	"github.com/uptrace/bun"
)

// AuthClaims is the identity carried into token generation after a
// successful sign-in.
type AuthClaims struct {
	ID   int
	Role string
}

type SignInRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	Role         *string
	DepartmentID *int
	GroupName    *string
}

type GetListResponse struct {
	ID           int     `json:"id"`
	Login        *string `json:"login"`
	FullName     *string `json:"full_name"`
	Role         *string `json:"role"`
	DepartmentID *int    `json:"department_id"`
	Department   *string `json:"department"`
	GroupName    *string `json:"group_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
}

type GetDetailByIdResponse struct {
	ID             int     `json:"id"`
	Login          *string `json:"login"`
	FullName       *string `json:"full_name"`
	Role           *string `json:"role"`
	DepartmentID   *int    `json:"department_id"`
	Department     *string `json:"department"`
	GroupName      *string `json:"group_name"`
	ParentID       *int    `json:"parent_id"`
	GraduationYear *int    `json:"graduation_year"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
}

type CreateRequest struct {
	Login          *string `json:"login" form:"login"`
	Password       *string `json:"password" form:"password"`
	FullName       *string `json:"full_name" form:"full_name"`
	Role           *string `json:"role" form:"role"`
	DepartmentID   *int    `json:"department_id" form:"department_id"`
	GroupName      *string `json:"group_name" form:"group_name"`
	ParentID       *int    `json:"parent_id" form:"parent_id"`
	GraduationYear *int    `json:"graduation_year" form:"graduation_year"`
	Phone          *string `json:"phone" form:"phone"`
	Email          *string `json:"email" form:"email"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID             int       `json:"id" bun:"id,pk,autoincrement"`
	Login          *string   `json:"login" bun:"login"`
	Password       *string   `json:"-" bun:"password"`
	FullName       *string   `json:"full_name" bun:"full_name"`
	Role           *string   `json:"role" bun:"role"`
	DepartmentID   *int      `json:"department_id" bun:"department_id"`
	GroupName      *string   `json:"group_name" bun:"group_name"`
	ParentID       *int      `json:"parent_id" bun:"parent_id"`
	GraduationYear *int      `json:"graduation_year" bun:"graduation_year"`
	Phone          *string   `json:"phone" bun:"phone"`
	Email          *string   `json:"email" bun:"email"`
	CreatedAt      time.Time `json:"-" bun:"created_at"`
	CreatedBy      int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID             int     `json:"id" form:"id"`
	Login          *string `json:"login" form:"login"`
	Password       *string `json:"password" form:"password"`
	FullName       *string `json:"full_name" form:"full_name"`
	Role           *string `json:"role" form:"role"`
	DepartmentID   *int    `json:"department_id" form:"department_id"`
	GroupName      *string `json:"group_name" form:"group_name"`
	ParentID       *int    `json:"parent_id" form:"parent_id"`
	GraduationYear *int    `json:"graduation_year" form:"graduation_year"`
	Phone          *string `json:"phone" form:"phone"`
	Email          *string `json:"email" form:"email"`
}

type ExcelRequest struct {
	Excel *multipart.FileHeader `json:"excel" form:"excel"`
}
