package entity

import (
	"github.com/uptrace/bun"
)

type CollegeInfo struct {
	bun.BaseModel `bun:"table:college_info"`

	BasicEntity
	CollegeName  *string `json:"college_name"  bun:"college_name"`
	Url          *string `json:"url"           bun:"url"`
	AcademicYear *string `json:"academic_year" bun:"academic_year"`
	ContactEmail *string `json:"contact_email" bun:"contact_email"`
	ContactPhone *string `json:"contact_phone" bun:"contact_phone"`
}
