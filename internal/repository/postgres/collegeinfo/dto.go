package collegeinfo

type UpdateRequest struct {
	ID           int     `json:"id" form:"id"`
	CollegeName  *string `json:"college_name"  form:"college_name"`
	Url          *string `json:"url"           form:"url"`
	AcademicYear *string `json:"academic_year" form:"academic_year"`
	ContactEmail *string `json:"contact_email" form:"contact_email"`
	ContactPhone *string `json:"contact_phone" form:"contact_phone"`
}
