package notification

type Filter struct {
	Limit      *int
	Offset     *int
	UnreadOnly *bool
}

type CreateRequest struct {
	RecipientID *int    `json:"recipient_id" form:"recipient_id"`
	Role        *string `json:"role"         form:"role"`
	Title       *string `json:"title"        form:"title"`
	Body        *string `json:"body"         form:"body"`
}
