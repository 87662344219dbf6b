package chat

type Filter struct {
	Limit  *int
	Offset *int
	PeerID *int
}

type SendRequest struct {
	RecipientID *int    `json:"recipient_id" form:"recipient_id"`
	Body        *string `json:"body"         form:"body"`
}
