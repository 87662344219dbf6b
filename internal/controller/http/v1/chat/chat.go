package chat

import (
	"net/http"
	"reflect"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres/chat"
)

type Controller struct {
	chat Chat
}

func NewController(chat Chat) *Controller {
	return &Controller{chat}
}

func (uc Controller) GetHistory(c *web.Context) error {
	var filter chat.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if peerID, ok := c.GetQueryFunc(reflect.Int, "peer_id").(*int); ok {
		filter.PeerID = peerID
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.chat.GetHistory(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Send(c *web.Context) error {
	var request chat.SendRequest

	if err := c.BindFunc(&request, "RecipientID", "Body"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.chat.Send(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
