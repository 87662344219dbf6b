package collegeinfo

import (
	"net/http"
	"reflect"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres/collegeinfo"
)

type Controller struct {
	collegeInfo CollegeInfo
}

func NewController(collegeInfo CollegeInfo) *Controller {
	return &Controller{collegeInfo}
}

func (uc Controller) Get(c *web.Context) error {
	response, err := uc.collegeInfo.Get(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request collegeinfo.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	err := uc.collegeInfo.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
