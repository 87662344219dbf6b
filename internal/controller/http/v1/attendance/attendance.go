package attendance

import (
	"net/http"
	"reflect"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres"
	"college/backend/internal/repository/postgres/attendance"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
	qrSession  QRSession
}

func NewController(attendance Attendance, qrSession QRSession) *Controller {
	return &Controller{attendance: attendance, qrSession: qrSession}
}

// Scan resolves a scanned code into an attendance record.
func (uc Controller) Scan(c *web.Context) error {
	var request attendance.ScanRequest

	if err := c.BindFunc(&request, "Token"); err != nil {
		return c.RespondError(err)
	}

	session, err := uc.qrSession.GetActiveByToken(c.Ctx, *request.Token)
	if errors.Is(err, postgres.ErrNotFound) {
		return c.RespondError(web.NewRequestError(errors.New("invalid code. ask your teacher for a new one"), http.StatusBadRequest))
	}
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.ResolveScan(c.Ctx, session, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if studentID, ok := c.GetQueryFunc(reflect.Int, "student_id").(*int); ok {
		filter.StudentID = studentID
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CreateManual(c *web.Context) error {
	var request attendance.CreateManualRequest

	if err := c.BindFunc(&request, "StudentID", "SubjectID", "AttendDay", "Status"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.CreateManual(c.Ctx, request)
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

	var request attendance.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	err := uc.attendance.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.attendance.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
