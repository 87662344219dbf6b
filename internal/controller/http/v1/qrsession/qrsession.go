package qrsession

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres/qrsession"
	"college/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	qrSession QRSession
	baseUrl   string
}

func NewController(qrSession QRSession, baseUrl string) *Controller {
	return &Controller{qrSession: qrSession, baseUrl: baseUrl}
}

func (uc Controller) Create(c *web.Context) error {
	var request qrsession.CreateRequest

	if err := c.BindFunc(&request, "SubjectID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.qrSession.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// GetImage streams the session code as a PNG for on-screen display.
func (uc Controller) GetImage(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var size int
	if s, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok && s != nil {
		size = *s
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.qrSession.GetSheetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := service.GenerateQRPNG(uc.baseUrl, detail.Token, size)
	if err != nil {
		return c.RespondError(err)
	}

	c.Data(http.StatusOK, "image/png", png)
	return nil
}

// GetPDF writes the printable handout and returns its path.
func (uc Controller) GetPDF(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.qrSession.GetSheetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	path, err := service.GenerateQRPDF(uc.baseUrl, detail.Token, service.QRSheet{
		Subject:   detail.Subject,
		Teacher:   detail.Teacher,
		StartsAt:  detail.StartsAt,
		ExpiresAt: detail.ExpiresAt,
	}, fmt.Sprintf("qr_session_%d.pdf", detail.ID))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]string{
			"url": path,
		},
		"status": true,
	}, http.StatusOK)
}

// GetListPDF writes a batch handout for every active session the caller
// can see, one page per session.
func (uc Controller) GetListPDF(c *web.Context) error {
	sheets, err := uc.qrSession.GetActiveSheets(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	if len(sheets) == 0 {
		return c.RespondError(web.NewRequestError(errors.New("no active sessions"), http.StatusBadRequest))
	}

	tokens := make([]string, 0, len(sheets))
	pages := make([]service.QRSheet, 0, len(sheets))
	for _, s := range sheets {
		tokens = append(tokens, s.Token)
		pages = append(pages, service.QRSheet{
			Subject:   s.Subject,
			Teacher:   s.Teacher,
			StartsAt:  s.StartsAt,
			ExpiresAt: s.ExpiresAt,
		})
	}

	path, err := service.GenerateQRListPDF(uc.baseUrl, tokens, pages, fmt.Sprintf("qr_sessions_%s.pdf", time.Now().Format("2006-01-02_15-04")))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]string{
			"url": path,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter qrsession.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if activeOnly, ok := c.GetQueryFunc(reflect.Bool, "active_only").(*bool); ok {
		filter.ActiveOnly = activeOnly
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.qrSession.GetList(c.Ctx, filter)
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

func (uc Controller) Deactivate(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	err := uc.qrSession.Deactivate(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
