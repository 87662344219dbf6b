package analytics

import (
	"net/http"
	"reflect"

	"college/backend/foundation/web"
	"college/backend/internal/repository/postgres/analytics"
)

type Controller struct {
	analytics Analytics
}

func NewController(analytics Analytics) *Controller {
	return &Controller{analytics}
}

// GetAnalytics serves every aggregation behind one endpoint, selected by
// the type query parameter.
func (uc Controller) GetAnalytics(c *web.Context) error {
	var filter analytics.Filter

	if t, ok := c.GetQueryFunc(reflect.String, "type").(*string); ok && t != nil {
		filter.Type = *t
	}
	if period, ok := c.GetQueryFunc(reflect.Int, "period").(*int); ok && period != nil {
		filter.PeriodDays = *period
	}
	if subjectID, ok := c.GetQueryFunc(reflect.Int, "subject_id").(*int); ok {
		filter.SubjectID = subjectID
	}
	if studentID, ok := c.GetQueryFunc(reflect.Int, "student_id").(*int); ok {
		filter.StudentID = studentID
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.analytics.GetAnalytics(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}
