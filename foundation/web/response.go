package web

import (
	"log"
	"net/http"
)

// Respond sends a JSON response with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

// RespondError translates an application error into the uniform error
// payload. Trusted *Error values surface their message and status; anything
// else is logged and reported as a generic 500 so internals never leak.
func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		return c.Respond(map[string]interface{}{
			"error":  webErr.Error(),
			"fields": webErr.Fields,
			"status": false,
		}, webErr.Status)
	}

	log.Printf("ERROR: %+v", err)

	return c.Respond(map[string]interface{}{
		"error":  http.StatusText(http.StatusInternalServerError),
		"status": false,
	}, http.StatusInternalServerError)
}
