package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped context.Context next to the gin context.
// Handlers read and extend Ctx; everything request related goes through the
// embedded gin context.
type Context struct {
	Ctx context.Context
	*gin.Context

	queryErrs []string
	paramErrs []string
}

// BindFunc decodes the request body into v, picking the decoder from the
// content type (JSON or multipart/url-encoded form), and checks that the
// named struct fields were present in the payload. Form decoding is what
// lets file uploads bind into *multipart.FileHeader fields.
func (c *Context) BindFunc(v interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(v); err != nil {
		return NewRequestError(errors.Wrap(err, "parsing request body"), http.StatusBadRequest)
	}

	if len(requiredFields) > 0 {
		if err := requireFields(v, requiredFields); err != nil {
			return NewRequestError(err, http.StatusBadRequest)
		}
	}

	return nil
}

// GetQueryFunc reads an optional query parameter and converts it to the
// requested kind. It returns a typed nil-able pointer; a missing parameter
// yields a nil pointer of that type so callers can type-assert safely.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		switch kind {
		case reflect.Int:
			return (*int)(nil)
		case reflect.Bool:
			return (*bool)(nil)
		default:
			return (*string)(nil)
		}
	}

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s must be an integer", name))
			return (*int)(nil)
		}
		return &n
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, fmt.Sprintf("%s must be a boolean", name))
			return (*bool)(nil)
		}
		return &b
	default:
		return &value
	}
}

// GetParam reads a path parameter and converts it to the requested kind.
// Conversion problems are collected and surfaced by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, fmt.Sprintf("%s must be an integer", name))
			return 0
		}
		return n
	default:
		return value
	}
}

// ValidQuery reports query string conversion errors collected so far.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(errors.New(strings.Join(c.queryErrs, "; ")), http.StatusBadRequest)
	}
	return nil
}

// ValidParam reports path parameter conversion errors collected so far.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(errors.New(strings.Join(c.paramErrs, "; ")), http.StatusBadRequest)
	}
	return nil
}

// requireFields checks, via reflection, that the named fields of the struct
// pointed to by v are set. Pointer fields must be non-nil, strings non-empty.
func requireFields(v interface{}, fields []string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errors.New("binding target must be a struct")
	}

	var missing []string
	for _, group := range fields {
		// the call sites sometimes pass "A,B" as a single element
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			f := rv.FieldByName(name)
			if !f.IsValid() {
				missing = append(missing, name)
				continue
			}
			switch f.Kind() {
			case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
				if f.IsNil() {
					missing = append(missing, name)
				}
			case reflect.String:
				if f.String() == "" {
					missing = append(missing, name)
				}
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required field(s) missing: %s", strings.Join(missing, ", "))
	}

	return nil
}

// RespondJSON writes v as the raw response body. Used by the few handlers
// that stream files or need full control over the payload.
func (c *Context) RespondJSON(v interface{}, statusCode int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshalling response")
	}

	c.Header("Content-Type", "application/json")
	c.Status(statusCode)
	_, err = c.Writer.Write(data)

	return err
}
