package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped values across the application handlers.
// It wraps gin's context so raw helpers (Query, Param, Request) stay
// available, and keeps its own Ctx so middlewares can attach claims.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrors []FieldError
	queryErrors []FieldError
}

func NewContext(c *gin.Context) *Context {
	return &Context{Context: c, Ctx: c.Request.Context()}
}

// GetParam extracts a path parameter converted to the given kind. Conversion
// failures are collected and reported by ValidParam so handlers can assert
// the returned value without checking an error at every call site.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "must be an integer"})
			return 0
		}
		return v
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "must be a boolean"})
			return false
		}
		return v
	default:
		return value
	}
}

// ValidParam reports the parameter conversion errors collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid path params"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrors,
	}
}

// GetQueryFunc extracts an optional query parameter as a typed pointer.
// A missing parameter yields a typed nil pointer so callers can assign the
// result straight into filter structs.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "must be an integer"})
			return (*int)(nil)
		}
		return &v
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "must be a boolean"})
			return (*bool)(nil)
		}
		return &v
	default:
		if !ok {
			return (*string)(nil)
		}
		return &value
	}
}

// ValidQuery reports the query conversion errors collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid query params"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrors,
	}
}

// BindFunc binds the request body into data and checks that the named struct
// fields were provided. Field names may be passed one by one or joined with
// commas.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	var fields []FieldError

	v := reflect.ValueOf(data).Elem()
	for _, joined := range requiredFields {
		for _, name := range strings.Split(joined, ",") {
			name = strings.TrimSpace(name)
			field := v.FieldByName(name)
			if !field.IsValid() {
				continue
			}
			if field.Kind() == reflect.Ptr && field.IsNil() {
				fields = append(fields, FieldError{Field: name, Error: "required"})
				continue
			}
			if field.IsZero() && field.Kind() == reflect.String {
				fields = append(fields, FieldError{Field: name, Error: "required"})
			}
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// Respond converts a Go value to JSON and sends it to the client.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError sends an error response back to the client. Trusted *Error
// values keep their status and message; anything else is reported as an
// internal problem without leaking details.
func (c *Context) RespondError(err error) error {
	if webErr := GetRequestError(err); webErr != nil {
		body := map[string]interface{}{
			"error":  webErr.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  fmt.Sprintf("internal error: %v", err),
		"status": false,
	})
	return err
}
