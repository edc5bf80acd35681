package api

import (
	"errors"
	"fmt"
)

// GenericFailure is reported for any non-2xx response that carries no message
const GenericFailure = "API request failed"

// StatusError is returned for every non-2xx response
type StatusError struct {
	Status  int
	Method  string
	Path    string
	Message string // server supplied, may be empty
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericFailure
}

// Detail includes the request line, for logs
func (e *StatusError) Detail() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Error())
}

// ServerMessage returns the message the server attached to err, if any
func ServerMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == code
}
