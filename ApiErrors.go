package main

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

var ErrLoginFailed = errors.New("login failed")

// RequestError is a non-2xx answer other than 401; Message is the response body.
type RequestError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func newRequestError(method string, path string, status int, body string) *RequestError {
	message := body
	if message == "" {
		message = fmt.Sprintf("HTTP error! status: %d", status)
	}

	return &RequestError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: message,
	}
}

func (err *RequestError) Error() string {
	return err.Message
}

func (err *RequestError) IsNotFound() bool {
	return err.Status == http.StatusNotFound
}

func isNotFound(err error) bool {
	requestError := &RequestError{}

	return errors.As(err, &requestError) && requestError.IsNotFound()
}
