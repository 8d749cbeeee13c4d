package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultErrorMessage is shown when the server gives no usable message
const DefaultErrorMessage = "요청 처리 중 오류가 발생했습니다."

// InvalidResponseMessage is shown when a 2xx body does not match the expected shape
const InvalidResponseMessage = "서버 응답 형식이 올바르지 않습니다."

// RequestError is the single error kind for every failed backend call.
// Status is 0 when no HTTP response was received.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

// Error returns the display message
func (e *RequestError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for logging and errors.Is
func (e *RequestError) Unwrap() error {
	return e.Err
}

// errorBody is the failure payload of the club API
type errorBody struct {
	Error string `json:"error"`
}

// errorFromResponse builds a RequestError from a non-2xx response
func errorFromResponse(status int, body []byte) *RequestError {
	message := DefaultErrorMessage

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		message = eb.Error
	}

	return &RequestError{
		Status:  status,
		Message: message,
		Err:     fmt.Errorf("HTTP %d", status),
	}
}

// MessageOf returns the text to show a user for err
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}
