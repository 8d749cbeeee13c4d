package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dlehdeod1/newcornerkicks/internal/model"
	"github.com/dlehdeod1/newcornerkicks/internal/services/auth"
	"github.com/dlehdeod1/newcornerkicks/internal/services/player"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Not found
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "사용자를 찾을 수 없습니다."}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "선수를 찾을 수 없습니다."}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, "일정을 찾을 수 없습니다."}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, "경기를 찾을 수 없습니다."}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, "팀을 찾을 수 없습니다."}
	case errors.Is(err, model.ErrSettlementNotFound):
		return &httpError{http.StatusNotFound, "정산 내역을 찾을 수 없습니다."}
	case errors.Is(err, model.ErrNotificationNotFound):
		return &httpError{http.StatusNotFound, "알림을 찾을 수 없습니다."}

	// Conflicts
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, "이미 사용 중인 아이디입니다."}
	case errors.Is(err, model.ErrPlayerAlreadyLinked):
		return &httpError{http.StatusConflict, "다른 사용자와 연결된 선수입니다."}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, "현재 상태에서 변경할 수 없습니다."}
	case errors.Is(err, model.ErrMatchFinished):
		return &httpError{http.StatusConflict, "이미 종료된 경기입니다."}

	// Bad input
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, "날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)"}
	case errors.Is(err, model.ErrInvalidStatus):
		return &httpError{http.StatusBadRequest, "알 수 없는 상태입니다."}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, "알 수 없는 권한입니다."}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, "점수가 올바르지 않습니다."}
	case errors.Is(err, model.ErrInvalidTeams):
		return &httpError{http.StatusBadRequest, "팀 구성이 올바르지 않습니다."}
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{http.StatusBadRequest, "잘못된 요청입니다."}
	case errors.Is(err, player.ErrNameRequired):
		return &httpError{http.StatusBadRequest, "이름을 입력해주세요."}

	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "아이디 또는 비밀번호가 올바르지 않습니다."}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, "로그인이 만료되었습니다. 다시 로그인해주세요."}

	default:
		return &httpError{http.StatusInternalServerError, "서버 오류가 발생했습니다."}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "로그인이 필요합니다."}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, "관리자 권한이 필요합니다."}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, "요청한 경로를 찾을 수 없습니다."}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "서버 오류가 발생했습니다."}
}
