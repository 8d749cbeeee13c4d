package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dlehdeod1/newcornerkicks/internal/api/apierr"
	"github.com/dlehdeod1/newcornerkicks/internal/api/request"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decode reads the body into v, writing a 400 on failure
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := request.Decode(r, v); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return false
	}
	return true
}

// pathID reads a positive integer route variable, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, NewInvalidRequestError(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter; absent means 0
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		WriteError(w, NewInvalidRequestError(name+" must be a non-negative integer"))
		return 0, false
	}
	return v, true
}
