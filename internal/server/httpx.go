package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/orgball2608/board-api/pkg/errors"
)

type handlerFunc func(http.ResponseWriter, *http.Request) error

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
	Status int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decode[T any](r *http.Request) (T, error) {
	var t T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return t, errors.InvalidInput("malformed request body: " + err.Error())
	}
	return t, nil
}

// decodeOptional is decode for endpoints whose body may be absent. An empty
// body, chunked or not, yields the zero value.
func decodeOptional[T any](r *http.Request) (T, error) {
	var t T
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return t, nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		if stderrors.Is(err, io.EOF) {
			return t, nil
		}
		return t, errors.InvalidInput("malformed request body: " + err.Error())
	}
	return t, nil
}

// statusOf maps the error taxonomy onto HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsAlreadyExists(err):
		return http.StatusConflict
	case errors.IsInvalidInput(err), errors.IsSerialization(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	code := errors.GetCode(err)
	if code == "" {
		code = "internal"
	}

	reason := errors.GetMessage(err)
	if status == http.StatusInternalServerError {
		reason = http.StatusText(status)
	}

	writeJSON(w, errorBody{Error: code, Reason: reason, Status: status}, status)
}
