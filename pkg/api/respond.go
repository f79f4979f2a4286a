package api

import (
	"encoding/json"
	"net/http"

	"github.com/scorpionlabs/tictac/pkg/errors"
)

type errorResponse struct {
	Error   errors.Code `json:"error"`
	Message string      `json:"message"`
}

var statusByCode = map[errors.Code]int{
	errors.ErrCodeInvalidInput:   http.StatusBadRequest,
	errors.ErrCodeInvalidFormat:  http.StatusBadRequest,
	errors.ErrCodeInvalidConfig:  http.StatusBadRequest,
	errors.ErrCodeInvalidName:    http.StatusBadRequest,
	errors.ErrCodeSerialization:  http.StatusBadRequest,
	errors.ErrCodeNotFound:       http.StatusNotFound,
	errors.ErrCodeFileNotFound:   http.StatusNotFound,
	errors.ErrCodeUnsupported:    http.StatusNotImplemented,
	errors.ErrCodeDeliveryFailed: http.StatusBadGateway,
	errors.ErrCodeClosed:         http.StatusServiceUnavailable,
	errors.ErrCodeInternal:       http.StatusInternalServerError,
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Error: code, Message: errors.UserMessage(err)})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "decode request body")
	}
	return nil
}
