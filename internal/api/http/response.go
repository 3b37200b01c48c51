package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"charlymatloc-backend/internal/logger"
	"charlymatloc-backend/internal/service"
	"charlymatloc-backend/internal/utils"
	"charlymatloc-backend/internal/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError maps a service failure onto a status code. Unknown
// errors are logged and hidden behind a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.FromContext(r.Context()).Error("Unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}
	respondError(w, status, svcErr.Code, svcErr.Message)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return service.Validation("invalid JSON body")
	}
	return nil
}

// validateRequest runs the struct's `validate` tags and reports the first
// failure as a validation error
func validateRequest(req interface{}) error {
	if fields := validator.Validate(req); fields != nil {
		return service.Validation(validator.First(fields))
	}
	return nil
}

func pathUUID(r *http.Request, name string) (string, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", service.Validation(name + " must be a valid UUID")
	}
	return id.String(), nil
}

func pathID(r *http.Request, name string) (int32, error) {
	return parseID(mux.Vars(r)[name], name)
}

func parseID(raw, name string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || n <= 0 {
		return 0, service.Validation(name + " must be a positive integer")
	}
	return int32(n), nil
}

func parseDate(raw, name string) (time.Time, error) {
	d, err := utils.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, service.Validation(name + " must be a valid date in YYYY-MM-DD format")
	}
	return d, nil
}

// queryPeriod reads optional start_date and end_date parameters. Both must
// be present for a period to apply.
func queryPeriod(r *http.Request) (*time.Time, *time.Time, error) {
	q := r.URL.Query()
	rawStart, rawEnd := q.Get("start_date"), q.Get("end_date")
	if rawStart == "" && rawEnd == "" {
		return nil, nil, nil
	}
	if rawStart == "" || rawEnd == "" {
		return nil, nil, service.Validation("start_date and end_date must be provided together")
	}
	start, err := parseDate(rawStart, "start_date")
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate(rawEnd, "end_date")
	if err != nil {
		return nil, nil, err
	}
	return &start, &end, nil
}
