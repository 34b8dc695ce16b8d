package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/gorilla/mux"
)

// decodeAndValidate reads a JSON body into req and validates it, writing the
// error response itself. Reports whether the handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}

	return true
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func currentSession(w http.ResponseWriter, r *http.Request) (entity.Session, bool) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Session not found")
	}
	return session, ok
}

// storeFailure answers an unexpected usecase error: 503 when the record
// store is unreachable, 500 otherwise.
func storeFailure(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, store.ErrStorageUnavailable):
		response.ServiceUnavailable(w, "Record store is unavailable")
	case errors.Is(err, store.ErrDuplicateKey):
		response.Conflict(w, "Record already exists")
	default:
		response.InternalServerError(w, message)
	}
}
