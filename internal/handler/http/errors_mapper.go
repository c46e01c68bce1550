package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidation:              http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccountNotApproved:      http.StatusForbidden,
	service.ErrCannotDeleteSelf:        http.StatusConflict,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrHardwareFault:           http.StatusInternalServerError,
	service.ErrEnrollmentIncomplete:    http.StatusUnprocessableEntity,
	service.ErrSamplesMismatch:         http.StatusUnprocessableEntity,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrSettingsNotFound:      http.StatusInternalServerError,
	store.ErrAuditNotRecorded:      http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
