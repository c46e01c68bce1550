package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-door-keeper/internal/app"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

// fingerprintAuthenticate captures one sample from the sensor, digests
// it, and feeds the policy engine on the fingerprint channel. On allow
// the door is unlocked for the matched account.
func (h *Handler) fingerprintAuthenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	digest, err := h.services.EnrollmentService.CaptureDigest(ctx)
	if err != nil {
		log.Err(err).Msg("fingerprint capture failed")
		http.Error(w, app.MsgFingerprintCaptureFailed, statusFromError(err))
		return
	}

	decision, err := h.services.PolicyService.Authorize(ctx, models.CredentialInput{
		Kind:           models.CredentialTemplate,
		Channel:        models.ChannelFingerprint,
		TemplateDigest: digest,
	})
	if err != nil {
		log.Err(err).Msg("fingerprint evaluation failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}
	if !decision.Allowed {
		utils.WriteJSON(w, models.DecisionResponse{Reason: decision.Reason}, http.StatusUnauthorized)
		return
	}

	settings, err := h.services.SettingsService.Get(ctx)
	if err != nil {
		log.Err(err).Msg("loading settings failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	actor := "fingerprint"
	response := models.DecisionResponse{Allowed: true}
	if decision.User != nil {
		actor = decision.User.Username
		response.Username = decision.User.Username
	}

	if _, err := h.services.LockController.Unlock(ctx, settings.AutoLockDelay, actor); err != nil {
		log.Err(err).Msg("unlocking failed")
		http.Error(w, app.MsgDoorControlError, statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// fingerprintEnroll runs an enrollment sequence for the named account.
func (h *Handler) fingerprintEnroll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}
	if request.Username == "" {
		http.Error(w, app.MsgUsernameRequired, http.StatusBadRequest)
		return
	}

	template, err := h.services.EnrollmentService.Enroll(r.Context(), request.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			http.Error(w, app.MsgUserNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Str("username", request.Username).Msg("enrollment failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.EnrollResponse{TemplateID: template.TemplateID}, http.StatusCreated)
}
