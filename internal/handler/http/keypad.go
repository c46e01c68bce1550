package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-door-keeper/internal/app"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

func (h *Handler) keypadStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	settings, err := h.services.SettingsService.Get(r.Context())
	if err != nil {
		log.Err(err).Msg("loading settings failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	state := h.services.AttemptTracker.State(models.ChannelKeypad)

	utils.WriteJSON(w, models.KeypadStatusResponse{
		Enabled:        settings.KeypadEnabled,
		FailedAttempts: state.FailedCount,
		IsLockedOut:    state.LockedOut,
	}, http.StatusOK)
}

// keypadSimulate feeds a key press into the keypad buffer, for testing
// installations without physical hardware.
func (h *Handler) keypadSimulate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.KeypadSimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}
	if request.Key == "" {
		http.Error(w, app.MsgKeyRequired, http.StatusBadRequest)
		return
	}

	if h.keypad == nil {
		http.Error(w, app.MsgKeypadNotAvailable, http.StatusServiceUnavailable)
		return
	}

	if err := h.keypad.Push(request.Key); err != nil {
		log.Err(err).Msg("keypad push failed")
		http.Error(w, app.MsgKeypadNotAvailable, http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// keypadReset clears the keypad channel's failure counter and lockout.
// Admin only: this is the explicit reset the lockout invariant requires.
func (h *Handler) keypadReset(w http.ResponseWriter, r *http.Request) {
	username, _ := utils.GetUsernameFromContext(r.Context())

	state := h.services.AttemptTracker.Reset(models.ChannelKeypad)
	h.services.AuditService.Record(models.AuditActionKeypad, models.AuditStatusReset, username, "keypad state reset")

	utils.WriteJSON(w, state, http.StatusOK)
}
