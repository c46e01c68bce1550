package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-door-keeper/internal/app"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

func (h *Handler) doorStatus(w http.ResponseWriter, r *http.Request) {
	state := h.services.LockController.State()

	utils.WriteJSON(w, models.DoorStatusResponse{
		Locked:   state.Locked,
		AutoLock: state.AutoLockDeadline != nil,
	}, http.StatusOK)
}

func (h *Handler) doorToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := currentUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.DoorToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	switch request.Action {
	case "unlock":
		// the policy engine applies the approval, access-window, and
		// permission gates for account credentials
		decision, err := h.services.PolicyService.Authorize(ctx, models.CredentialInput{
			Kind:     models.CredentialAccount,
			Username: user.Username,
		})
		if err != nil {
			log.Err(err).Msg("authorization failed")
			http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
			return
		}
		if !decision.Allowed {
			utils.WriteJSON(w, models.DecisionResponse{Reason: decision.Reason}, http.StatusForbidden)
			return
		}

		settings, err := h.services.SettingsService.Get(ctx)
		if err != nil {
			log.Err(err).Msg("loading settings failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		state, err := h.services.LockController.Unlock(ctx, settings.AutoLockDelay, user.Username)
		if err != nil {
			log.Err(err).Msg("unlocking failed")
			http.Error(w, app.MsgDoorControlError, statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.DoorStatusResponse{
			Locked:   state.Locked,
			AutoLock: state.AutoLockDeadline != nil,
		}, http.StatusOK)

	case "lock":
		if !user.CanUnlock() {
			http.Error(w, app.MsgPermissionDenied, http.StatusForbidden)
			return
		}

		state, err := h.services.LockController.Lock(ctx, user.Username)
		if err != nil {
			log.Err(err).Msg("locking failed")
			http.Error(w, app.MsgDoorControlError, statusFromError(err))
			return
		}

		utils.WriteJSON(w, models.DoorStatusResponse{Locked: state.Locked}, http.StatusOK)

	default:
		http.Error(w, app.MsgUnknownAction, http.StatusBadRequest)
	}
}

// doorPasscode is the unauthenticated passcode entry point, sharing the
// keypad channel and its failure counter with the physical keypad.
func (h *Handler) doorPasscode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.PasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}
	if request.Passcode == "" {
		http.Error(w, app.MsgPasscodeRequired, http.StatusBadRequest)
		return
	}

	decision, err := h.services.PolicyService.Authorize(ctx, models.CredentialInput{
		Kind:     models.CredentialPasscode,
		Channel:  models.ChannelKeypad,
		Passcode: request.Passcode,
	})
	if err != nil {
		log.Err(err).Msg("passcode evaluation failed")
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

	state, err := h.services.LockController.Unlock(ctx, settings.AutoLockDelay, "passcode")
	if err != nil {
		log.Err(err).Msg("unlocking failed")
		http.Error(w, app.MsgDoorControlError, statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.DoorStatusResponse{
		Locked:   state.Locked,
		AutoLock: state.AutoLockDeadline != nil,
	}, http.StatusOK)
}
