package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-door-keeper/internal/app"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	settings, err := h.services.SettingsService.Get(r.Context())
	if err != nil {
		log.Err(err).Msg("loading settings failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, settings, http.StatusOK)
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSONProvided, http.StatusBadRequest)
		return
	}

	updated, err := h.services.SettingsService.Update(r.Context(), settings)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			log.Err(err).Msg("invalid settings")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("settings update failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}
