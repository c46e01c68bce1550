package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

// getLogs serves the audit log. Optional query parameters: action,
// status, user, since (RFC 3339), limit.
func (h *Handler) getLogs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter := models.AuditFilter{
		Action: r.URL.Query().Get("action"),
		Status: r.URL.Query().Get("status"),
		User:   r.URL.Query().Get("user"),
	}

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		filter.Since = &since
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	records, err := h.services.AuditService.List(r.Context(), filter)
	if err != nil {
		log.Err(err).Msg("listing audit records failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}
