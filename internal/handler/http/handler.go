package http

import (
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/service"
)

// KeypadInput accepts simulated key presses for the keypad worker.
// Implemented by hardware.MemoryKeypad; nil when no keypad is attached.
type KeypadInput interface {
	Push(key string) error
}

type Handler struct {
	services *service.Services
	keypad   KeypadInput

	logger *logger.Logger
}

func NewHandler(services *service.Services, keypad KeypadInput, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		keypad:   keypad,
		logger:   logger,
	}
}
