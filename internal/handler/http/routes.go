package http

import (
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization: web login/signup plus the two
	// credential entry points a visitor at the door uses
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/door/passcode", h.doorPasscode)
		r.Post("/api/fingerprint/authenticate", h.fingerprintAuthenticate)
	})

	// routes behind the JWT middleware
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/door/status", h.doorStatus)
		r.Post("/api/door/toggle", h.doorToggle)

		r.Get("/api/user/current", h.currentUser)

		r.Group(func(r chi.Router) {
			r.Use(h.requirePermission(models.PermissionManageUsers))
			r.Get("/api/users", h.listUsers)
			r.Post("/api/users/add", h.addUser)
			r.Get("/api/users/{username}", h.getUser)
			r.Put("/api/users/{username}", h.updateUser)
			r.Delete("/api/users/{username}", h.deleteUser)
			r.Post("/api/users/{username}/approve", h.approveUser)
			r.Post("/api/fingerprint/enroll", h.fingerprintEnroll)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requirePermission(models.PermissionChangeSettings))
			r.Get("/api/settings", h.getSettings)
			r.Post("/api/settings", h.updateSettings)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.requirePermission(models.PermissionViewLogs))
			r.Get("/api/logs", h.getLogs)
		})

		r.Get("/api/keypad/status", h.keypadStatus)
		r.Post("/api/keypad/simulate", h.keypadSimulate)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/api/keypad/reset", h.keypadReset)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
