// Package http implements the HTTP transport layer of the door
// controller. It provides middleware, route handlers, and
// request/response utilities for the REST API. Authentication, logging,
// tracing, and compression concerns are all handled at this layer before
// requests are forwarded to the service layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-door-keeper/internal/app"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

// ctxKey is a private type for this package's context keys.
type ctxKey string

// currentUserCtxKey holds the fully resolved account of the
// authenticated caller, stored by the auth middleware.
const currentUserCtxKey ctxKey = "currentUser"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, validates it via [service.AuthService.ParseToken], resolves the
// token's subject to an account, and stores the account in the request
// context before delegating to the next handler. The user's ID and
// username are additionally stored under [utils.UserIDCtxKey] and
// [utils.UsernameCtxKey] for audit attribution.
//
// Requests are rejected with HTTP 401 when the header is absent or
// malformed, the token is expired or invalid, or the subject account no
// longer exists. An account whose approval has been revoked since login
// is rejected with HTTP 403.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		user, err := h.services.UserService.GetByID(ctx, token.UserID)
		if err != nil {
			log.Err(err).Int64("user_id", token.UserID).Msg("token subject not found")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !user.Approved {
			log.Warn().Str("username", user.Username).Msg("unapproved account rejected")
			http.Error(w, app.MsgAccountNotApproved, http.StatusForbidden)
			return
		}

		ctx = context.WithValue(ctx, currentUserCtxKey, user)
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
		ctx = context.WithValue(ctx, utils.UsernameCtxKey, user.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission gates a route group on one named capability.
// Administrators pass regardless of their stored permission list.
func (h *Handler) requirePermission(permission models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := currentUserFromContext(r.Context())
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			if user.Role != models.RoleAdmin && !user.Permissions.Has(permission) {
				logger.FromRequest(r).Warn().
					Str("username", user.Username).
					Str("permission", string(permission)).
					Msg("permission denied")
				http.Error(w, app.MsgPermissionDenied, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requireAdmin gates a route group on the admin role.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUserFromContext(r.Context())
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if user.Role != models.RoleAdmin {
			logger.FromRequest(r).Warn().Str("username", user.Username).Msg("admin required")
			http.Error(w, app.MsgPermissionDenied, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// currentUserFromContext retrieves the authenticated account stored by
// the auth middleware.
func currentUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(currentUserCtxKey).(models.User)
	return user, ok
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
