package middleware

import (
	"context"
	"net/http"
	"strings"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionLookup resolves a bearer token to a live session.
// repository.SessionRepository satisfies it.
type SessionLookup interface {
	FindValidSession(ctx context.Context, token uuid.UUID) (*entity.SessionUser, error)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is absent.
func bearerToken(r *http.Request) (token string, ok bool, valid bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false, false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", true, false
	}
	return token, true, true
}

// resolve looks up the session for a raw token. A malformed token is treated like an unknown one.
func resolve(ctx context.Context, sessions SessionLookup, raw string) (*entity.SessionUser, error) {
	token, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}
	return sessions.FindValidSession(ctx, token)
}

// AuthSession rejects requests without a valid, unexpired session of an active user.
func AuthSession(sessions SessionLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, present, valid := bearerToken(r)
			if !present {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
				return
			}
			if !valid {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			session, err := resolve(r.Context(), sessions, raw)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				logger.Debug("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token.")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, session.IsStaff)
			ctx = utils.SetTokenContext(ctx, raw)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the session user when a valid token is presented and
// otherwise lets the request through anonymously.
func OptionalAuth(sessions SessionLookup, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _, valid := bearerToken(r)
			if !valid {
				next.ServeHTTP(w, r)
				return
			}

			session, err := resolve(r.Context(), sessions, raw)
			if err != nil {
				logger.Warn("Optional auth lookup failed", zap.Error(err))
			}
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, session.IsStaff)
			ctx = utils.SetTokenContext(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Staff lets through staff and superusers only. Must run after AuthSession.
func Staff(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
				return
			}

			if !utils.IsStaffFromContext(r.Context()) {
				logger.Warn("Staff check: non-staff access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Not authorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
