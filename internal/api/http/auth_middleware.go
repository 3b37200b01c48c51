package http

import (
	"errors"
	"net/http"
	"strings"

	"charlymatloc-backend/internal/config"
	"charlymatloc-backend/internal/security"
	"charlymatloc-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// uuidVars are the path variables that must hold a UUID on protected routes
var uuidVars = []string{"userId", "reservationId"}

type AuthMiddleware struct {
	tokenManager security.TokenManager
	authz        service.AuthzService
}

func NewAuthMiddleware(tm security.TokenManager, authz service.AuthzService) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, authz: authz}
}

// Handler authenticates the request according to the security level of the
// matched route, then asks the authorization service about access routes
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := routeName(r)
		level := config.GetSecurityLevel(route)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractToken(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			if errors.Is(err, security.ErrExpiredToken) {
				respondError(w, http.StatusUnauthorized, "token_expired", "access token expired")
				return
			}
			respondError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}

		if msg, ok := checkSecurityLevel(level, claims); !ok {
			respondError(w, http.StatusUnauthorized, "wrong_token_type", msg)
			return
		}

		profile := claims.Profile()
		ctx := withProfile(r.Context(), profile)

		if level == config.SecurityAccess {
			vars := mux.Vars(r)
			for _, name := range uuidVars {
				if raw, present := vars[name]; present {
					if _, err := uuid.Parse(raw); err != nil {
						respondError(w, http.StatusBadRequest, "validation_error", name+" must be a valid UUID")
						return
					}
				}
			}
			if err := m.authz.Authorize(ctx, route, vars, profile); err != nil {
				respondServiceError(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

func extractToken(r *http.Request) (string, bool) {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if token == "" {
		return "", false
	}
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = strings.TrimSpace(token[7:])
	}
	return token, token != ""
}

func checkSecurityLevel(level config.SecurityLevel, claims *security.UserClaims) (string, bool) {
	switch level {
	case config.SecurityAccess:
		if claims.Type != security.TokenTypeAccess {
			return "access token required", false
		}
	case config.SecurityRefresh:
		if claims.Type != security.TokenTypeRefresh {
			return "refresh token required", false
		}
	}
	return "", true
}
