package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aeronica/complaint-portal/internal/repository"
	"github.com/aeronica/complaint-portal/internal/service"
	"github.com/aeronica/complaint-portal/internal/storage"
	"github.com/aeronica/complaint-portal/pkg/auth"
	"github.com/aeronica/complaint-portal/pkg/config"
	"github.com/aeronica/complaint-portal/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

type Handlers struct {
	authService      service.AuthService
	complaintService service.ComplaintService
	rateLimitRepo    repository.RateLimitRepository
	store            storage.ObjectStore
	config           *config.Config
}

func New(
	authService service.AuthService,
	complaintService service.ComplaintService,
	rateLimitRepo repository.RateLimitRepository,
	store storage.ObjectStore,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:      authService,
		complaintService: complaintService,
		rateLimitRepo:    rateLimitRepo,
		store:            store,
		config:           config,
	}
}

// RequireAdmin gates a route on a valid administrator session. Tokens
// issued through OTP verification carry the citizen role and are
// rejected here.
func (h *Handlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header", "UNAUTHENTICATED")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token", "UNAUTHENTICATED")
			return
		}

		if claims.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, "Administrator access required", "FORBIDDEN")
			return
		}

		ctx := context.WithValue(r.Context(), logger.AdminIDKey, claims.Sub)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OTPRateLimit bounds code issuance per client IP. Fails open: a broken
// rate-limit store must not lock citizens out of the portal.
func (h *Handlers) OTPRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)
		key := "send_otp:" + clientIP

		allowed, err := h.rateLimitRepo.CheckRateLimit(r.Context(), key, 5, time.Minute)
		if err != nil {
			logger.ErrorContext(r.Context(), "Rate limit check failed", "error", err)
		} else if !allowed {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", "RATE_LIMIT_EXCEEDED")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Helper functions
func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, statusCode int, message, code string) {
	response := map[string]string{
		"error": message,
		"code":  code,
	}
	writeJSON(w, statusCode, response)
}
