package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/shaikazeem2001/inventory/internal/auth"
	"github.com/shaikazeem2001/inventory/internal/http/ban"
	rl "github.com/shaikazeem2001/inventory/internal/http/rate_limiter"
	"github.com/shaikazeem2001/inventory/internal/redissvc"
	"github.com/shaikazeem2001/inventory/internal/repo"
)

var userRepo repo.UserRepository

// SetUserRepo makes Authenticate load the caller's current role instead of trusting the token.
func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRedisService(rs *redissvc.RedisService) {
	ban.SetRedisService(rs)
}

type errorBody struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Message: message}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// Authenticate requires a valid Bearer token and stores the caller in the request context.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		principal, err := auth.TokenClaims(header)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		if userRepo != nil {
			user, err := userRepo.GetByUsername(r.Context(), principal.Username)
			if errors.Is(err, repo.ErrUserNotFound) {
				writeError(w, http.StatusUnauthorized, "Not authorized, user not found")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "could not load user")
				return
			}
			principal.UserID = user.ID
			principal.Role = user.Role
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		if !principal.IsAdmin() {
			writeError(w, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies the per-client token bucket. Rejections count as strikes toward a ban.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if ban.IsBanned(ip) {
			writeError(w, http.StatusForbidden, "Too many requests. You are temporarily banned.")
			return
		}

		if !rl.GetVisitor(ip).Allow() {
			if ban.RegisterStrike(ip, r.URL.Path) {
				writeError(w, http.StatusForbidden, "Too many requests. You are temporarily banned.")
				return
			}
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}
