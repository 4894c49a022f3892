package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/repository"
	"github.com/skyriting/skyriting/internal/token"
)

type contextKey string

const principalKey contextKey = "principal"

// Auth resolves the request's principal: extract the bearer token, verify
// it, load the user behind the subject. Any failure is a 401 before handler
// logic runs. Banned users still resolve; enforcement of bans is left to
// the authorization gates.
func Auth(tokens *token.Service, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "MISSING_TOKEN", "Missing or malformed Authorization header")
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpired):
					unauthorized(w, "TOKEN_EXPIRED", "Token has expired")
				case errors.Is(err, token.ErrSignatureInvalid):
					unauthorized(w, "TOKEN_INVALID", "Token signature is invalid")
				default:
					unauthorized(w, "TOKEN_MALFORMED", "Token is malformed")
				}
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				internalError(w)
				return
			}
			if user == nil {
				// Token outlives the account; it carries no live snapshot.
				unauthorized(w, "PRINCIPAL_NOT_FOUND", "Account no longer exists")
				return
			}

			principal := auth.Principal{
				UserID: user.ID,
				Role:   user.Role,
				Banned: user.IsBanned,
			}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"` + code + `","message":"` + message + `"}}`))
}

func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"error":{"code":"INTERNAL","message":"Something went wrong"}}`))
}

// GetPrincipal extracts the resolved principal from the request context.
// Only valid on routes behind Auth.
func GetPrincipal(ctx context.Context) auth.Principal {
	return ctx.Value(principalKey).(auth.Principal)
}
