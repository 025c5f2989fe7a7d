package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/phaetex/efootball-client/models"
)

type contextKey string

const accountContextKey contextKey = "account"

const tokenTTL = 24 * time.Hour

func (s *Server) mintToken(acc *account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": acc.ID,
		"role":    string(acc.Role),
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// authenticate verifies the bearer token and resolves the account fresh
// from the store, so role and participant changes take effect on the
// next request.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.errorResponse(w, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		idClaim, ok := claims["user_id"].(float64)
		if !ok {
			s.errorResponse(w, http.StatusUnauthorized, "malformed token claims")
			return
		}
		acc, err := s.store.userByID(int(idClaim))
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "account no longer exists")
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a subtree at a minimum role under the participant <
// admin < super_admin hierarchy.
func (s *Server) requireRole(min models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc := accountFrom(r.Context())
			if acc == nil || acc.Role.Rank() < min.Rank() {
				s.errorResponse(w, http.StatusForbidden, "insufficient privileges")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func accountFrom(ctx context.Context) *account {
	acc, _ := ctx.Value(accountContextKey).(*account)
	return acc
}
