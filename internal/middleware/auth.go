package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sanitrack/sanitrack/internal/domain"
	"github.com/sanitrack/sanitrack/internal/registry"
)

type contextKey string

const (
	// ContextKeyStaff is the key for storing the staff member in request context.
	ContextKeyStaff contextKey = "staff"
)

// AuthMiddleware handles Bearer token authentication for staff endpoints.
type AuthMiddleware struct {
	staff *registry.StaffDirectory
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(staff *registry.StaffDirectory) *AuthMiddleware {
	return &AuthMiddleware{
		staff: staff,
	}
}

// Authenticate validates the Bearer token and adds the staff member to the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		staff, err := m.staff.GetByToken(token)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if !staff.IsActive {
			http.Error(w, "staff member inactive", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyStaff, staff)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffFromContext retrieves the authenticated staff member from request
// context.
func GetStaffFromContext(ctx context.Context) (*domain.Staff, error) {
	staff, ok := ctx.Value(ContextKeyStaff).(*domain.Staff)
	if !ok || staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	return staff, nil
}
