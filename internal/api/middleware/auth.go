package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/pkg/response"
	"github.com/ultron-crm/assistant-backend/internal/repository"
	"go.uber.org/zap"
)

type organizationContextKey struct{}

const authFailedMessage = "Votre session n'a pas pu être identifiée. Vérifiez votre clé d'accès et reconnectez-vous."

// OrganizationFromContext returns the tenant resolved by the Auth middleware.
func OrganizationFromContext(ctx context.Context) (*entity.Organization, bool) {
	org, ok := ctx.Value(organizationContextKey{}).(*entity.Organization)
	return org, ok
}

// Auth resolves the caller's bearer API key to an organization. Lookups are
// cached so a hot tenant does not hit the database on every message.
// Unresolvable keys end the request with 401 AUTH_ERROR.
func Auth(orgs repository.OrganizationRepository, cache *gocache.Cache) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			apiKey := bearerToken(r)
			if apiKey == "" {
				ctxzap.Warn(ctx, "missing bearer API key")
				response.AssistantError(w, http.StatusUnauthorized, entity.ErrorCodeAuth, authFailedMessage)
				return
			}

			if cached, ok := cache.Get(apiKey); ok {
				ctx = context.WithValue(ctx, organizationContextKey{}, cached.(*entity.Organization))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			org, err := orgs.GetByAPIKey(ctx, apiKey)
			if err != nil {
				ctxzap.Warn(ctx, "failed to resolve organization", zap.Error(err))
				response.AssistantError(w, http.StatusUnauthorized, entity.ErrorCodeAuth, authFailedMessage)
				return
			}

			cache.SetDefault(apiKey, org)

			ctx = context.WithValue(ctx, organizationContextKey{}, org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
