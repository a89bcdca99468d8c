package middleware

import (
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const unknownErrorMessage = "Désolé, une erreur inattendue est survenue. Réessayez dans un instant."

// Recover converts panics into the 500 UNKNOWN_ERROR envelope. The panic
// value is logged server-side only.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				ctxzap.Error(r.Context(), "panic while handling request", zap.Any("panic", rec))
				response.AssistantError(w, http.StatusInternalServerError, entity.ErrorCodeUnknown, unknownErrorMessage)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
