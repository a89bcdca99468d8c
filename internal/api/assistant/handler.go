package assistant

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/ultron-crm/assistant-backend/internal/api/middleware"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/pkg/logger"
	"github.com/ultron-crm/assistant-backend/internal/pkg/response"
	"go.uber.org/zap"
)

const (
	invalidRequestMessage = "Votre message est vide. Posez-moi une question, par exemple : « Montre-moi les prospects chauds »."
	authMissingMessage    = "Votre session n'a pas pu être identifiée. Vérifiez votre clé d'accès et reconnectez-vous."
)

type Handler struct {
	usecase AssistantUsecase
}

func NewHandler(usecase AssistantUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// HandleMessage handles POST /assistant - Ask the data assistant a question
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "HandleMessage")

	org, ok := middleware.OrganizationFromContext(ctx)
	if !ok {
		ctxzap.Error(ctx, "no organization in request context")
		response.AssistantError(w, http.StatusUnauthorized, entity.ErrorCodeAuth, authMissingMessage)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("organization_id", org.ID))

	var req entity.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.AssistantError(w, http.StatusBadRequest, entity.ErrorCodeInvalidInput, invalidRequestMessage)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		ctxzap.Warn(ctx, "blank message")
		response.AssistantError(w, http.StatusBadRequest, entity.ErrorCodeInvalidInput, invalidRequestMessage)
		return
	}

	ctxzap.Info(ctx, "handling assistant message",
		zap.Int("message_length", len(req.Message)),
		zap.Int("history_turns", len(req.ConversationHistory)),
	)

	// Stage failures come back as taxonomy codes inside the envelope, not
	// as 5xx: the conversational surface never shows a raw failure screen.
	resp := h.usecase.HandleMessage(ctx, org, &req)
	response.Assistant(w, http.StatusOK, resp)
}
