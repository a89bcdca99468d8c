package assistant

import (
	"context"

	"github.com/ultron-crm/assistant-backend/internal/entity"
)

// LLMConnector is the hosted generation model: one request/response text
// completion call per pipeline run.
type LLMConnector interface {
	GenerateQuery(ctx context.Context, message string, history []entity.ConversationTurn) (string, error)
}

// QueryExecutor runs validated queries: Execute is the generic entry point,
// ExecuteIntent the constrained structured fallback.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, orgID string) ([]map[string]any, error)
	ExecuteIntent(ctx context.Context, intent entity.QueryIntent, orgID string) ([]map[string]any, error)
}
