package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a deterministic stand-in for the generation model, used
// in local development and tests (ENABLE_MOCKS=true).
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GenerateQuery(ctx context.Context, message string, _ []entity.ConversationTurn) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating candidate query")

	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "combien") && (strings.Contains(msg, "assigné") || strings.Contains(msg, "assigne")):
		return "SELECT COUNT(*) AS count FROM prospects WHERE organization_id = :org_id AND assigned_to IS NULL", nil
	case strings.Contains(msg, "combien"):
		return "SELECT COUNT(*) AS count FROM prospects WHERE organization_id = :org_id", nil
	case strings.Contains(msg, "chaud"):
		return "SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'chaud' ORDER BY created_at DESC LIMIT 100", nil
	case strings.Contains(msg, "froid"):
		return "SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'froid' ORDER BY created_at DESC LIMIT 100", nil
	case strings.Contains(msg, "tiède") || strings.Contains(msg, "tiede"):
		return "SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'tiede' ORDER BY created_at DESC LIMIT 100", nil
	case strings.Contains(msg, "rendez-vous") || strings.Contains(msg, "rdv"):
		return "SELECT * FROM contacts WHERE organization_id = :org_id AND type = 'rendez-vous' ORDER BY date_contact DESC LIMIT 100", nil
	default:
		return "SELECT * FROM prospects WHERE organization_id = :org_id ORDER BY created_at DESC LIMIT 100", nil
	}
}
