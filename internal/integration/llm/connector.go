package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/ultron-crm/assistant-backend/internal/config"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/integration/common"
	"github.com/ultron-crm/assistant-backend/internal/schema"
	pkghttp "github.com/ultron-crm/assistant-backend/pkg/http"
	"go.uber.org/zap"
)

const systemPromptTemplate = `Tu es un générateur SQL pour le CRM Ultron (gestion de patrimoine).
Tu traduis la question de l'utilisateur en UNE requête SQL PostgreSQL de lecture seule.

Règles :
- Réponds UNIQUEMENT avec la requête SQL, sans markdown ni explication.
- La requête commence par SELECT.
- Filtre TOUJOURS avec organization_id = :org_id (ne remplace jamais ce paramètre).
- Ajoute LIMIT 100 sauf si l'utilisateur demande autre chose.
- N'utilise que les tables décrites ci-dessous.

%s`

type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GenerateQuery calls the hosted generation model once, non-streaming, with a
// capped max_tokens, and returns the candidate query text. Output that
// does not start with SELECT is an invalid-shape error; it is not retried.
func (c *Connector) GenerateQuery(ctx context.Context, message string, history []entity.ConversationTurn) (string, error) {
	ctxzap.Info(ctx, "generating candidate query via LLM service")

	req := entity.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    c.buildMessages(message, history),
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatCompletionsEndpoint, &req, &resp)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("invalid chat completion response: no choices")
	}

	candidate := stripMarkdownFences(resp.Choices[0].Message.Content)
	if !strings.HasPrefix(strings.ToUpper(candidate), "SELECT") {
		ctxzap.Warn(ctx, "model output does not start with SELECT", zap.Int("output_length", len(candidate)))
		return "", entity.ErrInvalidQueryShape
	}

	ctxzap.Info(ctx, "candidate query generated", zap.Int("query_length", len(candidate)))

	return candidate, nil
}

// buildMessages assembles the prompt: schema grounding, the last N history
// turns, then the user question.
func (c *Connector) buildMessages(message string, history []entity.ConversationTurn) []entity.ChatMessage {
	messages := []entity.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(systemPromptTemplate, schema.Context())},
	}

	turns := history
	if max := c.config.HistoryTurns; max > 0 && len(turns) > max {
		turns = turns[len(turns)-max:]
	}
	for _, turn := range turns {
		role := turn.Role
		if role != "user" && role != "assistant" {
			role = "user"
		}
		messages = append(messages, entity.ChatMessage{Role: role, Content: turn.Content})
	}

	return append(messages, entity.ChatMessage{Role: "user", Content: message})
}

func stripMarkdownFences(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```sql")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
	}
	return strings.TrimSpace(trimmed)
}
