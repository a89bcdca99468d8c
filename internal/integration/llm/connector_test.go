package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ultron-crm/assistant-backend/internal/config"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"go.uber.org/zap"
)

func newTestConnector(t *testing.T, handler http.HandlerFunc) *Connector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LLMConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:                   srv.URL,
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           time.Second,
			KeepAlive:             time.Second,
			IdleConnTimeout:       time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		ChatCompletionsEndpoint: "/v1/chat/completions",
		Model:                   "test-model",
		MaxTokens:               256,
		HistoryTurns:            4,
	}
	return NewConnector(cfg, zap.NewNop())
}

func completionHandler(t *testing.T, content string, captured *entity.ChatCompletionRequest) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		resp := entity.ChatCompletionResponse{Choices: []entity.ChatChoice{
			{Message: entity.ChatMessage{Role: "assistant", Content: content}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestGenerateQueryReturnsCandidate(t *testing.T) {
	var captured entity.ChatCompletionRequest
	connector := newTestConnector(t, completionHandler(t,
		"SELECT * FROM prospects WHERE organization_id = :org_id LIMIT 100", &captured))

	query, err := connector.GenerateQuery(context.Background(), "Montre moi les prospects chauds", nil)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM prospects WHERE organization_id = :org_id LIMIT 100", query)
	assert.Equal(t, "test-model", captured.Model)
	require.GreaterOrEqual(t, len(captured.Messages), 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[0].Content, ":org_id")
	last := captured.Messages[len(captured.Messages)-1]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "Montre moi les prospects chauds", last.Content)
}

func TestGenerateQueryStripsMarkdownFences(t *testing.T) {
	connector := newTestConnector(t, completionHandler(t,
		"```sql\nSELECT * FROM contacts WHERE organization_id = :org_id\n```", nil))

	query, err := connector.GenerateQuery(context.Background(), "liste des contacts", nil)

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM contacts WHERE organization_id = :org_id", query)
}

func TestGenerateQueryRejectsNonSelectOutput(t *testing.T) {
	connector := newTestConnector(t, completionHandler(t,
		"Je ne peux pas répondre à cette question.", nil))

	_, err := connector.GenerateQuery(context.Background(), "Montre moi les prospects chauds", nil)

	assert.True(t, errors.Is(err, entity.ErrInvalidQueryShape))
}

func TestGenerateQueryNoChoices(t *testing.T) {
	connector := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := connector.GenerateQuery(context.Background(), "Montre moi les prospects chauds", nil)

	assert.Error(t, err)
}

func TestGenerateQueryUpstreamFailure(t *testing.T) {
	connector := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})

	_, err := connector.GenerateQuery(context.Background(), "Montre moi les prospects chauds", nil)

	assert.Error(t, err)
}

func TestGenerateQueryTrimsHistoryToConfiguredTurns(t *testing.T) {
	var captured entity.ChatCompletionRequest
	connector := newTestConnector(t, completionHandler(t,
		"SELECT * FROM prospects WHERE organization_id = :org_id", &captured))

	history := make([]entity.ConversationTurn, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, entity.ConversationTurn{Role: "user", Content: "question"})
	}
	_, err := connector.GenerateQuery(context.Background(), "et maintenant ?", history)

	require.NoError(t, err)
	// system + 4 kept turns + current question
	assert.Len(t, captured.Messages, 6)
}
