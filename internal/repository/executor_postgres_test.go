package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"go.uber.org/zap"
)

const testOrgID = "11111111-2222-3333-4444-555555555555"

// The guards below all reject before any database round trip, so the
// executor is constructed without a pool.

func TestExecuteIntentRejectsUnknownTable(t *testing.T) {
	executor := NewQueryExecutorPostgres(nil, 100, zap.NewNop())

	_, err := executor.ExecuteIntent(context.Background(), entity.QueryIntent{Table: "pg_catalog"}, testOrgID)

	assert.True(t, errors.Is(err, entity.ErrUnknownIntentTable))
}

func TestExecuteIntentRejectsMalformedOrganizationID(t *testing.T) {
	executor := NewQueryExecutorPostgres(nil, 100, zap.NewNop())

	_, err := executor.ExecuteIntent(context.Background(), entity.QueryIntent{Table: "prospects"}, "not-a-uuid")

	assert.Error(t, err)
}

func TestExecuteIntentRejectsInvalidStatut(t *testing.T) {
	executor := NewQueryExecutorPostgres(nil, 100, zap.NewNop())

	statut := entity.ProspectStatut("brulant")
	_, err := executor.ExecuteIntent(context.Background(), entity.QueryIntent{Table: "prospects", Statut: &statut}, testOrgID)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "brulant")
}

func TestExecuteRejectsMalformedOrganizationID(t *testing.T) {
	executor := NewQueryExecutorPostgres(nil, 100, zap.NewNop())

	_, err := executor.Execute(context.Background(), "SELECT 1", "not-a-uuid")

	assert.Error(t, err)
}
