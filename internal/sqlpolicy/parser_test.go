package sqlpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ultron-crm/assistant-backend/internal/entity"
)

func TestParseIntentRecognizedPredicates(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'chaud' AND assigned_to IS NULL ORDER BY created_at DESC LIMIT 50")

	assert.Equal(t, "prospects", intent.Table)
	require.NotNil(t, intent.Statut)
	assert.Equal(t, entity.ProspectStatutChaud, *intent.Statut)
	assert.True(t, intent.UnassignedOnly)
	assert.Equal(t, "created_at", intent.OrderBy)
	assert.True(t, intent.OrderDesc)
	assert.Equal(t, 50, intent.Limit)
	assert.Empty(t, intent.DroppedPredicates)
}

func TestParseIntentWithoutWhereBody(t *testing.T) {
	intent := ParseIntent("SELECT * FROM contacts")

	assert.Equal(t, "contacts", intent.Table)
	assert.Nil(t, intent.Statut)
	assert.False(t, intent.UnassignedOnly)
	assert.Zero(t, intent.Limit)
}

func TestParseIntentDropsUnrecognizedPredicates(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'tiede' AND montant_potentiel > 100000 LIMIT 100")

	require.NotNil(t, intent.Statut)
	assert.Equal(t, entity.ProspectStatutTiede, *intent.Statut)
	// Unsupported predicates are dropped, widening the result set for that
	// request; the parser records them so callers can log the gap.
	assert.Equal(t, []string{"montant_potentiel > 100000"}, intent.DroppedPredicates)
}

func TestParseIntentTenantFilterIsNotADroppedPredicate(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id LIMIT 100")

	assert.Empty(t, intent.DroppedPredicates)
}

func TestParseIntentDropsNegatedPredicates(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id AND NOT statut = 'chaud' LIMIT 100")

	// A negated filter is outside the supported subset; narrowing it to the
	// plain equality would invert the result set instead of widening it.
	assert.Nil(t, intent.Statut)
	assert.Equal(t, []string{"NOT statut = 'chaud'"}, intent.DroppedPredicates)
}

func TestParseIntentDropsOrGroupedPredicates(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id AND (statut = 'chaud' OR statut = 'tiede') LIMIT 100")

	assert.Nil(t, intent.Statut)
	assert.Equal(t, []string{"(statut = 'chaud' OR statut = 'tiede')"}, intent.DroppedPredicates)
}

func TestParseIntentDropsPredicatesWithTrailingConditions(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id AND assigned_to IS NULL OR statut = 'froid' LIMIT 100")

	assert.False(t, intent.UnassignedOnly)
	assert.Nil(t, intent.Statut)
	assert.Equal(t, []string{"assigned_to IS NULL OR statut = 'froid'"}, intent.DroppedPredicates)
}

func TestParseIntentDefaultSortDirectionIsAscending(t *testing.T) {
	intent := ParseIntent("SELECT * FROM prospects WHERE organization_id = :org_id ORDER BY nom LIMIT 10")

	assert.Equal(t, "nom", intent.OrderBy)
	assert.False(t, intent.OrderDesc)
}
