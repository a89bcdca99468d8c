package sqlpolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAcceptsReadOnlyTenantScopedQuery(t *testing.T) {
	policy := NewPolicy()

	outcome := policy.Validate("SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'chaud' LIMIT 100")

	assert.True(t, outcome.Valid)
	assert.Empty(t, outcome.Reason)
}

func TestValidateRejectsWriteKeywords(t *testing.T) {
	policy := NewPolicy()

	queries := []string{
		"SELECT * FROM prospects WHERE organization_id = :org_id; DELETE FROM prospects",
		"SELECT * FROM prospects WHERE organization_id = :org_id AND id IN (SELECT id FROM prospects) UNION SELECT * FROM prospects WHERE TRUE; DROP TABLE prospects",
		"SELECT * FROM prospects WHERE organization_id = :org_id AND nom = (INSERT INTO prospects DEFAULT VALUES RETURNING nom)",
		"select * from prospects where organization_id = :org_id and Update_flag = true AND 1=1 aNd UpDaTe prospects set nom='x'",
	}
	for _, q := range queries {
		outcome := policy.Validate(q)
		assert.False(t, outcome.Valid, "query should be rejected: %s", q)
		assert.NotEmpty(t, outcome.Reason)
	}
}

func TestValidateRejectsNonSelectStatement(t *testing.T) {
	policy := NewPolicy()

	outcome := policy.Validate("WITH x AS (SELECT 1) SELECT * FROM x WHERE organization_id = :org_id")

	assert.False(t, outcome.Valid)
}

func TestValidateRejectsMissingTenantFilter(t *testing.T) {
	policy := NewPolicy()

	outcome := policy.Validate("SELECT * FROM prospects LIMIT 100")

	assert.False(t, outcome.Valid)
	assert.Equal(t, "la requête doit être restreinte à votre organisation", outcome.Reason)
}

func TestValidateRejectsStatementChaining(t *testing.T) {
	policy := NewPolicy()

	outcome := policy.Validate("SELECT 1 FROM prospects WHERE organization_id = :org_id; SELECT 2")

	assert.False(t, outcome.Valid)
}

func TestValidateRejectsSQLComments(t *testing.T) {
	policy := NewPolicy()

	outcome := policy.Validate("SELECT * FROM prospects WHERE organization_id = :org_id -- hidden")

	assert.False(t, outcome.Valid)
}

func TestUnknownTablesIsSoftCheck(t *testing.T) {
	policy := NewPolicy()
	query := "SELECT * FROM comptes WHERE organization_id = :org_id LIMIT 10"

	// Still valid: unknown entity names are logged, not blocked.
	assert.True(t, policy.Validate(query).Valid)
	assert.Equal(t, []string{"comptes"}, policy.UnknownTables(query))
}

func TestUnknownTablesEmptyForKnownTables(t *testing.T) {
	policy := NewPolicy()

	unknown := policy.UnknownTables("SELECT * FROM prospects JOIN contacts ON contacts.prospect_id = prospects.id WHERE organization_id = :org_id")

	assert.Empty(t, unknown)
}
