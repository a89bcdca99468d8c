package sqlpolicy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteInjectsTenantFilterWithoutWhere(t *testing.T) {
	got := Rewrite("SELECT * FROM prospects", 100)

	assert.Equal(t, "SELECT * FROM prospects WHERE organization_id = :org_id LIMIT 100", got)
}

func TestRewriteInjectsTenantFilterIntoExistingWhere(t *testing.T) {
	got := Rewrite("SELECT * FROM prospects WHERE statut = 'chaud'", 100)

	assert.Equal(t, 1, strings.Count(got, "organization_id = :org_id"))
	assert.Contains(t, got, "WHERE organization_id = :org_id AND statut = 'chaud'")
}

func TestRewriteInjectsTenantFilterBeforeOrderBy(t *testing.T) {
	got := Rewrite("SELECT * FROM prospects ORDER BY created_at DESC", 100)

	assert.Contains(t, got, "WHERE organization_id = :org_id ORDER BY created_at DESC")
}

func TestRewriteIsIdempotent(t *testing.T) {
	first := Rewrite("SELECT * FROM prospects WHERE statut = 'chaud'", 100)
	second := Rewrite(first, 100)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(second, "organization_id = :org_id"))
}

func TestRewriteKeepsExistingTenantFilter(t *testing.T) {
	query := "SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'froid' LIMIT 10"

	got := Rewrite(query, 100)

	assert.Equal(t, query, got)
}

func TestRewriteStripsTrailingSemicolon(t *testing.T) {
	got := Rewrite("SELECT * FROM prospects;", 100)

	assert.NotContains(t, got, ";")
}

func TestRewriteKeepsExistingLimit(t *testing.T) {
	got := Rewrite("SELECT * FROM prospects LIMIT 5", 100)

	assert.Equal(t, 1, strings.Count(strings.ToUpper(got), "LIMIT"))
	assert.Contains(t, got, "LIMIT 5")
}
