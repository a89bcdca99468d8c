// Package sqlpolicy enforces the read-only, tenant-scoped query policy on
// candidate SQL produced by the generation stage. Nothing here is a parser:
// the policy is a best-effort textual guard, the hard isolation boundary
// stays in the data layer.
package sqlpolicy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ultron-crm/assistant-backend/internal/schema"
)

var (
	whereRe = regexp.MustCompile(`(?i)\bwhere\b`)
	tailRe  = regexp.MustCompile(`(?i)\b(group\s+by|order\s+by|limit|offset)\b`)
	limitRe = regexp.MustCompile(`(?i)\blimit\s+\d+`)
)

// Rewrite normalizes a candidate query: strips a trailing semicolon, injects
// the tenant filter when the placeholder is absent, and appends a bounded
// LIMIT when none is present. It runs unconditionally, before validation,
// and is idempotent.
func Rewrite(query string, defaultLimit int) string {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	q = strings.TrimSpace(q)
	q = injectTenantFilter(q)
	return ensureLimit(q, defaultLimit)
}

// injectTenantFilter guarantees an equality clause on the tenant column.
// A query already carrying the placeholder is returned unchanged, so
// rewriting a rewritten query never duplicates the clause.
func injectTenantFilter(q string) string {
	if strings.Contains(q, schema.OrgPlaceholder) {
		return q
	}

	clause := schema.TenantColumn + " = " + schema.OrgPlaceholder
	if loc := whereRe.FindStringIndex(q); loc != nil {
		return q[:loc[1]] + " " + clause + " AND" + q[loc[1]:]
	}
	if loc := tailRe.FindStringIndex(q); loc != nil {
		return q[:loc[0]] + "WHERE " + clause + " " + q[loc[0]:]
	}
	return q + " WHERE " + clause
}

func ensureLimit(q string, defaultLimit int) string {
	if defaultLimit <= 0 || limitRe.MatchString(q) {
		return q
	}
	return q + " LIMIT " + strconv.Itoa(defaultLimit)
}
