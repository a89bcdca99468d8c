package sqlpolicy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/schema"
)

var (
	fromRe       = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z_][a-zA-Z0-9_]*)`)
	limitValRe   = regexp.MustCompile(`(?i)\blimit\s+(\d+)`)
	orderRe      = regexp.MustCompile(`(?i)\border\s+by\s+([a-zA-Z_][a-zA-Z0-9_]*)(?:\s+(asc|desc))?`)
	// Predicate patterns are anchored to the whole fragment: a fragment
	// that merely contains a recognized shape (negation, OR grouping) is
	// outside the supported subset and must be dropped, never narrowed.
	statutRe     = regexp.MustCompile(`(?i)^statut\s*=\s*'(chaud|tiede|froid)'$`)
	unassignedRe = regexp.MustCompile(`(?i)^assigned_to\s+is\s+null$`)
	tenantPredRe = regexp.MustCompile(`(?i)^` + schema.TenantColumn + `\s*=\s*` + schema.OrgPlaceholder + `$`)
	whereBodyRe  = regexp.MustCompile(`(?is)\bwhere\b(.*?)(?:\border\s+by\b|\bgroup\s+by\b|\blimit\b|$)`)
	andSplitRe   = regexp.MustCompile(`(?i)\s+and\s+`)
)

// ParseIntent derives the structured intent of a rewritten query, once, for
// the constrained fallback executor. Only the fallback's supported pattern
// subset is recognized; everything else lands in DroppedPredicates.
func ParseIntent(query string) entity.QueryIntent {
	intent := entity.QueryIntent{}

	if m := fromRe.FindStringSubmatch(query); m != nil {
		intent.Table = strings.ToLower(m[1])
	}
	if m := limitValRe.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			intent.Limit = n
		}
	}
	if m := orderRe.FindStringSubmatch(query); m != nil {
		intent.OrderBy = strings.ToLower(m[1])
		intent.OrderDesc = strings.EqualFold(m[2], "desc")
	}

	body := whereBodyRe.FindStringSubmatch(query)
	if body == nil {
		return intent
	}

	for _, predicate := range andSplitRe.Split(body[1], -1) {
		predicate = strings.TrimSpace(predicate)
		if predicate == "" {
			continue
		}
		switch {
		case tenantPredRe.MatchString(predicate):
			// The executor always applies the tenant filter itself.
		case statutRe.MatchString(predicate):
			statut := entity.ProspectStatut(strings.ToLower(statutRe.FindStringSubmatch(predicate)[1]))
			intent.Statut = &statut
		case unassignedRe.MatchString(predicate):
			intent.UnassignedOnly = true
		default:
			intent.DroppedPredicates = append(intent.DroppedPredicates, predicate)
		}
	}

	return intent
}
