package sqlpolicy

import (
	"regexp"
	"strings"

	"github.com/ultron-crm/assistant-backend/internal/schema"
)

// RuleKind tags how a rule's pattern is interpreted.
type RuleKind int

const (
	// KindRequire marks a pattern the query must match.
	KindRequire RuleKind = iota
	// KindDeny marks a pattern the query must not match.
	KindDeny
)

// Rule is one policy entry. Rules are data, not scattered regex calls:
// adding a constraint means appending to the default rule set.
type Rule struct {
	Name    string
	Kind    RuleKind
	Pattern *regexp.Regexp
	Reason  string
}

// Outcome is the validation verdict. Reason is user-facing and is only set
// when Valid is false.
type Outcome struct {
	Valid  bool
	Reason string
}

// Policy evaluates a rewritten query against an ordered rule set. The first
// failing rule decides the reason surfaced to the user.
type Policy struct {
	rules       []Rule
	knownTables map[string]struct{}
}

func defaultRules() []Rule {
	return []Rule{
		{
			Name:    "read-only-statement",
			Kind:    KindRequire,
			Pattern: regexp.MustCompile(`(?i)^\s*select\b`),
			Reason:  "seules les requêtes de lecture (SELECT) sont autorisées",
		},
		{
			Name:    "tenant-filter",
			Kind:    KindRequire,
			Pattern: regexp.MustCompile(schema.TenantColumn + `\s*=\s*` + schema.OrgPlaceholder),
			Reason:  "la requête doit être restreinte à votre organisation",
		},
		{
			Name:    "no-write-keywords",
			Kind:    KindDeny,
			Pattern: regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|truncate|create|grant|revoke)\b`),
			Reason:  "les opérations de modification de données sont interdites",
		},
		{
			Name:    "no-statement-chaining",
			Kind:    KindDeny,
			Pattern: regexp.MustCompile(`;`),
			Reason:  "une seule instruction est autorisée par requête",
		},
		{
			Name:    "no-sql-comments",
			Kind:    KindDeny,
			Pattern: regexp.MustCompile(`--|/\*`),
			Reason:  "les commentaires SQL sont interdits",
		},
	}
}

// NewPolicy builds the default policy over the schema's queryable tables.
func NewPolicy() *Policy {
	known := make(map[string]struct{})
	for _, t := range schema.KnownTables() {
		known[t] = struct{}{}
	}
	return &Policy{
		rules:       defaultRules(),
		knownTables: known,
	}
}

// Validate checks the rewritten query against every rule, in order.
func (p *Policy) Validate(query string) Outcome {
	for _, rule := range p.rules {
		matched := rule.Pattern.MatchString(query)
		if (rule.Kind == KindRequire && !matched) || (rule.Kind == KindDeny && matched) {
			return Outcome{Valid: false, Reason: rule.Reason}
		}
	}
	return Outcome{Valid: true}
}

var tableRefRe = regexp.MustCompile(`(?i)\b(?:from|join)\s+([a-zA-Z_][a-zA-Z0-9_]*)`)

// UnknownTables lists referenced tables outside the queryable set. This is a
// soft check: callers log the result but do not block the query.
func (p *Policy) UnknownTables(query string) []string {
	var unknown []string
	for _, match := range tableRefRe.FindAllStringSubmatch(query, -1) {
		table := strings.ToLower(match[1])
		if _, ok := p.knownTables[table]; !ok {
			unknown = append(unknown, table)
		}
	}
	return unknown
}
