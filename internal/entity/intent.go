package entity

// QueryIntent is the parsed structure of a candidate query, derived once by
// the pipeline and consumed by the constrained fallback executor. It covers
// only the narrow pattern subset the fallback supports; predicates outside
// that subset end up in DroppedPredicates.
type QueryIntent struct {
	Table          string
	Statut         *ProspectStatut
	UnassignedOnly bool
	OrderBy        string
	OrderDesc      bool
	Limit          int

	// DroppedPredicates holds WHERE fragments the fallback does not
	// understand. They are skipped, which widens the result set for that
	// request; callers log them so the gap stays visible.
	DroppedPredicates []string
}
