package entity

import "time"

// Organization is the tenant: an advisory firm whose data must never be
// visible to another organization's queries.
type Organization struct {
	ID        string
	Nom       string
	APIKey    string
	CreatedAt time.Time
}

// ProspectStatut is the tri-state qualification of a prospect.
type ProspectStatut string

const (
	ProspectStatutChaud ProspectStatut = "chaud"
	ProspectStatutTiede ProspectStatut = "tiede"
	ProspectStatutFroid ProspectStatut = "froid"
)

func (s ProspectStatut) IsValid() bool {
	switch s {
	case ProspectStatutChaud, ProspectStatutTiede, ProspectStatutFroid:
		return true
	default:
		return false
	}
}
