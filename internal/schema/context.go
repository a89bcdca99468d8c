// Package schema supplies the static description of the queryable CRM
// entities used to ground SQL generation. It is a pure constant: the
// generator embeds it in the system prompt and the validator uses the table
// list for its soft known-entity check.
package schema

// TenantColumn is the column every executed query must filter on.
const TenantColumn = "organization_id"

// OrgPlaceholder is the named placeholder the executor substitutes
// server-side with the caller's organization id. Queries never carry the raw
// tenant value in their text.
const OrgPlaceholder = ":org_id"

var knownTables = []string{"prospects", "contacts", "activites"}

// KnownTables returns the entities the assistant is allowed to reference.
func KnownTables() []string {
	out := make([]string, len(knownTables))
	copy(out, knownTables)
	return out
}

const contextText = `Tables interrogeables (PostgreSQL) :

prospects : les prospects du cabinet de gestion de patrimoine.
  - id (uuid)
  - organization_id (uuid) : identifiant du cabinet, TOUJOURS filtrer avec organization_id = :org_id
  - nom, prenom (text)
  - email, telephone (text)
  - statut (text) : qualification du prospect, valeurs autorisées 'chaud', 'tiede', 'froid'
  - assigned_to (uuid, nullable) : conseiller assigné, NULL = non assigné
  - montant_potentiel (numeric) : encours potentiel en euros
  - source (text) : origine du prospect (site, recommandation, salon, ...)
  - created_at, updated_at (timestamptz)

contacts : les prises de contact avec un prospect.
  - id (uuid), organization_id (uuid), prospect_id (uuid)
  - type (text) : 'appel', 'email', 'rendez-vous'
  - notes (text)
  - date_contact (timestamptz)

activites : le journal d'activité du cabinet.
  - id (uuid), organization_id (uuid), prospect_id (uuid)
  - type (text), description (text)
  - created_at (timestamptz)

Correspondances de formulation :
  "prospects chauds"        -> statut = 'chaud'
  "prospects tièdes"        -> statut = 'tiede'
  "prospects froids"        -> statut = 'froid'
  "non assignés"            -> assigned_to IS NULL
  "les plus récents"        -> ORDER BY created_at DESC
  "combien de ..."          -> SELECT COUNT(*) AS count
  "gros prospects"          -> ORDER BY montant_potentiel DESC

Exemples :
  Question : "Montre moi les prospects chauds"
  SQL : SELECT * FROM prospects WHERE organization_id = :org_id AND statut = 'chaud' ORDER BY created_at DESC LIMIT 100

  Question : "Combien de prospects ne sont pas assignés ?"
  SQL : SELECT COUNT(*) AS count FROM prospects WHERE organization_id = :org_id AND assigned_to IS NULL

  Question : "Liste les rendez-vous de la semaine"
  SQL : SELECT * FROM contacts WHERE organization_id = :org_id AND type = 'rendez-vous' AND date_contact >= now() - interval '7 days' ORDER BY date_contact DESC LIMIT 100`

// Context returns the grounding text embedded in the generation prompt.
func Context() string {
	return contextText
}
