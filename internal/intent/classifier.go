// Package intent short-circuits greetings and small talk before the
// expensive generation step. It is a heuristic: false negatives fall through
// to full generation (a cost, not a bug), false positives yield a canned
// reply instead of a query.
package intent

import "strings"

// Messages shorter than this with no query keyword are treated as small talk.
const minQueryLength = 12

var greetingLexicon = []string{
	"bonjour",
	"bonsoir",
	"salut",
	"coucou",
	"hello",
	"hi",
	"merci",
	"thanks",
	"au revoir",
	"bonne journée",
	"bonne soirée",
	"à bientôt",
	"a bientot",
	"ça va",
	"ca va",
}

var queryKeywords = []string{
	"prospect",
	"client",
	"contact",
	"activité",
	"activite",
	"rendez-vous",
	"rdv",
	"montre",
	"affiche",
	"liste",
	"donne",
	"cherche",
	"trouve",
	"combien",
	"quel",
	"qui",
	"chaud",
	"tiède",
	"tiede",
	"froid",
	"assigné",
	"assigne",
	"email",
	"téléphone",
	"telephone",
	"montant",
	"source",
}

// IsSmallTalk reports whether the trimmed message is a greeting, a courtesy
// or a too-short off-topic utterance that should not reach the generator.
func IsSmallTalk(message string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return true
	}

	for _, greeting := range greetingLexicon {
		if msg == greeting || strings.HasPrefix(msg, greeting+" ") || strings.HasPrefix(msg, greeting+",") || strings.HasPrefix(msg, greeting+"!") {
			return true
		}
	}

	if len([]rune(msg)) < minQueryLength && !containsQueryKeyword(msg) {
		return true
	}

	return false
}

func containsQueryKeyword(msg string) bool {
	for _, kw := range queryKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

const (
	replyGreeting = "Bonjour ! Je suis votre assistant Ultron. Posez-moi une question sur vos prospects, par exemple : « Montre-moi les prospects chauds »."
	replyThanks   = "Avec plaisir ! N'hésitez pas si vous avez une autre question sur vos prospects ou vos contacts."
	replyFarewell = "Au revoir, et bonne journée ! Je reste disponible pour vos questions sur votre pipeline."
	replyGeneric  = "Je peux répondre à des questions sur vos données : prospects, contacts, activités. Essayez par exemple : « Combien de prospects ne sont pas assignés ? »"
)

// CannedReply selects a fixed template for a message already classified as
// small talk.
func CannedReply(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))

	switch {
	case strings.Contains(msg, "merci") || strings.Contains(msg, "thanks"):
		return replyThanks
	case strings.Contains(msg, "au revoir") || strings.Contains(msg, "bientôt") || strings.Contains(msg, "bientot") || strings.Contains(msg, "bonne journée") || strings.Contains(msg, "bonne soirée"):
		return replyFarewell
	case strings.Contains(msg, "bonjour") || strings.Contains(msg, "bonsoir") || strings.Contains(msg, "salut") || strings.Contains(msg, "coucou") || strings.Contains(msg, "hello") || strings.HasPrefix(msg, "hi"):
		return replyGreeting
	default:
		return replyGeneric
	}
}
