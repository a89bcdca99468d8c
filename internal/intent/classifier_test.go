package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSmallTalkGreetings(t *testing.T) {
	messages := []string{
		"bonjour",
		"Bonjour",
		"bonjour !",
		"salut, comment ça va ?",
		"merci",
		"Merci beaucoup",
		"au revoir",
		"hello",
	}
	for _, msg := range messages {
		assert.True(t, IsSmallTalk(msg), "should be small talk: %q", msg)
	}
}

func TestIsSmallTalkShortOffTopicMessages(t *testing.T) {
	assert.True(t, IsSmallTalk("ok super"))
	assert.True(t, IsSmallTalk("d'accord"))
	assert.True(t, IsSmallTalk(""))
	assert.True(t, IsSmallTalk("   "))
}

func TestIsSmallTalkRealQuestionsFallThrough(t *testing.T) {
	messages := []string{
		"Montre moi les prospects chauds",
		"Combien de prospects ne sont pas assignés ?",
		"liste rdv", // short but carries a query keyword
		"Quels sont mes plus gros prospects par montant ?",
	}
	for _, msg := range messages {
		assert.False(t, IsSmallTalk(msg), "should not be small talk: %q", msg)
	}
}

func TestCannedReplySelectsTemplates(t *testing.T) {
	assert.Equal(t, replyGreeting, CannedReply("bonjour"))
	assert.Equal(t, replyThanks, CannedReply("merci beaucoup"))
	assert.Equal(t, replyFarewell, CannedReply("au revoir"))
	assert.Equal(t, replyGeneric, CannedReply("ok"))
}

func TestCannedReplyNeverEmpty(t *testing.T) {
	for _, msg := range []string{"bonjour", "merci", "au revoir", "", "???"} {
		assert.NotEmpty(t, CannedReply(msg))
	}
}
