package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ultron-crm/assistant-backend/internal/entity"
)

func TestFormatEmptyResult(t *testing.T) {
	result := Format(nil)

	assert.Equal(t, entity.DataTypeEmpty, result.DataType)
	assert.Equal(t, "Je n'ai trouvé aucun résultat correspondant à votre demande.", result.Summary)
}

func TestFormatCountResult(t *testing.T) {
	result := Format([]map[string]any{{"count": int64(7)}})

	assert.Equal(t, entity.DataTypeCount, result.DataType)
	assert.Equal(t, "Résultat : 7.", result.Summary)
}

func TestFormatSingleRecord(t *testing.T) {
	result := Format([]map[string]any{{"nom": "Durand", "statut": "chaud"}})

	assert.Equal(t, entity.DataTypeSingle, result.DataType)
	assert.NotEmpty(t, result.Summary)
}

func TestFormatTable(t *testing.T) {
	rows := []map[string]any{
		{"nom": "Durand"},
		{"nom": "Martin"},
		{"nom": "Petit"},
	}

	result := Format(rows)

	assert.Equal(t, entity.DataTypeTable, result.DataType)
	assert.Equal(t, "J'ai trouvé 3 résultats correspondant à votre demande.", result.Summary)
}

func TestClassifySingleColumnNonAggregateIsSingle(t *testing.T) {
	assert.Equal(t, entity.DataTypeSingle, Classify([]map[string]any{{"nom": "Durand"}}))
}

func TestClassifyIsStableAcrossRepeatedCalls(t *testing.T) {
	rows := []map[string]any{
		{"nom": "Durand", "statut": "chaud"},
		{"nom": "Martin", "statut": "froid"},
	}

	first := Classify(rows)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(rows))
	}
}
