// Package formatter turns execution rows into the assistant's answer: a
// deterministic dataType classification for the rendering layer plus a
// French summary. Classification depends only on the rows, so repeated calls
// with identical rows are stable.
package formatter

import (
	"fmt"
	"strings"

	"github.com/ultron-crm/assistant-backend/internal/entity"
)

// Column names treated as aggregates when they are the only column returned.
var aggregateColumns = map[string]struct{}{
	"count": {},
	"total": {},
	"sum":   {},
	"avg":   {},
	"min":   {},
	"max":   {},
}

// Result is the formatted terminal payload for a successful execution.
type Result struct {
	Summary  string
	DataType entity.DataType
}

// Classify maps the result rows to a dataType variant.
func Classify(rows []map[string]any) entity.DataType {
	switch {
	case len(rows) == 0:
		return entity.DataTypeEmpty
	case len(rows) == 1 && isAggregateRow(rows[0]):
		return entity.DataTypeCount
	case len(rows) == 1:
		return entity.DataTypeSingle
	default:
		return entity.DataTypeTable
	}
}

func isAggregateRow(row map[string]any) bool {
	if len(row) != 1 {
		return false
	}
	for col := range row {
		if _, ok := aggregateColumns[strings.ToLower(col)]; ok {
			return true
		}
	}
	return false
}

// Format builds the summary and classification for the given rows.
func Format(rows []map[string]any) Result {
	dataType := Classify(rows)

	var summary string
	switch dataType {
	case entity.DataTypeEmpty:
		summary = "Je n'ai trouvé aucun résultat correspondant à votre demande."
	case entity.DataTypeCount:
		summary = fmt.Sprintf("Résultat : %v.", aggregateValue(rows[0]))
	case entity.DataTypeSingle:
		summary = "J'ai trouvé 1 résultat correspondant à votre demande."
	default:
		summary = fmt.Sprintf("J'ai trouvé %d résultats correspondant à votre demande.", len(rows))
	}

	return Result{Summary: summary, DataType: dataType}
}

func aggregateValue(row map[string]any) any {
	for _, v := range row {
		return v
	}
	return nil
}
