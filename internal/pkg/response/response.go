package response

import (
	"encoding/json"
	"net/http"

	"github.com/ultron-crm/assistant-backend/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Assistant writes an assistant envelope with the given status.
func Assistant(w http.ResponseWriter, status int, resp *entity.AssistantResponse) {
	JSON(w, status, resp)
}

// AssistantError writes an assistant envelope carrying only a user-facing
// message and an error code.
func AssistantError(w http.ResponseWriter, status int, code entity.ErrorCode, message string) {
	JSON(w, status, &entity.AssistantResponse{
		Response: message,
		Error:    code,
	})
}
