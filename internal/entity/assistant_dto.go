package entity

// ErrorCode classifies a terminal pipeline failure for the client.
type ErrorCode string

const (
	ErrorCodeAuth          ErrorCode = "AUTH_ERROR"
	ErrorCodeInvalidInput  ErrorCode = "INVALID_REQUEST"
	ErrorCodeSQLGeneration ErrorCode = "SQL_GENERATION_ERROR"
	ErrorCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrorCodeExecution     ErrorCode = "EXECUTION_ERROR"
	ErrorCodeUnknown       ErrorCode = "UNKNOWN_ERROR"
)

// DataType classifies the result shape for the caller's rendering layer.
type DataType string

const (
	DataTypeSingle DataType = "single"
	DataTypeTable  DataType = "table"
	DataTypeCount  DataType = "count"
	DataTypeEmpty  DataType = "empty"
)

// ConversationTurn is one prior exchange, used only as prompt grounding.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type AssistantRequest struct {
	Message             string             `json:"message"`
	ConversationHistory []ConversationTurn `json:"conversationHistory,omitempty"`
}

// AssistantResponse is the terminal artifact of a request. Stage failures are
// still a 200 response with an error code and a user-facing apology; raw
// internal detail never crosses this boundary.
type AssistantResponse struct {
	Response string           `json:"response"`
	Query    string           `json:"query,omitempty"`
	Data     []map[string]any `json:"data,omitempty"`
	DataType DataType         `json:"dataType,omitempty"`
	Error    ErrorCode        `json:"error,omitempty"`
}
