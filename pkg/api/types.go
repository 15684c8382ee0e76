package api

// APIResponse is the standard envelope for non-extraction endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the extraction API server.
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // empty disables authentication
}
