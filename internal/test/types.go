package test

// ClassifyRequest represents a classification test request
type ClassifyRequest struct {
	Family string `json:"family" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// ClassifyResponse represents a classification test response
type ClassifyResponse struct {
	Success    bool   `json:"success"`
	Family     string `json:"family"`
	Route      string `json:"route,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
	Reasoning  string `json:"reasoning,omitempty"`
	Text       string `json:"text"`
	Error      string `json:"error,omitempty"`
	Details    string `json:"details,omitempty"`
}

// HealthCheckResponse represents a health check response
type HealthCheckResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
