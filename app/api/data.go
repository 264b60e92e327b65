package api

// NewSessionResponse is the body of POST /new.
type NewSessionResponse struct {
	SessionID    string `json:"session_id"`
	Message      string `json:"message"`
	InitialAgent string `json:"initial_agent"`
	Status       string `json:"status"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID   string `json:"session_id" validate:"required"`
	UserMessage string `json:"user_message" validate:"required"`
}

// ChatResponse is the body of POST /chat. AssessmentCategory stays null
// until the assessment stage has run.
type ChatResponse struct {
	SessionID          string  `json:"session_id"`
	Message            string  `json:"message"`
	CurrentAgent       string  `json:"current_agent"`
	PHQ9Score          int     `json:"phq9_score"`
	AssessmentCategory *string `json:"assessment_category"`
	CrisisDetected     bool    `json:"crisis_detected"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
