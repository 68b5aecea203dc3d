package server

import "github.com/DANIELNAHUN/afiche-generator/flyer"

// SessionResponse is returned by start-session: a fresh session ID plus the
// first question of the fixed sequence.
type SessionResponse struct {
	SessionID      string `json:"session_id"`
	QuestionNumber int    `json:"question_number"`
	QuestionText   string `json:"question_text"`
	TotalQuestions int    `json:"total_questions"`
}

// ValidateAnswerRequest carries one answer attempt.
type ValidateAnswerRequest struct {
	SessionID      string `json:"session_id"`
	QuestionNumber int    `json:"question_number"`
	Answer         string `json:"answer"`
}

// ValidationResponse reports the outcome of an answer attempt. NextQuestion
// and QuestionText are absent once the sequence completes.
type ValidationResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	NextQuestion int    `json:"next_question,omitempty"`
	QuestionText string `json:"question_text,omitempty"`
}

// GenerateRequest carries the validated event fields and the project name
// used to derive artifact filenames.
type GenerateRequest struct {
	SessionID   string `json:"session_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Place       string `json:"place"`
	Reference   string `json:"reference"`
	ProjectName string `json:"project_name"`
}

// GenerateResponse reports one result per variant. Success means the
// request was processed; individual variants carry their own status.
type GenerateResponse struct {
	Success   bool                     `json:"success"`
	Documents []flyer.GenerationResult `json:"documents"`
}

// HealthResponse is the health probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
