package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
)

// ErrInvalidSession reports an unknown or already-evicted session ID.
var ErrInvalidSession = errors.New("invalid session")

// Session is the per-user state machine: answer all questions in order to
// become authenticated; any wrong answer resets the sequence to question 1.
type Session struct {
	ID              string
	CurrentQuestion int
	Authenticated   bool
	CreatedAt       time.Time
}

// ValidationResult is the outcome of one answer attempt.
type ValidationResult struct {
	Success      bool
	Message      string
	NextQuestion int // 0 when the sequence is complete
	QuestionText string
}

// Service holds the in-memory session store and the question sequence. All
// methods are safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	questions []Question
	ttl       time.Duration
	logger    *zap.SugaredLogger
}

// NewService builds the session service from configuration.
func NewService(cfg config.AuthConfig, logger *zap.SugaredLogger) *Service {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	questions := loadQuestions(cfg)
	log := logger.Named("auth")
	log.Infow("Loaded security questions", "count", len(questions))

	return &Service{
		sessions:  make(map[string]*Session),
		questions: questions,
		ttl:       ttl,
		logger:    log,
	}
}

// TotalQuestions reports the length of the fixed sequence.
func (s *Service) TotalQuestions() int {
	return len(s.questions)
}

// CreateSession registers a fresh session and returns its ID together with
// the first question.
func (s *Service) CreateSession() (string, Question) {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &Session{
		ID:              id,
		CurrentQuestion: 1,
		CreatedAt:       time.Now(),
	}
	s.mu.Unlock()

	s.logger.Debugw("Session created", "session_id", id)
	return id, s.questions[0]
}

// ValidateAnswer checks one answer against the expected answer for the
// given question number. A correct final answer authenticates the session;
// a correct intermediate answer advances it; any incorrect answer resets
// the sequence to question 1.
func (s *Service) ValidateAnswer(sessionID string, questionNumber int, answer string) (ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return ValidationResult{}, errors.Wrapf(ErrInvalidSession, "session %q", sessionID)
	}
	if questionNumber < 1 || questionNumber > len(s.questions) {
		return ValidationResult{}, errors.Newf("question number %d out of range 1..%d", questionNumber, len(s.questions))
	}

	expected := NormalizeAnswer(s.questions[questionNumber-1].Answer)
	if NormalizeAnswer(answer) != expected {
		session.CurrentQuestion = 1
		first := s.questions[0]
		s.logger.Debugw("Incorrect answer, sequence reset",
			"session_id", sessionID,
			"question", questionNumber,
		)
		return ValidationResult{
			Success:      false,
			Message:      "Respuesta incorrecta. Reiniciando...",
			NextQuestion: first.Number,
			QuestionText: first.Text,
		}, nil
	}

	if questionNumber == len(s.questions) {
		session.Authenticated = true
		s.logger.Infow("Session authenticated", "session_id", sessionID)
		return ValidationResult{
			Success: true,
			Message: "Autenticación exitosa",
		}, nil
	}

	session.CurrentQuestion = questionNumber + 1
	next := s.questions[questionNumber]
	return ValidationResult{
		Success:      true,
		NextQuestion: next.Number,
		QuestionText: next.Text,
	}, nil
}

// IsAuthenticated reports whether the session exists and has completed the
// full question sequence.
func (s *Service) IsAuthenticated(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	return ok && session.Authenticated
}

// PruneExpired drops sessions older than the configured TTL. Matches the
// store sweeper's hook signature so session cleanup rides the same ticker
// as artifact eviction.
func (s *Service) PruneExpired(now time.Time) {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	if pruned > 0 {
		s.logger.Infow("Pruned expired sessions", "count", pruned)
	}
}
