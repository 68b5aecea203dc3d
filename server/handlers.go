package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/DANIELNAHUN/afiche-generator/auth"
	"github.com/DANIELNAHUN/afiche-generator/errors"
	"github.com/DANIELNAHUN/afiche-generator/flyer"
	"github.com/DANIELNAHUN/afiche-generator/internal/version"
	"github.com/DANIELNAHUN/afiche-generator/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "running",
		Version: version.Get().Version,
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	sessionID, first := s.auth.CreateSession()
	writeJSON(w, http.StatusOK, SessionResponse{
		SessionID:      sessionID,
		QuestionNumber: first.Number,
		QuestionText:   first.Text,
		TotalQuestions: s.auth.TotalQuestions(),
	})
}

func (s *Server) handleValidateAnswer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req ValidateAnswerRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	result, err := s.auth.ValidateAnswer(req.SessionID, req.QuestionNumber, req.Answer)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			writeError(w, http.StatusUnauthorized, "Sesión inválida")
			return
		}
		s.logger.Errorw("Answer validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error al validar respuesta")
		return
	}

	writeJSON(w, http.StatusOK, ValidationResponse{
		Success:      result.Success,
		Message:      result.Message,
		NextQuestion: result.NextQuestion,
		QuestionText: result.QuestionText,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req GenerateRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	if !s.auth.IsAuthenticated(req.SessionID) {
		writeError(w, http.StatusUnauthorized, "Sesión no autenticada")
		return
	}

	fields := flyer.EventFields{
		Date:      req.Date,
		Time:      req.Time,
		Place:     req.Place,
		Reference: req.Reference,
	}
	if err := fields.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if strings.TrimSpace(req.ProjectName) == "" {
		writeError(w, http.StatusBadRequest, "project_name must not be empty")
		return
	}

	s.logger.Infow("Generation request",
		"project", req.ProjectName,
		"session_id", shortID(req.SessionID),
	)
	// Generation runs to completion even if the client disconnects; the
	// request context would be canceled by net/http and kill in-flight
	// converter processes mid-pipeline.
	documents := s.generator.GenerateAll(context.WithoutCancel(r.Context()), fields, req.ProjectName)

	writeJSON(w, http.StatusOK, GenerateResponse{
		Success:   true,
		Documents: documents,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	filename := strings.TrimPrefix(r.URL.Path, "/api/download/")
	path, err := s.artifacts.Lookup(filename)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidArtifactName):
			writeError(w, http.StatusBadRequest, "Nombre de archivo inválido")
		case errors.Is(err, store.ErrArtifactNotFound):
			writeError(w, http.StatusNotFound, "Archivo no encontrado")
		default:
			s.logger.Errorw("Artifact lookup failed", "filename", filename, "error", err)
			writeError(w, http.StatusInternalServerError, "Error al descargar archivo")
		}
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}

// shortID truncates a session ID for logging
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
