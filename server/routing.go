package server

import (
	"net/http"
)

// routes configures all HTTP handlers.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.corsMiddleware(s.handleHealth))
	mux.HandleFunc("/api/auth/start-session", s.corsMiddleware(s.handleStartSession))
	mux.HandleFunc("/api/auth/validate-answer", s.corsMiddleware(s.handleValidateAnswer))
	mux.HandleFunc("/api/generate", s.corsMiddleware(s.handleGenerate))
	mux.HandleFunc("/api/download/", s.corsMiddleware(s.handleDownload))

	return mux
}

// corsMiddleware sets CORS headers for configured origins and answers
// preflight requests.
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
