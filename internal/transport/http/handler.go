package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"onetime-quiz-service/internal/app"
	"onetime-quiz-service/internal/domain"
)

// QuizHandler exposes the quiz attempt flow over plain HTTP.
type QuizHandler struct {
	service  *app.QuizService
	sessions app.SessionResolver
}

func NewQuizHandler(service *app.QuizService, sessions app.SessionResolver) *QuizHandler {
	return &QuizHandler{service: service, sessions: sessions}
}

// Register mounts the API routes on mux.
func (h *QuizHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/quiz/questions", h.withUser(http.MethodGet, h.questions))
	mux.HandleFunc("/api/quiz/status", h.withUser(http.MethodGet, h.status))
	mux.HandleFunc("/api/quiz/submit", h.withUser(http.MethodPost, h.submit))
}

type errorResponse struct {
	Error string `json:"error"`
}

type questionsResponse struct {
	Questions []domain.CatalogQuestion `json:"questions"`
}

type statusResponse struct {
	Taken bool `json:"taken"`
	Score *int `json:"score,omitempty"`
	Total *int `json:"total,omitempty"`
}

type submitRequest struct {
	Answers json.RawMessage `json:"answers"`
}

// withUser resolves the caller's session before invoking next. Anything the
// resolver cannot vouch for is a 401; handlers never see an empty user ID.
func (h *QuizHandler) withUser(method string, next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		userID, err := h.sessions.Resolve(r.Context(), sessionToken(r))
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthenticated) {
				log.Printf("session resolve failed: %v", err)
			}
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r, userID)
	}
}

// sessionToken extracts the opaque token minted by the external auth service.
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if c, err := r.Cookie("session_token"); err == nil {
		return c.Value
	}
	return ""
}

func (h *QuizHandler) questions(w http.ResponseWriter, r *http.Request, userID string) {
	questions, err := h.service.ListQuestions(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse{Questions: questions})
}

func (h *QuizHandler) status(w http.ResponseWriter, r *http.Request, userID string) {
	st, err := h.service.GetAttemptStatus(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := statusResponse{Taken: st.Taken}
	if st.Taken {
		resp.Score = &st.Score
		resp.Total = &st.Total
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *QuizHandler) submit(w http.ResponseWriter, r *http.Request, userID string) {
	// Repeat submissions are turned away before the body is even looked at.
	// The service re-checks on insert, so this ordering is about response
	// precedence, not correctness.
	if st, err := h.service.GetAttemptStatus(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	} else if st.Taken {
		writeDomainError(w, domain.ErrAlreadyAttempted)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDomainError(w, domain.ErrMalformedAnswers)
		return
	}

	answers, err := decodeAnswers(req.Answers)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.service.SubmitAttempt(r.Context(), userID, answers)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeAnswers requires answers to be a JSON array of integers or nulls.
// A null entry is kept (it scores as incorrect); a missing or non-array
// answers field is malformed input.
func decodeAnswers(raw json.RawMessage) ([]*int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, domain.ErrMalformedAnswers
	}
	var answers []*int
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, domain.ErrMalformedAnswers
	}
	return answers, nil
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrAlreadyAttempted):
		writeError(w, http.StatusForbidden, "Quiz already taken")
	case errors.Is(err, domain.ErrMalformedAnswers):
		writeError(w, http.StatusBadRequest, "Invalid answers format")
	case errors.Is(err, domain.ErrAnswerCountMismatch):
		writeError(w, http.StatusBadRequest, "Answer count mismatch")
	default:
		log.Printf("quiz handler error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
