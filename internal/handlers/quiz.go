package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

// QuizHandler scores the onboarding experience quiz.
type QuizHandler struct {
	userService *services.UserService
}

func NewQuizHandler(userService *services.UserService) *QuizHandler {
	return &QuizHandler{userService: userService}
}

// QuizRouter registers the quiz route on the given router.
func QuizRouter(r chi.Router, userService *services.UserService, jwtSecret string) {
	handler := NewQuizHandler(userService)

	r.With(RequireAuth(jwtSecret)).Post("/", handler.Submit)
}

// Submit scores the caller's quiz answers and stores the resulting
// experience level on their account.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	var answers services.QuizAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	level, err := h.userService.ScoreQuiz(r.Context(), actor.ID, answers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to score quiz")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"experience_level": level})
}
