package handler

import (
	"net/http"

	"github.com/shidoapp/shido/internal/ctxkeys"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/service"
)

type HabitHandler struct {
	habitService   *service.HabitService
	scoringService *service.ScoringService
}

func NewHabitHandler(habitService *service.HabitService, scoringService *service.ScoringService) *HabitHandler {
	return &HabitHandler{
		habitService:   habitService,
		scoringService: scoringService,
	}
}

type completionResponse struct {
	Completion          *model.Completion `json:"completion"`
	ConfirmationMessage string            `json:"confirmation_message,omitempty"`
	DailyScore          int               `json:"daily_score"`
	LifetimeScore       int               `json:"lifetime_score"`
	Goal                *goalResponse     `json:"goal,omitempty"`
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	habits, err := h.habitService.List(userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var draft model.HabitDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	habit, err := h.habitService.Create(userID, draft)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, habit)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	habitID := r.PathValue("id")

	var patch model.HabitPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	habit, err := h.habitService.Update(userID, habitID, patch)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	habitID := r.PathValue("id")

	err := h.habitService.Deactivate(userID, habitID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	habitID := r.PathValue("id")

	result, err := h.scoringService.RecordCompletion(userID, habitID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := completionResponse{
		Completion:          result.Completion,
		ConfirmationMessage: result.ConfirmationMessage,
		DailyScore:          result.DailyScore,
		LifetimeScore:       result.LifetimeScore,
	}
	if result.Goal != nil {
		g := newGoalResponse(result.Goal)
		resp.Goal = &g
	}

	renderJSON(w, http.StatusCreated, resp)
}
