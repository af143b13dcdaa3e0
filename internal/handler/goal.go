package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shidoapp/shido/internal/ctxkeys"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

type goalResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	TargetPoints  int         `json:"target_points"`
	CurrentPoints int         `json:"current_points"`
	Phase         model.Phase `json:"phase"`
	Percentage    int         `json:"percentage"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func newGoalResponse(g *model.Goal) goalResponse {
	return goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetPoints:  g.TargetPoints,
		CurrentPoints: g.CurrentPoints,
		Phase:         g.Phase(),
		Percentage:    g.Percentage(),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, newGoalResponse(g))
	}

	renderJSON(w, http.StatusOK, resp)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goal, err := h.goalService.ByID(userID, r.PathValue("id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newGoalResponse(goal))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var draft model.GoalDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	goal, err := h.goalService.Create(userID, draft)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, newGoalResponse(goal))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var draft model.GoalDraft
	if !decodeJSON(w, r, &draft) {
		return
	}

	goal, err := h.goalService.Update(userID, r.PathValue("id"), draft.Name, draft.TargetPoints)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newGoalResponse(goal))
}

func (h *GoalHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req adjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.AdjustPoints(userID, r.PathValue("id"), req.Delta)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, newGoalResponse(goal))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.goalService.Delete(userID, r.PathValue("id"))
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Phase classifies arbitrary progress without touching any goal.
func (h *GoalHandler) Phase(w http.ResponseWriter, r *http.Request) {
	current, err := strconv.Atoi(r.URL.Query().Get("current"))
	if err != nil {
		renderError(w, r, &service.ValidationError{Field: "current", Message: "must be an integer"})
		return
	}

	target, err := strconv.Atoi(r.URL.Query().Get("target"))
	if err != nil || target <= 0 {
		renderError(w, r, &service.ValidationError{Field: "target", Message: "must be a positive integer"})
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"phase":      model.ClassifyPhase(current, target),
		"percentage": model.Percentage(current, target),
	})
}
