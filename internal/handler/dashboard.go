package handler

import (
	"net/http"
	"slices"

	"github.com/shidoapp/shido/internal/ctxkeys"
	"github.com/shidoapp/shido/internal/model"
	"github.com/shidoapp/shido/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

type todayResponse struct {
	Date              model.Date `json:"date"`
	Score             int        `json:"score"`
	LifetimeScore     int        `json:"lifetime_score"`
	CompletedHabitIDs []string   `json:"completed_habit_ids"`
}

type calendarResponse struct {
	From       model.Date         `json:"from"`
	To         model.Date         `json:"to"`
	Days       []model.DailyScore `json:"days"`
	ActiveDays int                `json:"active_days"`
	BestDay    int                `json:"best_day"`
}

func (h *DashboardHandler) Today(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	summary, err := h.dashboardService.TodaySummary(userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	lifetime, err := h.dashboardService.LifetimeScore(userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	ids := make([]string, 0, len(summary.CompletedHabitIDs))
	for id := range summary.CompletedHabitIDs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	renderJSON(w, http.StatusOK, todayResponse{
		Date:              summary.Date,
		Score:             summary.Score,
		LifetimeScore:     lifetime,
		CompletedHabitIDs: ids,
	})
}

// Calendar accepts ?month=YYYY-MM-DD (any day of the month) or an explicit
// ?from=&to= range. Without parameters it shows the current month.
func (h *DashboardHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	q := r.URL.Query()

	var (
		cal *service.Calendar
		err error
	)

	switch {
	case q.Get("from") != "" || q.Get("to") != "":
		from, perr := model.ParseDate(q.Get("from"))
		if perr != nil {
			renderError(w, r, &service.ValidationError{Field: "from", Message: perr.Error()})
			return
		}
		to, perr := model.ParseDate(q.Get("to"))
		if perr != nil {
			renderError(w, r, &service.ValidationError{Field: "to", Message: perr.Error()})
			return
		}
		cal, err = h.dashboardService.Calendar(userID, from, to)
	case q.Get("month") != "":
		day, perr := model.ParseDate(q.Get("month"))
		if perr != nil {
			renderError(w, r, &service.ValidationError{Field: "month", Message: perr.Error()})
			return
		}
		cal, err = h.dashboardService.Month(userID, day)
	default:
		cal, err = h.dashboardService.Month(userID, h.dashboardService.Today())
	}
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, calendarResponse{
		From:       cal.From,
		To:         cal.To,
		Days:       cal.Days,
		ActiveDays: cal.ActiveDays,
		BestDay:    cal.BestDay,
	})
}

func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	entries, err := h.dashboardService.History(userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, entries)
}
