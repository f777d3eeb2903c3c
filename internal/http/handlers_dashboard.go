package http

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"tally/internal/aggregate"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/query"
	"tally/internal/ui"
)

// dashboardView is everything the index template needs: the loaded page of
// transactions plus the aggregates computed over it.
type dashboardView struct {
	State     ui.State
	Summary   aggregate.Summary
	Breakdown []aggregate.CategoryTotal
	Months    []aggregate.MonthBucket
}

var templateFuncs = template.FuncMap{
	"money":    formatMoney,
	"formatID": formatID,
	"prevPage": func(page int) int { return page - 1 },
	"nextPage": func(page int) int { return page + 1 },
}

// formatMoney renders cents as a dollar amount, sign in front of the symbol.
func formatMoney(m core.Money) string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := "$" + strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	view := s.buildDashboard(r)
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		s.logger.ErrorContext(r.Context(), "index template execution failed", applog.FieldError, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// buildDashboard assembles the view model for the current query string,
// serving a cached copy when one is fresh.
func (s *Server) buildDashboard(r *http.Request) dashboardView {
	key := r.URL.Query().Encode()
	if view, ok := s.viewCache.Get(key); ok {
		return view
	}

	state := ui.NewState()

	criteria := state.Filters
	if parsed, fieldErrs := query.ParseValues(r.URL.Query()); len(fieldErrs) > 0 {
		state = state.ApplyError("Some filters were ignored: check the values and try again.")
	} else {
		criteria = parsed
		state = state.WithFilters(criteria)
	}

	items, pagination, err := s.svc.List(r.Context(), criteria)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard list failed", applog.FieldError, err)
		return dashboardView{State: state.ApplyError("Could not load transactions.")}
	}
	state = state.ApplyFetched(items, pagination)

	view := dashboardView{
		State:     state,
		Summary:   aggregate.Summarize(items),
		Breakdown: aggregate.CategoryBreakdown(items),
		Months:    aggregate.MonthlySeries(items),
	}
	s.viewCache.Set(key, view)
	return view
}
