package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/tinlanh/church-admin/internal/ics"
	"github.com/tinlanh/church-admin/internal/model"
)

func (a *Api) calendarHandler(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.GetOccurrences(r.Context(), model.EventsFilter{Status: model.EventStatusActive}, language(r))
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := ics.Write(&buf, a.t(r, "calendar_name"), events, a.events.Projector().Now()); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("write calendar: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
