package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/validator"
)

type eventReq struct {
	Title             string     `json:"title"`
	Subtitle          string     `json:"subtitle"`
	HeroImageURL      string     `json:"heroImageUrl"`
	ThumbnailImageURL string     `json:"thumbnailImageUrl"`
	Location          string     `json:"location"`
	Notes             string     `json:"notes"`
	StartDateTime     *time.Time `json:"startDateTime"`
	EndDateTime       *time.Time `json:"endDateTime"`
	IsActive          *bool      `json:"isActive"`
	Recurring         bool       `json:"recurring"`
}

func (a *Api) readEvent(w http.ResponseWriter, r *http.Request) (*model.EventCreate, bool) {
	req := &eventReq{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)

	v := validator.New()
	v.Check(req.Title != "", "title", a.t(r, "title_required"))
	v.Check(validator.OptionalURL(req.HeroImageURL), "heroImageUrl", a.t(r, "invalid_url"))
	v.Check(validator.OptionalURL(req.ThumbnailImageURL), "thumbnailImageUrl", a.t(r, "invalid_url"))
	if req.StartDateTime != nil && req.EndDateTime != nil {
		v.Check(!req.EndDateTime.Before(*req.StartDateTime), "endDateTime", a.t(r, "end_before_start"))
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return nil, false
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &model.EventCreate{
		Title:             req.Title,
		Subtitle:          req.Subtitle,
		HeroImageURL:      req.HeroImageURL,
		ThumbnailImageURL: req.ThumbnailImageURL,
		Location:          req.Location,
		Notes:             req.Notes,
		StartDateTime:     req.StartDateTime,
		EndDateTime:       req.EndDateTime,
		IsActive:          isActive,
		Recurring:         req.Recurring,
	}, true
}

func (a *Api) createEventHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readEvent(w, r)
	if !ok {
		return
	}

	event, err := a.events.CreateEvent(r.Context(), info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create event: %w", err), "endDateTime")
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readEvent(w, r)
	if !ok {
		return
	}

	event, err := a.events.UpdateEvent(r.Context(), chi.URLParam(r, "eventID"), info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update event: %w", err), "endDateTime")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.events.DeleteEvent(r.Context(), chi.URLParam(r, "eventID")); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete event: %w", err), "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) reorderEventsHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		IDs []string `json:"ids"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if len(req.IDs) == 0 {
		a.failedValidationResponse(w, r, map[string]string{"ids": a.t(r, "ids_required")})
		return
	}

	if err := a.events.ReorderEvents(r.Context(), req.IDs); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("reorder events: %w", err), "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getEventHandler returns the stored event, recurring anchor included, for
// editing.
func (a *Api) getEventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := a.events.GetEventByID(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get event: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	a.writeEvents(w, r, *filter)
}

func (a *Api) getPublicEventsHandler(w http.ResponseWriter, r *http.Request) {
	a.writeEvents(w, r, model.EventsFilter{Status: model.EventStatusActive})
}

func (a *Api) writeEvents(w http.ResponseWriter, r *http.Request, filter model.EventsFilter) {
	events, err := a.events.GetOccurrences(r.Context(), filter, language(r))
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get events: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(events, mapToEventResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getPublicEventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := a.events.GetOccurrence(r.Context(), chi.URLParam(r, "eventID"), language(r))
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get event: %w", err), "")
		return
	}

	if !event.IsActive {
		a.notFoundResponse(w, r)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToEventResp(event), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

var errInvalidStatus = errors.New("status must be one of all, active, inactive")

func parseEventsQuery(r *http.Request) (*model.EventsFilter, error) {
	res := &model.EventsFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Status: model.EventStatusAll,
	}

	if v := r.URL.Query().Get("status"); v != "" {
		if !validator.In(v, string(model.EventStatusAll), string(model.EventStatusActive), string(model.EventStatusInactive)) {
			return nil, errInvalidStatus
		}
		res.Status = model.EventStatus(v)
	}

	return res, nil
}
