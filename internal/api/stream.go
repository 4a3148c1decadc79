package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/realtime"
)

const defaultKeepAlive = 25 * time.Second

var errStreamingUnsupported = errors.New("streaming unsupported")

// stream serves topic as server-sent events: a "snapshot" event with the
// full result of load on connect and after every change. The subscription
// is released when the client goes away.
func (a *Api) stream(w http.ResponseWriter, r *http.Request, topic string, load func(ctx context.Context) (any, error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.serverErrorResponse(w, r, errStreamingUnsupported)
		return
	}

	ctx := r.Context()

	// Subscribe before the first load so no change between the two is lost.
	sub, err := a.broker.Subscribe(ctx, topic)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("subscribe %s: %w", topic, err))
		return
	}
	defer sub.Close()

	snapshot, err := load(ctx)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("load %s: %w", topic, err), "")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "snapshot", snapshot); err != nil {
		a.logger.Debugw("stream closed", "topic", topic, "err", err)
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(a.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case _, ok := <-sub.C():
			if !ok {
				return
			}

			snapshot, err := load(ctx)
			if err != nil {
				if ctx.Err() == nil {
					a.logger.Errorw("stream reload", "topic", topic, "err", err)
					_ = writeEvent(w, "error", map[string]string{"error": "reload failed"})
					flusher.Flush()
				}
				return
			}

			if err := writeEvent(w, "snapshot", snapshot); err != nil {
				a.logger.Debugw("stream closed", "topic", topic, "err", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, js)
	return err
}

func (a *Api) streamPublicEventsHandler(w http.ResponseWriter, r *http.Request) {
	a.streamEvents(w, r, model.EventsFilter{Status: model.EventStatusActive})
}

func (a *Api) streamEventsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	a.streamEvents(w, r, *filter)
}

func (a *Api) streamEvents(w http.ResponseWriter, r *http.Request, filter model.EventsFilter) {
	lang := language(r)

	a.stream(w, r, realtime.TopicEvents, func(ctx context.Context) (any, error) {
		events, err := a.events.GetOccurrences(ctx, filter, lang)
		if err != nil {
			return nil, err
		}
		return mapSlice(events, mapToEventResp), nil
	})
}

func (a *Api) streamCoursesHandler(w http.ResponseWriter, r *http.Request) {
	a.stream(w, r, realtime.TopicCourses, func(ctx context.Context) (any, error) {
		courses, err := a.courses.GetCourses(ctx)
		if err != nil {
			return nil, err
		}
		return mapSlice(courses, mapToCourseResp), nil
	})
}

func (a *Api) streamLocationsHandler(w http.ResponseWriter, r *http.Request) {
	courseID, _ := courseParams(r)

	a.stream(w, r, realtime.LocationsTopic(courseID), func(ctx context.Context) (any, error) {
		locations, err := a.courses.GetLocations(ctx, courseID)
		if err != nil {
			return nil, err
		}
		return mapSlice(locations, mapToLocationResp), nil
	})
}

func (a *Api) streamClassesHandler(w http.ResponseWriter, r *http.Request) {
	courseID, locationID := courseParams(r)
	loc := a.location()

	a.stream(w, r, realtime.ClassesTopic(courseID, locationID), func(ctx context.Context) (any, error) {
		classes, err := a.courses.GetClasses(ctx, courseID, locationID)
		if err != nil {
			return nil, err
		}
		return mapToClassesResp(classes, loc), nil
	})
}
