package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/validator"
)

func (a *Api) location() *time.Location {
	return a.events.Projector().Location()
}

func (a *Api) getCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := a.courses.GetCourses(r.Context())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get courses: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(courses, mapToCourseResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID, _ := courseParams(r)

	course, err := a.courses.GetCourse(r.Context(), courseID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get course: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToCourseResp(course), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) readCourse(w http.ResponseWriter, r *http.Request) (*model.CourseCreate, bool) {
	req := &struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return nil, false
	}

	req.Name = strings.TrimSpace(req.Name)

	v := validator.New()
	v.Check(req.Name != "", "name", a.t(r, "name_required"))

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return nil, false
	}

	return &model.CourseCreate{Name: req.Name, Description: req.Description}, true
}

func (a *Api) createCourseHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readCourse(w, r)
	if !ok {
		return
	}

	course, err := a.courses.CreateCourse(r.Context(), info)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("create course: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToCourseResp(course), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateCourseHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readCourse(w, r)
	if !ok {
		return
	}

	courseID, _ := courseParams(r)

	course, err := a.courses.UpdateCourse(r.Context(), courseID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update course: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToCourseResp(course), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID, _ := courseParams(r)

	if err := a.courses.DeleteCourse(r.Context(), courseID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete course: %w", err), "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) getLocationsHandler(w http.ResponseWriter, r *http.Request) {
	courseID, _ := courseParams(r)

	locations, err := a.courses.GetLocations(r.Context(), courseID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get locations: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(locations, mapToLocationResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getLocationHandler(w http.ResponseWriter, r *http.Request) {
	courseID, locationID := courseParams(r)

	location, err := a.courses.GetLocation(r.Context(), courseID, locationID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get location: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToLocationResp(location), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) readLocation(w http.ResponseWriter, r *http.Request) (*model.LocationCreate, bool) {
	req := &struct {
		Name              string `json:"name"`
		ThumbnailImageURL string `json:"thumbnailImageUrl"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return nil, false
	}

	req.Name = strings.TrimSpace(req.Name)

	v := validator.New()
	v.Check(req.Name != "", "name", a.t(r, "name_required"))
	v.Check(validator.OptionalURL(req.ThumbnailImageURL), "thumbnailImageUrl", a.t(r, "invalid_url"))

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return nil, false
	}

	return &model.LocationCreate{Name: req.Name, ThumbnailImageURL: req.ThumbnailImageURL}, true
}

func (a *Api) createLocationHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readLocation(w, r)
	if !ok {
		return
	}

	courseID, _ := courseParams(r)

	location, err := a.courses.CreateLocation(r.Context(), courseID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create location: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToLocationResp(location), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateLocationHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readLocation(w, r)
	if !ok {
		return
	}

	courseID, locationID := courseParams(r)

	location, err := a.courses.UpdateLocation(r.Context(), courseID, locationID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update location: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToLocationResp(location), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteLocationHandler(w http.ResponseWriter, r *http.Request) {
	courseID, locationID := courseParams(r)

	if err := a.courses.DeleteLocation(r.Context(), courseID, locationID); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete location: %w", err), "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) getClassesHandler(w http.ResponseWriter, r *http.Request) {
	courseID, locationID := courseParams(r)

	classes, err := a.courses.GetClasses(r.Context(), courseID, locationID)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get classes: %w", err), "")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToClassesResp(classes, a.location()), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) readClass(w http.ResponseWriter, r *http.Request) (*model.ClassCreate, bool) {
	req := &struct {
		StartTime *time.Time `json:"startTime"`
		EndTime   *time.Time `json:"endTime"`
		Contact   string     `json:"contact"`
		Passage   string     `json:"passage"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return nil, false
	}

	v := validator.New()
	v.Check(req.StartTime != nil && !req.StartTime.IsZero(), "startTime", a.t(r, "start_required"))
	v.Check(req.EndTime != nil && !req.EndTime.IsZero(), "endTime", a.t(r, "end_required"))
	if v.Valid() {
		v.Check(req.EndTime.After(*req.StartTime), "endTime", a.t(r, "end_before_start"))
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return nil, false
	}

	return &model.ClassCreate{
		StartTime: *req.StartTime,
		EndTime:   *req.EndTime,
		Contact:   req.Contact,
		Passage:   req.Passage,
	}, true
}

func (a *Api) createClassHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readClass(w, r)
	if !ok {
		return
	}

	courseID, locationID := courseParams(r)

	class, err := a.courses.CreateClass(r.Context(), courseID, locationID, info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create class: %w", err), "endTime")
		return
	}

	if err := a.writeJSON(w, http.StatusCreated, mapToClassResp(class, a.location()), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateClassHandler(w http.ResponseWriter, r *http.Request) {
	info, ok := a.readClass(w, r)
	if !ok {
		return
	}

	courseID, locationID := courseParams(r)

	class, err := a.courses.UpdateClass(r.Context(), courseID, locationID, chi.URLParam(r, "classID"), info)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update class: %w", err), "endTime")
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToClassResp(class, a.location()), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteClassHandler(w http.ResponseWriter, r *http.Request) {
	courseID, locationID := courseParams(r)

	if err := a.courses.DeleteClass(r.Context(), courseID, locationID, chi.URLParam(r, "classID")); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete class: %w", err), "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) deleteClassesHandler(w http.ResponseWriter, r *http.Request) {
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

	courseID, locationID := courseParams(r)

	deleted, err := a.courses.DeleteClasses(r.Context(), courseID, locationID, req.IDs)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete classes: %w", err), "")
		return
	}

	resp := &struct {
		Deleted int64 `json:"deleted"`
	}{
		Deleted: deleted,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
