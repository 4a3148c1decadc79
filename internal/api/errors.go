package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/identity"
)

func (a *Api) logError(r *http.Request, err error) {
	a.logger.Errorw("server error", "error", err, "method", r.Method, "uri", r.URL.RequestURI())
}

func (a *Api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	data := map[string]interface{}{"error": message}

	if err := a.writeJSON(w, status, data, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	a.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (a *Api) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	a.logger.Debugw("client error", "err", message)
	a.errorResponse(w, r, status, message)
}

func (a *Api) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	a.clientErrorResponse(w, r, http.StatusNotFound, message)
}

func (a *Api) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	a.clientErrorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (a *Api) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (a *Api) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (a *Api) unauthorizedResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusUnauthorized, err.Error())
}

func (a *Api) forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	a.clientErrorResponse(w, r, http.StatusForbidden, message)
}

func (a *Api) fileTooBigResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("file must not be larger than %d bytes", a.images.MaxSize())
	a.clientErrorResponse(w, r, http.StatusRequestEntityTooLarge, message)
}

// signInErrorResponse reports a provider failure with its localized reason.
func (a *Api) signInErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	identityErr := identity.Classify(err)

	status := http.StatusUnauthorized
	switch identityErr.Reason {
	case identity.ReasonTooManyRequests:
		status = http.StatusTooManyRequests
	case identity.ReasonNetwork:
		status = http.StatusBadGateway
	case identity.ReasonUnknown:
		a.logError(r, err)
	}

	a.clientErrorResponse(w, r, status, a.t(r, identityErr.Reason.MessageKey()))
}

// serviceErrorResponse maps the shared sentinels, anything else is a 500.
func (a *Api) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error, field string) {
	switch {
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
	case errors.Is(err, model.ErrEndBeforeStart):
		a.failedValidationResponse(w, r, map[string]string{field: a.t(r, "end_before_start")})
	case errors.Is(err, model.ErrInvalidInput):
		a.badRequestResponse(w, r, err)
	default:
		a.serverErrorResponse(w, r, err)
	}
}
