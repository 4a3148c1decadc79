package api

import (
	"net/http"
)

func (a *Api) getMeHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value(contextKeyEmail).(string)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveEmail)
		return
	}

	isAdmin, err := a.isAdmin(r.Context(), email)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp := &struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
		Locale  string `json:"locale"`
	}{
		Email:   email,
		IsAdmin: isAdmin,
		Locale:  requestLocale(r),
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
