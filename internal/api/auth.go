package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/validator"
)

func (a *Api) signInEmailHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(validator.IsEmail(req.Email), "email", a.t(r, "invalid_email"))
	v.Check(req.Password != "", "password", a.t(r, "required"))

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	email, err := a.passwords.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		a.signInErrorResponse(w, r, err)
		return
	}

	a.respondWithTokens(w, r, email)
}

func (a *Api) signInGoogleHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		AuthCode string `json:"authCode"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if req.AuthCode == "" {
		a.failedValidationResponse(w, r, map[string]string{"authCode": a.t(r, "required")})
		return
	}

	info, err := a.tokenParser.GetInfoGoogle(r.Context(), req.AuthCode)
	if err != nil {
		a.signInErrorResponse(w, r, err)
		return
	}

	a.respondWithTokens(w, r, info.Email)
}

func (a *Api) respondWithTokens(w http.ResponseWriter, r *http.Request, email string) {
	tokens, err := a.generateTokens(r.Context(), strings.ToLower(email))
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.writeJSON(w, http.StatusOK, tokens, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	input := &struct {
		RefreshToken string `json:"refreshToken"`
	}{}

	if err := a.readJSON(w, r, input); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	email, err := a.refreshTokens.Get(r.Context(), input.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.unauthorizedResponse(w, r, errors.New(a.t(r, "session_not_found")))
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	accessToken, err := a.jwts.CreateToken(email)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	newRefreshToken := ""
	for {
		newRefreshToken, err = a.generateRandomString(a.sessionTokenLength)
		if err != nil {
			a.serverErrorResponse(w, r, err)
			return
		}

		if err := a.refreshTokens.Refresh(r.Context(), input.RefreshToken, newRefreshToken); err != nil {
			switch {
			case errors.Is(err, model.ErrAlreadyExists):
				continue
			case errors.Is(err, model.ErrNoRecord):
				a.unauthorizedResponse(w, r, errors.New(a.t(r, "session_not_found")))
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		break
	}

	response := &tokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}

	if err := a.writeJSON(w, http.StatusOK, response, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	input := &struct {
		RefreshToken string `json:"refreshToken"`
	}{}

	if err := a.readJSON(w, r, input); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if err := a.refreshTokens.Delete(r.Context(), input.RefreshToken); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.unauthorizedResponse(w, r, errors.New(a.t(r, "session_not_found")))
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
