package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tinlanh/church-admin/internal/i18n"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/jwt"
)

type contextKey string

const (
	contextKeyEmail  = contextKey("email")
	contextKeyLocale = contextKey("locale")
)

var errCantRetrieveEmail = errors.New("can't retrieve email")

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			a.unauthorizedResponse(w, r, errors.New("no token provided"))
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		email, err := a.jwts.GetEmailFromToken(token)
		if err != nil {
			invalidTokenErr := &jwt.InvalidTokenError{}
			switch {
			case errors.As(err, &invalidTokenErr):
				a.unauthorizedResponse(w, r, invalidTokenErr)
			default:
				a.serverErrorResponse(w, r, err)
			}
			return
		}

		emailContext := context.WithValue(r.Context(), contextKeyEmail, email)
		next.ServeHTTP(w, r.WithContext(emailContext))
	})
}

func (a *Api) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
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

		if !isAdmin {
			a.forbiddenResponse(w, r, a.t(r, "not_admin"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isAdmin consults the cache first. Cache failures are logged and the
// database answers instead.
func (a *Api) isAdmin(ctx context.Context, email string) (bool, error) {
	isAdmin, found, err := a.adminCache.Get(ctx, email)
	if err != nil {
		a.logger.Errorw("admin cache get", "email", email, "err", err)
	}
	if found {
		return isAdmin, nil
	}

	admin, err := a.admins.GetAdmin(ctx, a.db, email)
	switch {
	case errors.Is(err, model.ErrNoRecord):
		isAdmin = false
	case err != nil:
		return false, err
	default:
		isAdmin = admin.IsAdmin
	}

	if err := a.adminCache.Set(ctx, email, isAdmin); err != nil {
		a.logger.Errorw("admin cache set", "email", email, "err", err)
	}

	return isAdmin, nil
}

// locale resolves ?locale= and Accept-Language to "vi" or "en".
func (a *Api) locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := i18n.Match(r.URL.Query().Get("locale"), r.Header.Get("Accept-Language"))
		if locale == "" {
			locale = a.translator.DefaultLocale()
		}

		w.Header().Set("Content-Language", locale)

		localeCtx := context.WithValue(r.Context(), contextKeyLocale, locale)
		next.ServeHTTP(w, r.WithContext(localeCtx))
	})
}

func requestLocale(r *http.Request) string {
	if locale, ok := r.Context().Value(contextKeyLocale).(string); ok {
		return locale
	}
	return i18n.Vietnamese
}
