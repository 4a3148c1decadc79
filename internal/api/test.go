package api

import (
	"net/http"

	"github.com/tinlanh/church-admin/internal/i18n"
	"github.com/tinlanh/church-admin/internal/notifications"
	"github.com/tinlanh/church-admin/internal/pkg/fcm"
)

// sendTestReminderHandler pushes a sample reminder to the topic of the
// request locale so admins can check their devices receive them.
func (a *Api) sendTestReminderHandler(w http.ResponseWriter, r *http.Request) {
	locale := requestLocale(r)
	if locale != i18n.English {
		locale = i18n.Vietnamese
	}

	if err := a.fcm.SendMessage(r.Context(), &fcm.Message{
		Topic: notifications.TopicPrefix + locale,
		Title: a.t(r, "test_reminder_title"),
		Body:  a.t(r, "test_reminder_body"),
		Data: map[string]string{
			"test": "true",
		},
	}); err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
