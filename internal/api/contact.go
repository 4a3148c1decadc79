package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tinlanh/church-admin/internal/model"
	"github.com/tinlanh/church-admin/internal/pkg/validator"
)

const defaultMessagesLimit = 100

func (a *Api) createContactMessageHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	v := validator.New()
	v.Check(req.Name != "", "name", a.t(r, "name_required"))
	v.Check(validator.IsEmail(req.Email), "email", a.t(r, "invalid_email"))
	v.Check(req.Phone == "" || validator.Matches(req.Phone, validator.PhoneRX), "phone", a.t(r, "invalid_phone"))
	v.Check(req.Message != "", "message", a.t(r, "message_required"))

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	msg := &model.ContactMessage{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		ContactMessageCreate: model.ContactMessageCreate{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
		},
	}

	if err := a.contact.CreateMessage(r.Context(), a.db, msg); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("create contact message: %w", err))
		return
	}

	a.logger.Infow("Received contact message", "id", msg.ID)

	w.WriteHeader(http.StatusCreated)
}

func (a *Api) getContactMessagesHandler(w http.ResponseWriter, r *http.Request) {
	limit := uint64(defaultMessagesLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			a.badRequestResponse(w, r, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	messages, err := a.contact.GetMessages(r.Context(), a.db, limit)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get contact messages: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapSlice(messages, mapToContactMessageResp), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
