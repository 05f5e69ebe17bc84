package contact

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/models"
)

type MessageProvider interface {
	CreateMessage(msg *models.ContactMessage) error
	GetAllMessages() ([]models.ContactMessage, error)
	MarkRead(id uint) error
}

type ContactHandler struct {
	repo MessageProvider
}

func NewContactHandler(r MessageProvider) *ContactHandler {
	return &ContactHandler{
		repo: r,
	}
}

// HandleCreate accepts a message from the public contact form.
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := map[string]string{}
	if input.Name == "" {
		fields["name"] = "name is required"
	}
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	if input.Message == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		api.WriteValidationErrors(w, fields)
		return
	}

	msg := &models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	}
	if err := h.repo.CreateMessage(msg); err != nil {
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, msg)
}

// HandleListAll serves the admin inbox, newest first.
func (h *ContactHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	messages, err := h.repo.GetAllMessages()
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}
	api.WriteJSON(w, http.StatusOK, messages)
}

// HandleMarkRead flags a message as read.
func (h *ContactHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := h.repo.MarkRead(uint(id)); err != nil {
		if errors.Is(err, models.ErrMessageNotFound) {
			api.WriteError(w, http.StatusNotFound, "contact message not found")
			return
		}
		api.WriteInternalError(w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}
