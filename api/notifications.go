package api

import (
	"net/http"

	"github.com/wijdennerhouma/App-JobConnect/internal/models"
	"github.com/wijdennerhouma/App-JobConnect/pkg/repository"
)

type NotificationsHandler struct {
	notifRepo repository.NotificationRepo
}

// NewNotificationsHandler creates a new NotificationsHandler with required dependencies.
func NewNotificationsHandler(nr repository.NotificationRepo) *NotificationsHandler {
	return &NotificationsHandler{notifRepo: nr}
}

// List returns the caller's notifications, newest first.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notifRepo.ListNotificationsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "Error loading notifications", http.StatusInternalServerError)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	writeJSON(w, notifications, http.StatusOK)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	n, err := h.notifRepo.MarkNotificationRead(r.Context(), id)
	if err != nil {
		http.Error(w, "Error updating notification", http.StatusInternalServerError)
		return
	}
	if n == nil {
		http.Error(w, "Notification not found", http.StatusNotFound)
		return
	}

	writeJSON(w, n, http.StatusOK)
}
