package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/savrhq/order-notifications-api/api"
	"github.com/savrhq/order-notifications-api/config"
	"github.com/savrhq/order-notifications-api/dispatch"
	"github.com/savrhq/order-notifications-api/models"
)

// Notification exported for testing purposes
type Notification struct {
	Dispatcher *dispatch.Dispatcher
}

// SendNotificationHandler fans a notification out to every device token
// registered for the requested user and returns the aggregate tally
func (n Notification) SendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req models.NotificationRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	resp, err := n.Dispatcher.Dispatch(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrInvalidRequest):
			config.ErrorStatus("invalid notification request", http.StatusBadRequest, w, err)
		case errors.Is(err, dispatch.ErrUserNotFound):
			config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		case errors.Is(err, dispatch.ErrNoTokens):
			config.ErrorStatus("no device tokens registered", http.StatusBadRequest, w, err)
		default:
			config.ErrorStatus("failed to dispatch notification", http.StatusInternalServerError, w, err)
		}
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
