package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/savrhq/order-notifications-api/databases"
	"github.com/savrhq/order-notifications-api/messaging"
	"github.com/savrhq/order-notifications-api/models"
)

// tokenPrefixLen bounds how much of a device token shows up in results and
// log lines.
const tokenPrefixLen = 30

var (
	// ErrInvalidRequest means the caller omitted userId, title or body
	ErrInvalidRequest = errors.New("missing userId, title, or body")
	// ErrUserNotFound means no user document exists for the recipient
	ErrUserNotFound = errors.New("user not found")
	// ErrNoTokens means the user exists but has no registered device tokens
	ErrNoTokens = errors.New("no fcm tokens found")
)

// LiveBroadcaster mirrors a dispatched notification to any connected realtime
// session for the recipient. Best effort only.
type LiveBroadcaster interface {
	Push(userID string, req models.NotificationRequest)
}

// Dispatcher resolves a recipient's device tokens and fans a message out to
// each of them. The HTTP endpoint and the order watcher both call into it
// directly.
type Dispatcher struct {
	Users  databases.UserDatabase
	Sender messaging.Sender
	Live   LiveBroadcaster

	sent   atomic.Uint64
	failed atomic.Uint64
}

// Dispatch sends req to every device token registered for req.UserID,
// sequentially. A failed send is recorded and never stops delivery to the
// remaining tokens. The returned tally satisfies sent+failed == totalTokens.
func (d *Dispatcher) Dispatch(ctx context.Context, req models.NotificationRequest) (*models.DispatchResponse, error) {
	if req.UserID == "" || req.Title == "" || req.Body == "" {
		return nil, ErrInvalidRequest
	}

	dispatchID := uuid.New().String()
	zap.S().Infow("dispatching notification",
		"dispatchId", dispatchID,
		"userId", req.UserID,
		"title", req.Title,
	)

	user, err := d.Users.FindOne(ctx, bson.M{"_id": req.UserID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", req.UserID, err)
	}
	if len(user.FCMTokens) == 0 {
		return nil, ErrNoTokens
	}
	zap.S().Infow("found device tokens",
		"dispatchId", dispatchID,
		"userId", req.UserID,
		"tokenCount", len(user.FCMTokens),
	)

	msg := messaging.NewMessage(req.Title, req.Body, req.Data)

	results := make([]models.SendResult, 0, len(user.FCMTokens))
	sent, failed := 0, 0
	for _, token := range user.FCMTokens {
		messageID, err := d.Sender.Send(ctx, token, msg)
		if err != nil {
			failed++
			results = append(results, models.SendResult{
				Token:   truncateToken(token),
				Success: false,
				Error:   err.Error(),
			})
			zap.S().Warnw("failed to send to token",
				"dispatchId", dispatchID,
				"token", truncateToken(token),
				"error", err,
			)
			continue
		}
		sent++
		results = append(results, models.SendResult{
			Token:     truncateToken(token),
			Success:   true,
			MessageID: messageID,
		})
		zap.S().Debugw("sent to token",
			"dispatchId", dispatchID,
			"token", truncateToken(token),
			"messageId", messageID,
		)
	}

	d.sent.Add(uint64(sent))
	d.failed.Add(uint64(failed))
	zap.S().Infow("dispatch complete",
		"dispatchId", dispatchID,
		"userId", req.UserID,
		"sent", sent,
		"failed", failed,
	)

	if d.Live != nil {
		d.Live.Push(req.UserID, req)
	}

	return &models.DispatchResponse{
		Success:     true,
		Sent:        sent,
		Failed:      failed,
		TotalTokens: len(user.FCMTokens),
		Results:     results,
	}, nil
}

// Stats returns the running sent/failed tally since process start.
func (d *Dispatcher) Stats() (sent, failed uint64) {
	return d.sent.Load(), d.failed.Load()
}

func truncateToken(token string) string {
	if len(token) <= tokenPrefixLen {
		return token
	}
	return token[:tokenPrefixLen] + "..."
}
