package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/savrhq/order-notifications-api/api/handlers"
	"github.com/savrhq/order-notifications-api/databases"
	"github.com/savrhq/order-notifications-api/databases/mocks"
	"github.com/savrhq/order-notifications-api/dispatch"
	"github.com/savrhq/order-notifications-api/messaging"
	"github.com/savrhq/order-notifications-api/models"
)

// stubSender answers every send with a canned outcome per token
type stubSender struct {
	calls int
	fail  map[string]string
}

func (s *stubSender) Send(ctx context.Context, token string, msg messaging.Message) (string, error) {
	s.calls++
	if errMsg, ok := s.fail[token]; ok {
		return "", errors.New(errMsg)
	}
	return "projects/savr/messages/" + token, nil
}

// newNotificationHandler wires a handler whose user collection answers with
// decodeErr or, when decodeErr is nil, a user carrying the given tokens
func newNotificationHandler(tokens []string, decodeErr error, sender *stubSender) handlers.Notification {
	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &mocks.DatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	call := singleResultHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(decodeErr)
	if decodeErr == nil {
		call.Run(func(args mock.Arguments) {
			arg := args.Get(0).(**models.User)
			(*arg).ID = "u1"
			(*arg).FCMTokens = tokens
		})
	}
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*mocks.DatabaseHelper).On("Collection", "users").Return(conn)

	return handlers.Notification{
		Dispatcher: &dispatch.Dispatcher{
			Users:  databases.NewUserDatabase(db),
			Sender: sender,
		},
	}
}

func postNotification(t *testing.T, n handlers.Notification, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", "/api/v1/notifications/send", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	http.HandlerFunc(n.SendNotificationHandler).ServeHTTP(rr, req)
	return rr
}

func TestNotification_SendHandlerBadJSON(t *testing.T) {
	sender := &stubSender{}
	n := newNotificationHandler(nil, nil, sender)

	rr := postNotification(t, n, []byte(`{"userId": "u1",`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to decode request")
	assert.Zero(t, sender.calls)
}

func TestNotification_SendHandlerMissingFields(t *testing.T) {
	sender := &stubSender{}
	n := newNotificationHandler(nil, nil, sender)

	for _, body := range []string{
		`{"title": "t", "body": "b"}`,
		`{"userId": "u1", "body": "b"}`,
		`{"userId": "u1", "title": "t"}`,
	} {
		rr := postNotification(t, n, []byte(body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success": false`)
	}
	assert.Zero(t, sender.calls)
}

func TestNotification_SendHandlerUserNotFound(t *testing.T) {
	sender := &stubSender{}
	n := newNotificationHandler(nil, mongo.ErrNoDocuments, sender)

	rr := postNotification(t, n, []byte(`{"userId": "ghost", "title": "t", "body": "b"}`))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "user not found")
	assert.Zero(t, sender.calls)
}

func TestNotification_SendHandlerNoTokens(t *testing.T) {
	sender := &stubSender{}
	n := newNotificationHandler([]string{}, nil, sender)

	rr := postNotification(t, n, []byte(`{"userId": "u1", "title": "t", "body": "b"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no fcm tokens found")
	assert.Zero(t, sender.calls)
}

func TestNotification_SendHandlerUnexpectedError(t *testing.T) {
	sender := &stubSender{}
	n := newNotificationHandler(nil, errors.New("connection reset"), sender)

	rr := postNotification(t, n, []byte(`{"userId": "u1", "title": "t", "body": "b"}`))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Zero(t, sender.calls)
}

func TestNotification_SendHandlerPartialFailure(t *testing.T) {
	sender := &stubSender{fail: map[string]string{"tokB": "invalid-token"}}
	n := newNotificationHandler([]string{"tokA", "tokB"}, nil, sender)

	rr := postNotification(t, n, []byte(`{"userId": "u1", "title": "Order Ready!", "body": "Your order is ready for pickup", "data": {"orderId": "o1"}}`))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.DispatchResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 2, resp.TotalTokens)
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, 2, sender.calls)
}
