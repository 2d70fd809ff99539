package watcher

import (
	"fmt"
	"strconv"

	"github.com/savrhq/order-notifications-api/models"
)

// clickAction is what the Flutter client expects on every notification tap.
const clickAction = "FLUTTER_NOTIFICATION_CLICK"

// orderNumberPrefixLen bounds how much of an order number shows up in message
// bodies.
const orderNumberPrefixLen = 8

type recipientKind int

const (
	recipientNone recipientKind = iota
	recipientCustomer
	recipientMerchant
)

type statusMessage struct {
	Title string
	Body  string
}

var statusMessages = map[string]statusMessage{
	models.OrderStatusConfirmed:          {Title: "Order Confirmed", Body: "Restaurant has confirmed your order"},
	models.OrderStatusPreparing:          {Title: "Order Preparing", Body: "Your order is being prepared"},
	models.OrderStatusReady:              {Title: "Order Ready!", Body: "Your order is ready for pickup"},
	models.OrderStatusCompleted:          {Title: "Order Completed", Body: "Thank you for your order!"},
	models.OrderStatusCancelled:          {Title: "Order Cancelled", Body: "Your order has been cancelled"},
	models.OrderStatusPickedUpByCustomer: {Title: "Pickup Confirmed", Body: "Customer confirmed pickup"},
}

// newOrderNotification builds the "new order" message for the merchant
// resolved by the caller
func newOrderNotification(order models.Order, merchantID string) models.NotificationRequest {
	amount := strconv.FormatFloat(order.TotalAmount, 'f', -1, 64)
	return models.NotificationRequest{
		UserID: merchantID,
		Title:  "New Order Received!",
		Body: fmt.Sprintf("Order #%s from %s - RM%s",
			truncateOrderNumber(order.OrderNumber), order.CustomerName, amount),
		Data: map[string]string{
			"type":         "new_order",
			"orderId":      order.ID,
			"restaurantId": order.RestaurantID,
			"customerName": order.CustomerName,
			"totalAmount":  amount,
			"orderNumber":  order.OrderNumber,
			"click_action": clickAction,
		},
	}
}

// statusNotification maps a status transition to message content and says who
// the recipient is. The caller resolves the actual user id; this function is
// free of I/O. Statuses outside the recipient branches produce recipientNone
// and no dispatch.
func statusNotification(oldStatus string, after models.Order) (models.NotificationRequest, recipientKind) {
	kind := statusRecipient(after.Status)
	if kind == recipientNone {
		return models.NotificationRequest{}, recipientNone
	}

	msg, ok := statusMessages[after.Status]
	if !ok {
		msg = statusMessage{Title: "Order Updated", Body: "Status: " + after.Status}
	}

	req := models.NotificationRequest{
		Title: msg.Title,
		Body:  fmt.Sprintf("%s - Order #%s", msg.Body, truncateOrderNumber(after.OrderNumber)),
	}
	switch kind {
	case recipientCustomer:
		req.Data = map[string]string{
			"type":         "order_status_update",
			"orderId":      after.ID,
			"oldStatus":    oldStatus,
			"newStatus":    after.Status,
			"orderNumber":  after.OrderNumber,
			"click_action": clickAction,
		}
	case recipientMerchant:
		req.Data = map[string]string{
			"type":         "customer_pickup_confirmation",
			"orderId":      after.ID,
			"customerName": after.CustomerName,
			"orderNumber":  after.OrderNumber,
			"click_action": clickAction,
		}
	}
	return req, kind
}

// statusRecipient says who gets notified for a given new status
func statusRecipient(status string) recipientKind {
	switch status {
	case models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled:
		return recipientCustomer
	case models.OrderStatusPickedUpByCustomer:
		return recipientMerchant
	default:
		return recipientNone
	}
}

func truncateOrderNumber(orderNumber string) string {
	if len(orderNumber) <= orderNumberPrefixLen {
		return orderNumber
	}
	return orderNumber[:orderNumberPrefixLen]
}
