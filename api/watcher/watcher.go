package watcher

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/savrhq/order-notifications-api/databases"
	"github.com/savrhq/order-notifications-api/dispatch"
	"github.com/savrhq/order-notifications-api/models"
)

const (
	streamRetryDelay = 5 * time.Second
	lookupTimeout    = 10 * time.Second
)

// OrderWatcher consumes the order collection's change stream and turns
// creations and status transitions into push notifications. Every error path
// is logged and swallowed: a failed notification must never block the order
// change that produced it.
type OrderWatcher struct {
	Orders      databases.OrderDatabase
	Restaurants databases.RestaurantDatabase
	Dispatcher  *dispatch.Dispatcher
}

// NewOrderWatcher creates a watcher over the order change stream
func NewOrderWatcher(orders databases.OrderDatabase, restaurants databases.RestaurantDatabase, d *dispatch.Dispatcher) *OrderWatcher {
	return &OrderWatcher{
		Orders:      orders,
		Restaurants: restaurants,
		Dispatcher:  d,
	}
}

type orderChangeEvent struct {
	OperationType            string        `bson:"operationType"`
	FullDocument             models.Order  `bson:"fullDocument"`
	FullDocumentBeforeChange *models.Order `bson:"fullDocumentBeforeChange"`
	UpdateDescription        struct {
		UpdatedFields bson.M `bson:"updatedFields"`
	} `bson:"updateDescription"`
}

// Start runs the change stream until ctx is cancelled, reopening the stream
// after transient errors
func (w *OrderWatcher) Start(ctx context.Context) {
	zap.S().Info("order watcher started")
	for {
		if err := w.watch(ctx); err != nil {
			zap.S().Errorw("order change stream closed", "error", err)
		}
		select {
		case <-ctx.Done():
			zap.S().Info("order watcher stopped")
			return
		case <-time.After(streamRetryDelay):
		}
	}
}

func (w *OrderWatcher) watch(ctx context.Context) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"operationType": bson.M{"$in": []string{"insert", "update"}}}}},
	}
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	stream, err := w.Orders.Watch(ctx, pipeline, opts)
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var event orderChangeEvent
		if err := stream.Decode(&event); err != nil {
			zap.S().Errorw("failed to decode order change event", "error", err)
			continue
		}
		w.handleEvent(ctx, event)
	}
	return stream.Err()
}

func (w *OrderWatcher) handleEvent(ctx context.Context, event orderChangeEvent) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	switch event.OperationType {
	case "insert":
		w.handleOrderCreated(ctx, event.FullDocument)
	case "update":
		w.handleOrderUpdated(ctx, event)
	}
}

// handleOrderCreated notifies the owning merchant of a brand new order
func (w *OrderWatcher) handleOrderCreated(ctx context.Context, order models.Order) {
	zap.S().Infow("new order created", "orderId", order.ID, "restaurantId", order.RestaurantID)

	restaurant, err := w.Restaurants.FindOne(ctx, bson.M{"_id": order.RestaurantID})
	if err != nil {
		zap.S().Errorw("failed to get restaurant for new order",
			"orderId", order.ID,
			"restaurantId", order.RestaurantID,
			"error", err,
		)
		return
	}
	if restaurant.MerchantID == "" {
		zap.S().Errorw("no merchantId for restaurant", "restaurantId", order.RestaurantID)
		return
	}

	req := newOrderNotification(order, restaurant.MerchantID)
	if _, err := w.Dispatcher.Dispatch(ctx, req); err != nil {
		zap.S().Errorw("failed to notify merchant of new order",
			"orderId", order.ID,
			"merchantId", restaurant.MerchantID,
			"error", err,
		)
	}
}

// handleOrderUpdated notifies the customer, or the merchant for pickup
// confirmations, when an order's status actually changed
func (w *OrderWatcher) handleOrderUpdated(ctx context.Context, event orderChangeEvent) {
	after := event.FullDocument
	before := event.FullDocumentBeforeChange

	if before != nil && before.Status == after.Status {
		return
	}
	if before == nil {
		// no pre-image available, fall back to the update description
		if _, ok := event.UpdateDescription.UpdatedFields["status"]; !ok {
			return
		}
	}
	oldStatus := ""
	if before != nil {
		oldStatus = before.Status
	}
	zap.S().Infow("order status changed",
		"orderId", after.ID,
		"oldStatus", oldStatus,
		"newStatus", after.Status,
	)

	req, kind := statusNotification(oldStatus, after)
	switch kind {
	case recipientNone:
		return
	case recipientCustomer:
		req.UserID = after.CustomerID
	case recipientMerchant:
		restaurant, err := w.Restaurants.FindOne(ctx, bson.M{"_id": after.RestaurantID})
		if err != nil {
			zap.S().Errorw("failed to get restaurant for pickup confirmation",
				"orderId", after.ID,
				"restaurantId", after.RestaurantID,
				"error", err,
			)
			return
		}
		if restaurant.MerchantID == "" {
			zap.S().Errorw("no merchantId for restaurant", "restaurantId", after.RestaurantID)
			return
		}
		req.UserID = restaurant.MerchantID
	}

	if _, err := w.Dispatcher.Dispatch(ctx, req); err != nil {
		zap.S().Errorw("failed to dispatch status notification",
			"orderId", after.ID,
			"userId", req.UserID,
			"error", err,
		)
	}
}
