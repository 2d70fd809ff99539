package models

// Order statuses written by the ordering system. This service only observes
// them; it never transitions an order itself.
const (
	OrderStatusCreated            = "created"
	OrderStatusConfirmed          = "confirmed"
	OrderStatusPreparing          = "preparing"
	OrderStatusReady              = "ready"
	OrderStatusCompleted          = "completed"
	OrderStatusCancelled          = "cancelled"
	OrderStatusPickedUpByCustomer = "picked_up_by_customer"
)

// Order holds the structure for the order collection in mongo
type Order struct {
	ID           string  `json:"_id" bson:"_id"`
	RestaurantID string  `json:"restaurantId" bson:"restaurantId"`
	CustomerID   string  `json:"customerId" bson:"customerId"`
	CustomerName string  `json:"customerName" bson:"customerName"`
	OrderNumber  string  `json:"orderNumber" bson:"orderNumber"`
	TotalAmount  float64 `json:"totalAmount" bson:"totalAmount"`
	Status       string  `json:"status" bson:"status"`
}
