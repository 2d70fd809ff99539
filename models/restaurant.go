package models

// Restaurant holds the structure for the restaurant collection in mongo.
// MerchantID is the user id of the business operator, not the restaurant id.
type Restaurant struct {
	ID         string `json:"_id" bson:"_id"`
	MerchantID string `json:"merchantId" bson:"merchantId"`
}
