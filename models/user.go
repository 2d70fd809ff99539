package models

// User holds the structure for the user collection in mongo. Only the fields
// this service reads are mapped; the ordering system owns the rest of the
// document.
type User struct {
	ID        string   `json:"_id" bson:"_id"`
	FCMTokens []string `json:"fcmTokens" bson:"fcmTokens"`
}
