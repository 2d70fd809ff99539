package models

// NotificationRequest is the inbound payload for the send endpoint, and the
// value the order watcher builds internally before dispatching.
type NotificationRequest struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// SendResult records the outcome for a single device token. Token carries a
// truncated prefix only, never the full token.
type SendResult struct {
	Token     string `json:"token"`
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DispatchResponse is the aggregate fan-out tally returned by the send
// endpoint. Sent + Failed always equals TotalTokens.
type DispatchResponse struct {
	Success     bool         `json:"success"`
	Sent        int          `json:"sent"`
	Failed      int          `json:"failed"`
	TotalTokens int          `json:"totalTokens"`
	Results     []SendResult `json:"results,omitempty"`
	Error       string       `json:"error,omitempty"`
}
