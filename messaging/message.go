package messaging

// Static delivery policy applied to every outgoing notification. These are
// not derived from caller input.
const (
	defaultPriority  = "HIGH"
	defaultSound     = "default"
	defaultChannelID = "order_notifications"
	defaultIcon      = "ic_notification"
	defaultBadge     = 1
)

// Message is the provider-agnostic notification payload handed to a Sender.
type Message struct {
	Title     string
	Body      string
	Data      map[string]string
	Priority  string
	Sound     string
	ChannelID string
	Icon      string
	Badge     int
}

// NewMessage builds a normalized payload from a title, a body and an optional
// data map. Delivery hints are fixed policy: high priority, default sound, the
// order notification channel and a badge increment.
func NewMessage(title, body string, data map[string]string) Message {
	if data == nil {
		data = map[string]string{}
	}
	return Message{
		Title:     title,
		Body:      body,
		Data:      data,
		Priority:  defaultPriority,
		Sound:     defaultSound,
		ChannelID: defaultChannelID,
		Icon:      defaultIcon,
		Badge:     defaultBadge,
	}
}
