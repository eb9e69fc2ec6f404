package ports

import "context"

// Channel is the delivery medium of a notification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Notification is a message to the customer or an account holder.
type Notification struct {
	Channel   Channel
	Recipient string
	Subject   string
	Body      string
}

// Notifier dispatches notifications to customers and account holders.
//
// Dispatch is best effort and happens after the surrounding transaction has
// committed: a failed notification is logged and swallowed, never surfaced
// to the API caller and never a reason to roll back state.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}
