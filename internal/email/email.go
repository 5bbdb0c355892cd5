package email

import "context"

// Message is a single outbound mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers messages. The auth service depends only on this
// contract, not on the transport behind it.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
