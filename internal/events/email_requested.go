package events

import "time"

const EmailRequestedTopic = "hr.notification.email.v1"

// EmailRequestedEvent is written to the outbox inside the originating
// transaction and delivered by the mailer after commit, so a slow mail
// provider can never hold a database transaction open.
type EmailRequestedEvent struct {
	EventType  string    `json:"event_type"`
	Kind       string    `json:"kind"`
	To         string    `json:"to"`
	Cc         []string  `json:"cc,omitempty"`
	Subject    string    `json:"subject"`
	HTML       string    `json:"html"`
	OccurredAt time.Time `json:"occurred_at"`
}
