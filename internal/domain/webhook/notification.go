package webhook

import (
	"context"
	"time"
)

// Notification is the provider-independent sync outcome handed to the
// delivery path
type Notification struct {
	StoreName   string
	SyncType    string
	Status      string
	ItemsTotal  int
	ItemsSynced int
	ItemsFailed int
	ErrorLog    string
	Duration    time.Duration
	OccurredAt  time.Time
}

// Succeeded reports whether the notified run completed without failures
func (n Notification) Succeeded() bool {
	return n.Status == "SUCCESS"
}

// Dispatcher renders and delivers one notification to one endpoint,
// returning the log of exactly that attempt. Delivery failures are
// captured in the log, never returned.
type Dispatcher interface {
	Dispatch(ctx context.Context, wh *Webhook, n Notification) *WebhookLog
}
