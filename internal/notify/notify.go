// Package notify carries coarse change signals per (table, session). A signal
// carries no row data; receivers re-fetch whatever they care about.
package notify

import "context"

type Event struct {
	Table     string `json:"table"`
	SessionID string `json:"session_id"`
}

type Subscription interface {
	Close() error
}

type Notifier interface {
	Publish(ctx context.Context, table, sessionID string) error
	// Subscribe calls fn for every change to any of tables within the session
	// until the returned Subscription is closed.
	Subscribe(ctx context.Context, sessionID string, tables []string, fn func(Event)) (Subscription, error)
}
