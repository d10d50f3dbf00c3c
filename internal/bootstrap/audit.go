package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational lifecycle events. The default
// implementation writes structured log lines; a persistent sink can be
// swapped in without touching the server loop.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
