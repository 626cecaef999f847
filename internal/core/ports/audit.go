package ports

import (
	"context"

	"github.com/freeedu/auth-service/internal/core/domain"
)

// AuditRecorder accepts auth events for asynchronous persistence. Record
// must not block the request path beyond queue backpressure.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists auth events to the audit store.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
