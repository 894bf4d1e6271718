package ports

import (
	"context"

	"github.com/rentwheels/rental-api/internal/core/domain"
)

// AuditTrail accepts audit entries for asynchronous persistence. Record must
// not block the request path; delivery is best effort.
type AuditTrail interface {
	Record(entry domain.AuditEntry)
}

// AuditService processes queued audit entries.
type AuditService interface {
	Process(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}
