package domain

import "time"

// Audit actions and entities recorded for catalog and reservation mutations.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"

	AuditEntityVehicle = "vehicle"
	AuditEntityBooking = "booking"
)

// AuditEntry records who changed what, written asynchronously after the
// mutation commits.
type AuditEntry struct {
	ActorID   int64
	Action    string
	Entity    string
	EntityID  int64
	Timestamp time.Time
}
