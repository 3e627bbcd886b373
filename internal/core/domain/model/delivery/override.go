package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// AdminOverride is the dispatcher-granted sequencing bypass attached to a
// single stop. An override releases the stop from the predecessor chain; it
// does not bypass the arrival geofence.
type AdminOverride struct {
	isOverridden bool
	reason       string
	actorID      *kernel.UUID
	overriddenAt *time.Time
}

// NewAdminOverride creates an active override entry granted by the given
// dispatcher. Reason must be non-empty.
func NewAdminOverride(actorID kernel.UUID, reason string, at time.Time) (AdminOverride, error) {
	if err := actorID.Validate(); err != nil {
		return AdminOverride{}, err
	}

	if reason == "" {
		return AdminOverride{}, errs.NewValueIsRequiredError("reason")
	}

	return AdminOverride{
		isOverridden: true,
		reason:       reason,
		actorID:      &actorID,
		overriddenAt: &at,
	}, nil
}

// RestoreAdminOverride reconstructs an override sub-record from persistent
// storage.
func RestoreAdminOverride(
	isOverridden bool, reason string, actorID *kernel.UUID, overriddenAt *time.Time,
) AdminOverride {
	return AdminOverride{
		isOverridden: isOverridden,
		reason:       reason,
		actorID:      actorID,
		overriddenAt: overriddenAt,
	}
}

// IsOverridden reports whether an override is active for the stop.
func (o AdminOverride) IsOverridden() bool { return o.isOverridden }

// Reason returns the dispatcher's stated reason.
func (o AdminOverride) Reason() string { return o.reason }

// ActorID returns the dispatcher who granted the override, or nil.
func (o AdminOverride) ActorID() *kernel.UUID { return o.actorID }

// OverriddenAt returns when the override was granted, or nil.
func (o AdminOverride) OverriddenAt() *time.Time { return o.overriddenAt }
