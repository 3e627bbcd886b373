package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrMonitorDeviationsCommandIsNotConstructed = errors.New(
	"MonitorDeviationsCommand must be created via NewMonitorDeviationsCommand constructor",
)

// MonitorDeviationsCommand triggers one sweep of the deviation monitor over
// every route in progress. Issued periodically by the background job.
type MonitorDeviationsCommand struct {
	guard guard.ConstructorGuard
}

// NewMonitorDeviationsCommand creates a command to trigger a monitor sweep.
func NewMonitorDeviationsCommand() MonitorDeviationsCommand {
	return MonitorDeviationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c MonitorDeviationsCommand) Validate() error {
	return c.guard.Validate(ErrMonitorDeviationsCommandIsNotConstructed)
}
