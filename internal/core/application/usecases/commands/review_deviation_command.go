package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReviewDeviationCommandIsNotConstructed = errors.New(
	"ReviewDeviationCommand must be created via NewReviewDeviationCommand constructor",
)

// ReviewDeviationCommand marks a recorded deviation as reviewed by a
// dispatcher, with optional notes on the outcome.
type ReviewDeviationCommand struct { //nolint:recvcheck //using for validation
	recordID kernel.UUID
	actorID  kernel.UUID
	notes    string

	guard guard.ConstructorGuard
}

// NewReviewDeviationCommand creates a command to review a deviation record.
func NewReviewDeviationCommand(
	recordID kernel.UUID, actorID kernel.UUID, notes string,
) (ReviewDeviationCommand, error) {
	command := ReviewDeviationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRecordID(recordID),
		command.setActorID(actorID),
	); err != nil {
		return ReviewDeviationCommand{}, err
	}

	command.notes = notes
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewDeviationCommand) Validate() error {
	return c.guard.Validate(ErrReviewDeviationCommandIsNotConstructed)
}

// RecordID returns the deviation record under review.
func (c ReviewDeviationCommand) RecordID() kernel.UUID { return c.recordID }

// ActorID returns the reviewing dispatcher.
func (c ReviewDeviationCommand) ActorID() kernel.UUID { return c.actorID }

// Notes returns the review notes.
func (c ReviewDeviationCommand) Notes() string { return c.notes }

func (c *ReviewDeviationCommand) setRecordID(recordID kernel.UUID) error {
	if err := recordID.Validate(); err != nil {
		return err
	}

	c.recordID = recordID
	return nil
}

func (c *ReviewDeviationCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
