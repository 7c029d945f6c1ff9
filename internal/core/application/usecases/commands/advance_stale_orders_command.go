package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var (
	ErrAdvanceStaleOrdersCommandIsNotConstructed = errors.New(
		"AdvanceStaleOrdersCommand must be created via NewAdvanceStaleOrdersCommand constructor",
	)
)

// AdvanceStaleOrdersCommand triggers one scan for orders stuck in the
// waiting status longer than the configured delay. This is a parameterless
// command; the waiting status, target status and delay are configured on
// the handler.
type AdvanceStaleOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAdvanceStaleOrdersCommand creates a command to run one advancement scan.
func NewAdvanceStaleOrdersCommand() AdvanceStaleOrdersCommand {
	return AdvanceStaleOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceStaleOrdersCommandIsNotConstructed if validation fails.
func (c AdvanceStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStaleOrdersCommandIsNotConstructed)
}
