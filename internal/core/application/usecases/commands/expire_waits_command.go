package commands

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrExpireWaitsCommandIsNotConstructed = errors.New(
	"ExpireWaitsCommand must be created via NewExpireWaitsCommand constructor",
)

// ExpireWaitsCommand requests one sweep of the bounded wait timers: orders
// sitting in cooking or packing past their configured wait are advanced by
// the engine, and orders stuck in ready past the pickup window are reported.
type ExpireWaitsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireWaitsCommand creates a timer sweep command.
func NewExpireWaitsCommand() ExpireWaitsCommand {
	return ExpireWaitsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ExpireWaitsCommand) Validate() error {
	return c.guard.Validate(ErrExpireWaitsCommandIsNotConstructed)
}
