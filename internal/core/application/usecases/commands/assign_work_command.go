package commands

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrAssignWorkCommandIsNotConstructed = errors.New(
	"AssignWorkCommand must be created via NewAssignWorkCommand constructor",
)

// AssignWorkCommand requests one matching attempt on an assignment queue:
// pair the oldest pending request in the category with the least-loaded
// available worker of the matching role.
type AssignWorkCommand struct { //nolint:recvcheck //using for validation
	category assignment.Category

	guard guard.ConstructorGuard
}

// NewAssignWorkCommand creates a matching command for the given queue.
func NewAssignWorkCommand(category assignment.Category) (AssignWorkCommand, error) {
	command := AssignWorkCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setCategory(category); err != nil {
		return AssignWorkCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignWorkCommand) Validate() error {
	return c.guard.Validate(ErrAssignWorkCommandIsNotConstructed)
}

// Category returns the queue to match on.
func (c AssignWorkCommand) Category() assignment.Category {
	return c.category
}

func (c *AssignWorkCommand) setCategory(category assignment.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	c.category = category
	return nil
}
