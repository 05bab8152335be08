// Package order provides domain entities and business logic for food-order
// management. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that owns order identity, line items, and lifecycle
//   - Status: A state machine with a central transition table enforcing the workflow
//   - Item: A value object for one ordered line with a captured unit price
//
// Key business rules:
//   - Orders belong to exactly one tenant and hold at least one line item
//   - The total is derived from items once at creation and never recomputed
//   - Status follows the linear workflow pending -> confirmed -> cooking ->
//     packing -> ready -> in_delivery -> delivered, with failed reachable
//     from any non-terminal state and cancel-pickup as the single backward edge
//   - Chef and driver assignments must be consistent with the status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
