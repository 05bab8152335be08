package queries

import (
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
)

// visibilityClause returns the extra WHERE condition restricting order reads
// to what the actor may see. Customers see their own orders. Drivers see
// orders assigned to them plus orders waiting for pickup, which they can
// still claim. Chefs and back office see the whole tenant, so no condition
// is added for them.
func visibilityClause(actor kernel.Actor) (string, []any) {
	switch actor.Role() {
	case kernel.ActorRoleCustomer:
		return "customer_id = ?", []any{actor.ID()}
	case kernel.ActorRoleDriver:
		return "(assigned_driver = ? OR status = ?)", []any{actor.ID(), order.Ready.String()}
	default:
		return "", nil
	}
}
