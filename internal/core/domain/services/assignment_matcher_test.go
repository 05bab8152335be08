package services_test

import (
	"testing"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorker(t *testing.T, id string, role staff.Role, status staff.Status, completed int) *staff.StaffAvailability {
	t.Helper()
	tenant, err := kernel.NewTenantID("200millas")
	require.NoError(t, err)
	worker, err := staff.RestoreStaffAvailability(id, tenant, role, status, nil, completed, 0)
	require.NoError(t, err)
	return worker
}

func cookingRequest(t *testing.T) *assignment.Request {
	t.Helper()
	tenant, err := kernel.NewTenantID("200millas")
	require.NoError(t, err)
	request, err := assignment.NewRequest(kernel.NewUUID(), tenant, assignment.CategoryCooking, time.Now())
	require.NoError(t, err)
	return request
}

func TestAssignmentMatcher_Match(t *testing.T) {
	matcher := services.NewAssignmentMatcher()

	t.Run("should pick least loaded worker of matching role", func(t *testing.T) {
		busy := testWorker(t, "alice@200millas", staff.RoleChef, staff.StatusAvailable, 5)
		idle := testWorker(t, "bob@200millas", staff.RoleChef, staff.StatusAvailable, 2)
		driver := testWorker(t, "carol@200millas", staff.RoleDriver, staff.StatusAvailable, 0)

		result, err := matcher.Match(cookingRequest(t), []*staff.StaffAvailability{busy, idle, driver})

		require.NoError(t, err)
		assert.Equal(t, "bob@200millas", result.ID())
	})

	t.Run("should break ties on smallest staff id", func(t *testing.T) {
		second := testWorker(t, "bob@200millas", staff.RoleChef, staff.StatusAvailable, 3)
		first := testWorker(t, "alice@200millas", staff.RoleChef, staff.StatusAvailable, 3)

		result, err := matcher.Match(cookingRequest(t), []*staff.StaffAvailability{second, first})

		require.NoError(t, err)
		assert.Equal(t, "alice@200millas", result.ID())
	})

	t.Run("should skip busy and offline workers", func(t *testing.T) {
		tenant, err := kernel.NewTenantID("200millas")
		require.NoError(t, err)
		heldOrder := kernel.NewUUID()
		busy, err := staff.RestoreStaffAvailability(
			"alice@200millas", tenant, staff.RoleChef, staff.StatusBusy, &heldOrder, 0, 0)
		require.NoError(t, err)
		offline := testWorker(t, "bob@200millas", staff.RoleChef, staff.StatusOffline, 0)

		_, err = matcher.Match(cookingRequest(t), []*staff.StaffAvailability{busy, offline})

		require.ErrorIs(t, err, services.ErrWorkerNotFound)
	})

	t.Run("should fail when no workers provided", func(t *testing.T) {
		_, err := matcher.Match(cookingRequest(t), nil)
		require.ErrorIs(t, err, services.ErrWorkerNotFound)
	})

	t.Run("should reject unconstructed worker", func(t *testing.T) {
		_, err := matcher.Match(cookingRequest(t), []*staff.StaffAvailability{{}})
		require.Error(t, err)
	})
}
