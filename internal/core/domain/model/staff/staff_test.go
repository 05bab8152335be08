package staff_test

import (
	"testing"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTenant(t *testing.T) kernel.TenantID {
	t.Helper()
	tenant, err := kernel.NewTenantID("200millas")
	require.NoError(t, err)
	return tenant
}

func availableChef(t *testing.T) *staff.StaffAvailability {
	t.Helper()
	worker, err := staff.NewStaffAvailability(
		"chef@200millas", testTenant(t), staff.RoleChef, staff.StatusAvailable)
	require.NoError(t, err)
	return worker
}

func TestParseRole(t *testing.T) {
	role, err := staff.ParseRole("chef")
	require.NoError(t, err)
	assert.Equal(t, staff.RoleChef, role)

	role, err = staff.ParseRole(" Driver ")
	require.NoError(t, err)
	assert.Equal(t, staff.RoleDriver, role)

	_, err = staff.ParseRole("customer")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	status, err := staff.ParseStatus("AVAILABLE")
	require.NoError(t, err)
	assert.Equal(t, staff.StatusAvailable, status)

	_, err = staff.ParseStatus("on_break")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewStaffAvailability(t *testing.T) {
	t.Run("valid_record", func(t *testing.T) {
		worker := availableChef(t)

		assert.Equal(t, "chef@200millas", worker.ID())
		assert.Equal(t, staff.RoleChef, worker.Role())
		assert.Equal(t, staff.StatusAvailable, worker.Status())
		assert.Nil(t, worker.CurrentOrderID())
		assert.Equal(t, 0, worker.OrdersCompleted())
		require.NoError(t, worker.Validate())
	})

	t.Run("requires_id", func(t *testing.T) {
		_, err := staff.NewStaffAvailability(
			"", testTenant(t), staff.RoleChef, staff.StatusAvailable)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_known_role", func(t *testing.T) {
		_, err := staff.NewStaffAvailability(
			"chef@200millas", testTenant(t), staff.RoleUnknown, staff.StatusAvailable)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStaffAvailability_Report(t *testing.T) {
	t.Run("available_to_offline_and_back", func(t *testing.T) {
		worker := availableChef(t)

		require.NoError(t, worker.Report(staff.StatusOffline))
		assert.Equal(t, staff.StatusOffline, worker.Status())

		require.NoError(t, worker.Report(staff.StatusAvailable))
		assert.Equal(t, staff.StatusAvailable, worker.Status())
	})

	t.Run("same_status_is_noop", func(t *testing.T) {
		worker := availableChef(t)
		require.NoError(t, worker.Report(staff.StatusAvailable))
	})

	t.Run("cannot_self_report_busy", func(t *testing.T) {
		worker := availableChef(t)
		require.ErrorIs(t, worker.Report(staff.StatusBusy), errs.ErrValueIsInvalid)
	})

	t.Run("busy_worker_cannot_leave", func(t *testing.T) {
		worker := availableChef(t)
		require.NoError(t, worker.Assign(kernel.NewUUID()))

		require.ErrorIs(t, worker.Report(staff.StatusOffline), staff.ErrStaffIsBusy)
		require.ErrorIs(t, worker.Report(staff.StatusAvailable), staff.ErrStaffIsBusy)
		assert.Equal(t, staff.StatusBusy, worker.Status())
	})
}

func TestStaffAvailability_AssignAndRelease(t *testing.T) {
	t.Run("assign_marks_busy_with_order", func(t *testing.T) {
		worker := availableChef(t)
		orderID := kernel.NewUUID()

		require.NoError(t, worker.Assign(orderID))

		assert.Equal(t, staff.StatusBusy, worker.Status())
		require.NotNil(t, worker.CurrentOrderID())
		assert.True(t, worker.CurrentOrderID().IsEqual(orderID))
	})

	t.Run("cannot_assign_busy_worker", func(t *testing.T) {
		worker := availableChef(t)
		require.NoError(t, worker.Assign(kernel.NewUUID()))

		require.ErrorIs(t, worker.Assign(kernel.NewUUID()), staff.ErrStaffIsNotAvailable)
	})

	t.Run("cannot_assign_offline_worker", func(t *testing.T) {
		worker := availableChef(t)
		require.NoError(t, worker.Report(staff.StatusOffline))

		require.ErrorIs(t, worker.Assign(kernel.NewUUID()), staff.ErrStaffIsNotAvailable)
	})

	t.Run("release_updates_counters", func(t *testing.T) {
		worker := availableChef(t)
		require.NoError(t, worker.Assign(kernel.NewUUID()))

		require.NoError(t, worker.Release(300, true))

		assert.Equal(t, staff.StatusAvailable, worker.Status())
		assert.Nil(t, worker.CurrentOrderID())
		assert.Equal(t, 1, worker.OrdersCompleted())
		assert.Equal(t, int64(300), worker.TotalBusySeconds())
		assert.InDelta(t, 300.0, worker.AverageBusySeconds(), 0.001)
	})

	t.Run("release_without_completion_keeps_count", func(t *testing.T) {
		worker := availableChef(t)
		require.NoError(t, worker.Assign(kernel.NewUUID()))

		require.NoError(t, worker.Release(120, false))

		assert.Equal(t, 0, worker.OrdersCompleted())
		assert.Equal(t, int64(120), worker.TotalBusySeconds())
		assert.Zero(t, worker.AverageBusySeconds())
	})

	t.Run("cannot_release_idle_worker", func(t *testing.T) {
		worker := availableChef(t)
		require.ErrorIs(t, worker.Release(10, true), staff.ErrStaffIsNotBusy)
	})
}

func TestRestoreStaffAvailability(t *testing.T) {
	t.Run("restores_counters", func(t *testing.T) {
		worker, err := staff.RestoreStaffAvailability(
			"driver@200millas", testTenant(t), staff.RoleDriver,
			staff.StatusAvailable, nil, 7, 2100)
		require.NoError(t, err)

		assert.Equal(t, 7, worker.OrdersCompleted())
		assert.InDelta(t, 300.0, worker.AverageBusySeconds(), 0.001)
	})

	t.Run("rejects_busy_without_order", func(t *testing.T) {
		_, err := staff.RestoreStaffAvailability(
			"driver@200millas", testTenant(t), staff.RoleDriver,
			staff.StatusBusy, nil, 0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_idle_with_order", func(t *testing.T) {
		orderID := kernel.NewUUID()
		_, err := staff.RestoreStaffAvailability(
			"driver@200millas", testTenant(t), staff.RoleDriver,
			staff.StatusAvailable, &orderID, 0, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
