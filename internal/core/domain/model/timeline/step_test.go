package timeline_test

import (
	"testing"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
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

func TestNewWorkflowStep(t *testing.T) {
	t.Run("opens_step", func(t *testing.T) {
		startedAt := time.Now()
		step, err := timeline.NewWorkflowStep(
			kernel.NewUUID(), testTenant(t), 1, order.Pending,
			timeline.SystemActor, startedAt, "")
		require.NoError(t, err)

		assert.Equal(t, 1, step.StepNumber())
		assert.Equal(t, order.Pending, step.Status())
		assert.Equal(t, timeline.SystemActor, step.AssignedTo())
		assert.True(t, step.IsOpen())
		assert.Nil(t, step.DurationSeconds())
		require.NoError(t, step.Validate())
	})

	t.Run("requires_positive_step_number", func(t *testing.T) {
		_, err := timeline.NewWorkflowStep(
			kernel.NewUUID(), testTenant(t), 0, order.Pending,
			timeline.SystemActor, time.Now(), "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires_actor", func(t *testing.T) {
		_, err := timeline.NewWorkflowStep(
			kernel.NewUUID(), testTenant(t), 1, order.Pending, "", time.Now(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_known_status", func(t *testing.T) {
		_, err := timeline.NewWorkflowStep(
			kernel.NewUUID(), testTenant(t), 1, order.Unknown,
			timeline.SystemActor, time.Now(), "")
		require.Error(t, err)
	})
}

func TestWorkflowStep_Close(t *testing.T) {
	startedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("close_records_duration", func(t *testing.T) {
		step, err := timeline.NewWorkflowStep(
			kernel.NewUUID(), testTenant(t), 3, order.Cooking,
			"chef@200millas", startedAt, "")
		require.NoError(t, err)

		require.NoError(t, step.Close(startedAt.Add(5*time.Minute)))

		assert.False(t, step.IsOpen())
		require.NotNil(t, step.DurationSeconds())
		assert.Equal(t, int64(300), *step.DurationSeconds())
	})

	t.Run("double_close_rejected", func(t *testing.T) {
		step, err := timeline.NewWorkflowStep(
			kernel.NewUUID(), testTenant(t), 3, order.Cooking,
			"chef@200millas", startedAt, "")
		require.NoError(t, err)
		require.NoError(t, step.Close(startedAt.Add(time.Minute)))

		require.ErrorIs(t, step.Close(startedAt.Add(2*time.Minute)), timeline.ErrStepIsAlreadyClosed)
		assert.Equal(t, int64(60), *step.DurationSeconds())
	})
}

func TestRestoreWorkflowStep(t *testing.T) {
	startedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	completedAt := startedAt.Add(90 * time.Second)

	step, err := timeline.RestoreWorkflowStep(
		kernel.NewUUID(), testTenant(t), 2, order.Confirmed,
		timeline.SystemActor, startedAt, &completedAt, "auto-confirmed")
	require.NoError(t, err)

	assert.False(t, step.IsOpen())
	assert.Equal(t, "auto-confirmed", step.Notes())
	require.NotNil(t, step.DurationSeconds())
	assert.Equal(t, int64(90), *step.DurationSeconds())
}
