package services

import (
	"testing"

	"github.com/kendall-kelly/furniture-portal-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		status   models.FurnitureStatus
		expected float64
	}{
		{"first stage", models.StatusPaymentApproved, 10},
		{"production started", models.StatusProductionStarted, 50},
		{"ready for delivery", models.StatusReadyForDelivery, 60},
		{"last stage", models.StatusCompleted, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProgressPercentage(tt.status)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}
}

func TestProgressPercentage_Monotonic(t *testing.T) {
	previous := 0.0
	for _, stage := range models.StageOrder {
		got, err := ProgressPercentage(stage)
		require.NoError(t, err)
		assert.Greater(t, got, previous, "progress should increase at %s", stage)
		previous = got
	}
}

func TestProgressPercentage_UnknownStatus(t *testing.T) {
	_, err := ProgressPercentage(models.FurnitureStatus("Shipped"))
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestSeedInitialLog(t *testing.T) {
	timeline := NewTimeline(fixedClock, fixedJitter)

	log, err := timeline.SeedInitialLog(models.StatusDescriptiveApproved)
	require.NoError(t, err)
	require.Len(t, log, 4)

	for i, entry := range log {
		assert.Equal(t, models.StageOrder[i], entry.Stage)
		assert.Equal(t, ActorSystem, entry.Actor)
	}
	// (3-0)*7 + 3 days back for the first stage, today for the current one
	assert.Equal(t, fixedNow.AddDate(0, 0, -24), log[0].Date)
	assert.Equal(t, fixedNow.AddDate(0, 0, -10), log[2].Date)
	assert.Equal(t, fixedNow, log[3].Date)
	assert.Equal(t, "Stage payment approved started.", log[0].Notes)

	for i := 1; i < len(log); i++ {
		assert.True(t, log[i-1].Date.Before(log[i].Date), "log dates should ascend")
	}

	_, err = timeline.SeedInitialLog(models.FurnitureStatus("bogus"))
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestRecordStatusChange(t *testing.T) {
	timeline := NewTimeline(fixedClock, fixedJitter)

	newItem := func(t *testing.T, status models.FurnitureStatus) *models.FurnitureItem {
		log, err := timeline.SeedInitialLog(status)
		require.NoError(t, err)
		return &models.FurnitureItem{ID: "f1", Status: status, ManufacturingLog: log}
	}

	t.Run("unchanged status is a no-op", func(t *testing.T) {
		item := newItem(t, models.StatusProductionStarted)
		before := len(item.ManufacturingLog)

		assert.False(t, timeline.RecordStatusChange(item, models.StatusProductionStarted, "admin1", ""))
		assert.Len(t, item.ManufacturingLog, before)
	})

	t.Run("forward move appends entry", func(t *testing.T) {
		item := newItem(t, models.StatusProductionStarted)

		assert.True(t, timeline.RecordStatusChange(item, models.StatusReadyForDelivery, "admin1", ""))
		require.Len(t, item.ManufacturingLog, 6)
		last := item.ManufacturingLog[5]
		assert.Equal(t, models.StatusReadyForDelivery, last.Stage)
		assert.Equal(t, "admin1", last.Actor)
		assert.Equal(t, fixedNow, last.Date)
		assert.Equal(t, models.StatusReadyForDelivery, item.Status)
	})

	t.Run("skipping stages keeps stage order", func(t *testing.T) {
		item := newItem(t, models.StatusPaymentApproved)

		timeline.RecordStatusChange(item, models.StatusAssemblyReview, "admin1", "")
		timeline.RecordStatusChange(item, models.StatusFinalMeasurementDone, "admin1", "")

		stages := []models.FurnitureStatus{}
		for _, entry := range item.ManufacturingLog {
			stages = append(stages, entry.Stage)
		}
		assert.Equal(t, []models.FurnitureStatus{
			models.StatusPaymentApproved,
			models.StatusFinalMeasurementDone,
			models.StatusAssemblyReview,
		}, stages)
	})

	t.Run("backward move refreshes existing entry and keeps later ones", func(t *testing.T) {
		item := newItem(t, models.StatusReadyForDelivery)
		before := len(item.ManufacturingLog)

		assert.True(t, timeline.RecordStatusChange(item, models.StatusDescriptiveProduction, "admin1", "Rework requested"))
		assert.Len(t, item.ManufacturingLog, before, "no entries are pruned")
		refreshed := item.ManufacturingLog[2]
		assert.Equal(t, models.StatusDescriptiveProduction, refreshed.Stage)
		assert.Equal(t, fixedNow, refreshed.Date)
		assert.Equal(t, "Rework requested", refreshed.Notes)
		assert.Equal(t, "admin1", refreshed.Actor)
		assert.Equal(t, models.StatusReadyForDelivery, item.ManufacturingLog[before-1].Stage)
		assert.Equal(t, models.StatusDescriptiveProduction, item.Status)
	})
}
