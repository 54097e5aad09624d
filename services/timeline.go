package services

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/kendall-kelly/furniture-portal-api/models"
)

// ActorSystem is recorded on log entries generated without a user
const ActorSystem = "system"

// ProgressPercentage returns the completion percentage of a stage: (index+1) / stages * 100
func ProgressPercentage(status models.FurnitureStatus) (float64, error) {
	idx := models.StageIndex(status)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStage, status)
	}
	return float64(idx+1) * 100 / float64(len(models.StageOrder)), nil
}

// Timeline maintains the manufacturing log of furniture items
type Timeline struct {
	now    func() time.Time
	jitter func() int
}

// NewTimeline creates a timeline engine. nil now uses time.Now; nil jitter draws 2..6 days.
func NewTimeline(now func() time.Time, jitter func() int) *Timeline {
	if now == nil {
		now = time.Now
	}
	if jitter == nil {
		jitter = func() int { return rand.IntN(5) + 2 }
	}
	return &Timeline{now: now, jitter: jitter}
}

// Now returns the engine clock in UTC
func (t *Timeline) Now() time.Time {
	return t.now().UTC()
}

// SeedInitialLog builds one entry per stage up to and including status. Past stages are
// dated roughly a week apart; the current stage is dated today.
func (t *Timeline) SeedInitialLog(status models.FurnitureStatus) ([]models.ManufacturingLogEntry, error) {
	current := models.StageIndex(status)
	if current < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, status)
	}

	today := t.Now()
	log := make([]models.ManufacturingLogEntry, 0, current+1)
	for i := 0; i <= current; i++ {
		daysBack := (current - i) * 7
		if i != current {
			daysBack += t.jitter()
		}
		stage := models.StageOrder[i]
		log = append(log, models.ManufacturingLogEntry{
			Stage: stage,
			Date:  today.AddDate(0, 0, -daysBack),
			Notes: fmt.Sprintf("Stage %s started.", strings.ToLower(string(stage))),
			Actor: ActorSystem,
		})
	}
	return log, nil
}

// RecordStatusChange moves item to newStatus. It refreshes the existing entry for that stage
// or appends one, then sorts the log into stage order. Entries for later stages are kept when
// moving backward. Returns false when the status did not change.
func (t *Timeline) RecordStatusChange(item *models.FurnitureItem, newStatus models.FurnitureStatus, actor, notes string) bool {
	if item.Status == newStatus {
		return false
	}

	at := t.Now()
	refreshed := false
	for i := range item.ManufacturingLog {
		if item.ManufacturingLog[i].Stage == newStatus {
			item.ManufacturingLog[i].Date = at
			item.ManufacturingLog[i].Actor = actor
			item.ManufacturingLog[i].Notes = statusNote(newStatus, notes, true)
			refreshed = true
			break
		}
	}
	if !refreshed {
		item.ManufacturingLog = append(item.ManufacturingLog, models.ManufacturingLogEntry{
			Stage: newStatus,
			Date:  at,
			Notes: statusNote(newStatus, notes, false),
			Actor: actor,
		})
	}

	sort.SliceStable(item.ManufacturingLog, func(i, j int) bool {
		return models.StageIndex(item.ManufacturingLog[i].Stage) < models.StageIndex(item.ManufacturingLog[j].Stage)
	})
	item.Status = newStatus
	return true
}

func statusNote(status models.FurnitureStatus, notes string, refreshed bool) string {
	if notes != "" {
		return notes
	}
	if refreshed {
		return fmt.Sprintf("Status updated to %s (existing entry refreshed).", status)
	}
	return fmt.Sprintf("Status updated to %s.", status)
}
