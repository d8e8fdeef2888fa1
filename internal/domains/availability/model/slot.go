package model

import (
	"salon/config"
	"salon/shared/clock"
	"slices"
)

const DefaultStepMinutes = 15

// StepMinutes is the configured grid step, DefaultStepMinutes when unset.
func StepMinutes(cfg *config.Config) int {
	if cfg.Booking.SlotStepMinutes > 0 {
		return cfg.Booking.SlotStepMinutes
	}

	return DefaultStepMinutes
}

// Slot is a start time together with the masters that have it free, in candidate order.
type Slot struct {
	Start     clock.Clock `json:"time"`
	MasterIDs []string    `json:"master_ids"`
}

// Grid lists the starts of window, stepping by step minutes from its open time, at which a
// booking of duration minutes ends by closing time and overlaps no busy range. A duration that
// fills the whole window or more yields nothing.
func Grid(window clock.Range, busy []clock.Range, duration, step int) []clock.Clock {
	slots := []clock.Clock{}

	if !bookable(window, duration, step) {
		return slots
	}

	for start := window.Start; start.Add(duration) <= window.End; start = start.Add(step) {
		if isFree(clock.NewRange(start, duration), busy) {
			slots = append(slots, start)
		}
	}

	return slots
}

// Fits reports whether start would be listed by Grid for the same arguments.
func Fits(window clock.Range, busy []clock.Range, start clock.Clock, duration, step int) bool {
	if !bookable(window, duration, step) {
		return false
	}

	candidate := clock.NewRange(start, duration)

	if !window.Contains(candidate) || (start-window.Start).Minutes()%step != 0 {
		return false
	}

	return isFree(candidate, busy)
}

// Merge unions per-master slot lists. slots[i] belongs to masterIDs[i].
func Merge(masterIDs []string, slots [][]clock.Clock) []Slot {
	byStart := map[clock.Clock][]string{}

	for i, masterID := range masterIDs {
		for _, start := range slots[i] {
			byStart[start] = append(byStart[start], masterID)
		}
	}

	merged := make([]Slot, 0, len(byStart))
	for start, masters := range byStart {
		merged = append(merged, Slot{Start: start, MasterIDs: masters})
	}

	slices.SortFunc(merged, func(a, b Slot) int {
		return a.Start.Minutes() - b.Start.Minutes()
	})

	return merged
}

func bookable(window clock.Range, duration, step int) bool {
	return duration > 0 && step > 0 && duration < window.Minutes()
}

func isFree(candidate clock.Range, busy []clock.Range) bool {
	return !slices.ContainsFunc(busy, candidate.Overlaps)
}
