package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-reservation/utils"
)

// AvailabilityChecker decides whether a time interval on a table is
// free of blocking reservations. Pure read; the caller is responsible
// for holding the slot lock when the answer feeds a write.
type AvailabilityChecker struct {
	Store ReservationStore
}

func NewAvailabilityChecker(store ReservationStore) *AvailabilityChecker {
	return &AvailabilityChecker{Store: store}
}

// IsAvailable reports whether [startMin, endMin) on (tableID, date) is
// free. Intervals are half-open: a booking ending at 14:00 does not
// collide with one starting at 14:00. excludeID skips one record, used
// when re-checking an edit against its own prior slot.
func (a *AvailabilityChecker) IsAvailable(tableID, date string, startMin, endMin int, excludeID string) (bool, error) {
	if startMin >= endMin {
		return false, fmt.Errorf("start must be before end: %w", ErrValidation)
	}

	existing, err := a.Store.ForTableDate(tableID, date)
	if err != nil {
		return false, err
	}

	for _, res := range existing {
		if res.ID == excludeID {
			continue
		}
		if !res.Status.Blocking() {
			continue
		}
		s, err := utils.ParseClock(res.StartTime)
		if err != nil {
			return false, err
		}
		e, err := utils.ParseClock(res.EndTime)
		if err != nil {
			return false, err
		}
		if startMin < e && endMin > s {
			return false, nil
		}
	}
	return true, nil
}

// IsAvailableClock is IsAvailable for "HH:MM" inputs, as received from
// the HTTP layer.
func (a *AvailabilityChecker) IsAvailableClock(tableID, date, start, end, excludeID string) (bool, error) {
	startMin, err := utils.ParseClock(start)
	if err != nil {
		return false, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	endMin, err := utils.ParseClock(end)
	if err != nil {
		return false, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return a.IsAvailable(tableID, date, startMin, endMin, excludeID)
}
