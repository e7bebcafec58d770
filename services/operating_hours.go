package services

import (
	"os"
	"strconv"

	"github.com/yeremiapane/restaurant-reservation/utils"
)

// OperatingHours describes the restaurant's daily service window and
// the granularity of the visualization grid.
type OperatingHours struct {
	OpenMin  int
	CloseMin int
	SlotMin  int
}

// DefaultOperatingHours reads OPEN_TIME / CLOSE_TIME / SLOT_MINUTES
// from the environment, falling back to 10:00-22:00 in 30 minute slots.
func DefaultOperatingHours() OperatingHours {
	hours := OperatingHours{OpenMin: 10 * 60, CloseMin: 22 * 60, SlotMin: 30}

	if v := os.Getenv("OPEN_TIME"); v != "" {
		if min, err := utils.ParseClock(v); err == nil {
			hours.OpenMin = min
		}
	}
	if v := os.Getenv("CLOSE_TIME"); v != "" {
		if min, err := utils.ParseClock(v); err == nil && min > hours.OpenMin {
			hours.CloseMin = min
		}
	}
	if v := os.Getenv("SLOT_MINUTES"); v != "" {
		if min, err := strconv.Atoi(v); err == nil && min > 0 {
			hours.SlotMin = min
		}
	}
	return hours
}

// Contains reports whether [startMin, endMin) falls inside the window.
func (h OperatingHours) Contains(startMin, endMin int) bool {
	return startMin >= h.OpenMin && endMin <= h.CloseMin
}
