package services

import (
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// GridCell places one reservation on the schedule grid. Row is the
// zero-based index into Tables; StartCol is offset by one for the
// leading table-label column.
type GridCell struct {
	ReservationID string                   `json:"reservation_id"`
	TableID       string                   `json:"table_id"`
	GuestName     string                   `json:"guest_name"`
	Status        models.ReservationStatus `json:"status"`
	Row           int                      `json:"row"`
	StartCol      int                      `json:"start_col"`
	Span          int                      `json:"span"`
}

// GridLayout is the rendered schedule for one floor and date.
type GridLayout struct {
	Floor  string         `json:"floor"`
	Date   string         `json:"date"`
	Slots  []string       `json:"slots"`
	Tables []models.Table `json:"tables"`
	Cells  []GridCell     `json:"cells"`
}

// ScheduleGrid maps reservations onto a fixed time-slot grid for
// visualization. Read-only; it never mutates the store and is safe to
// run against a stale snapshot.
type ScheduleGrid struct {
	Store  ReservationStore
	Tables *TableRegistry
	Hours  OperatingHours
}

func NewScheduleGrid(store ReservationStore, tables *TableRegistry, hours OperatingHours) *ScheduleGrid {
	return &ScheduleGrid{Store: store, Tables: tables, Hours: hours}
}

// Slots returns the grid's column labels, one per slot across the
// operating window.
func (g *ScheduleGrid) Slots() []string {
	var slots []string
	for min := g.Hours.OpenMin; min < g.Hours.CloseMin; min += g.Hours.SlotMin {
		slots = append(slots, utils.FormatClock(min))
	}
	return slots
}

// Layout computes cell placement for every non-withdrawn reservation on
// the floor and date. Layout is total: times that fall between tick
// marks round their span up instead of failing, and times outside the
// window are clamped onto the grid.
func (g *ScheduleGrid) Layout(floor, date string) (*GridLayout, error) {
	tables, err := g.Tables.ListByFloor(floor)
	if err != nil {
		return nil, err
	}

	layout := &GridLayout{
		Floor:  floor,
		Date:   date,
		Slots:  g.Slots(),
		Tables: tables,
	}

	rowByTable := make(map[string]int, len(tables))
	for i, t := range tables {
		rowByTable[t.ID] = i
	}

	reservations, err := g.Store.Query(ReservationFilter{Floor: floor, Date: date})
	if err != nil {
		return nil, err
	}

	for _, res := range reservations {
		if res.Status == models.StatusCancelled || res.Status == models.StatusRejected {
			continue
		}
		row, ok := rowByTable[res.TableID]
		if !ok {
			continue
		}

		startMin, err := utils.ParseClock(res.StartTime)
		if err != nil {
			continue
		}
		endMin, err := utils.ParseClock(res.EndTime)
		if err != nil {
			continue
		}

		layout.Cells = append(layout.Cells, GridCell{
			ReservationID: res.ID,
			TableID:       res.TableID,
			GuestName:     res.GuestName,
			Status:        res.Status,
			Row:           row,
			StartCol:      g.startColumn(startMin),
			Span:          g.span(startMin, endMin),
		})
	}
	return layout, nil
}

// startColumn converts a start time to a 1-based grid column. Column 0
// holds the table labels.
func (g *ScheduleGrid) startColumn(startMin int) int {
	if startMin < g.Hours.OpenMin {
		startMin = g.Hours.OpenMin
	}
	return (startMin-g.Hours.OpenMin)/g.Hours.SlotMin + 1
}

// span returns how many slot columns a reservation covers, rounding up
// for times not aligned to the slot granularity. Always at least 1.
func (g *ScheduleGrid) span(startMin, endMin int) int {
	minutes := endMin - startMin
	if minutes <= 0 {
		return 1
	}
	span := (minutes + g.Hours.SlotMin - 1) / g.Hours.SlotMin
	if span < 1 {
		span = 1
	}
	return span
}
