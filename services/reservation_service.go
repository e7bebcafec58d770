package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// CreateReservationInput is the guest-facing booking form.
type CreateReservationInput struct {
	GuestName      string `json:"guest_name" binding:"required"`
	GuestPhone     string `json:"guest_phone" binding:"required"`
	Pax            int    `json:"pax" binding:"required"`
	TableID        string `json:"table_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	PaymentMethod  string `json:"payment_method"`
	SpecialRequest string `json:"special_request"`
}

// ReservationService drives the reservation state machine:
// pending -> approved | rejected, approved -> completed | cancelled.
// Check-then-write sequences run under a per-(table, date) lock so two
// concurrent bookings cannot both pass the availability check.
type ReservationService struct {
	store   ReservationStore
	tables  *TableRegistry
	checker *AvailabilityChecker
	hours   OperatingHours

	slotMu sync.Mutex
	slots  map[string]*sync.Mutex
}

func NewReservationService(store ReservationStore, tables *TableRegistry, hours OperatingHours) *ReservationService {
	return &ReservationService{
		store:   store,
		tables:  tables,
		checker: NewAvailabilityChecker(store),
		hours:   hours,
		slots:   make(map[string]*sync.Mutex),
	}
}

// Checker exposes the service's availability checker for read-only
// endpoints.
func (s *ReservationService) Checker() *AvailabilityChecker {
	return s.checker
}

// slotLock returns the mutex guarding one (table, date) slot. Locks are
// never evicted; the map stays small because keys only exist for slots
// that saw writes during the process lifetime.
func (s *ReservationService) slotLock(tableID, date string) *sync.Mutex {
	s.slotMu.Lock()
	defer s.slotMu.Unlock()
	key := tableID + "|" + date
	lock, ok := s.slots[key]
	if !ok {
		lock = &sync.Mutex{}
		s.slots[key] = lock
	}
	return lock
}

// Create validates the form, checks availability and inserts a pending
// reservation. On conflict no record is written.
func (s *ReservationService) Create(input CreateReservationInput) (*models.Reservation, error) {
	startMin, err := utils.ParseClock(input.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	endMin, err := utils.ParseClock(input.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("start time must be before end time: %w", ErrValidation)
	}
	if !s.hours.Contains(startMin, endMin) {
		return nil, fmt.Errorf("reservation outside operating hours %s-%s: %w",
			utils.FormatClock(s.hours.OpenMin), utils.FormatClock(s.hours.CloseMin), ErrValidation)
	}
	if _, err := utils.ParseDate(input.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", input.Date, ErrValidation)
	}
	if input.Pax <= 0 {
		return nil, fmt.Errorf("party size must be positive: %w", ErrValidation)
	}

	table, err := s.tables.Get(input.TableID)
	if err != nil {
		return nil, err
	}
	if input.Pax > table.Capacity {
		return nil, fmt.Errorf("party of %d exceeds table capacity %d: %w",
			input.Pax, table.Capacity, ErrValidation)
	}

	lock := s.slotLock(input.TableID, input.Date)
	lock.Lock()
	defer lock.Unlock()

	available, err := s.checker.IsAvailable(input.TableID, input.Date, startMin, endMin, "")
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("table %s is booked for %s-%s on %s: %w",
			table.Name, input.StartTime, input.EndTime, input.Date, ErrConflict)
	}

	res := &models.Reservation{
		ID:             uuid.NewString(),
		TableID:        input.TableID,
		GuestName:      input.GuestName,
		GuestPhone:     input.GuestPhone,
		Pax:            input.Pax,
		Date:           input.Date,
		StartTime:      utils.FormatClock(startMin),
		EndTime:        utils.FormatClock(endMin),
		DurationMin:    endMin - startMin,
		Status:         models.StatusPending,
		PaymentMethod:  input.PaymentMethod,
		SpecialRequest: input.SpecialRequest,
		CreatedAt:      time.Now(),
	}
	if err := s.store.Insert(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Approve confirms a pending reservation, optionally moving it to a
// different table. A reassignment re-runs the availability check
// against the new table before anything is written.
func (s *ReservationService) Approve(id, newTableID, adminNote string) (*models.Reservation, error) {
	res, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransitionTo(models.StatusApproved) {
		return nil, fmt.Errorf("cannot approve a %s reservation: %w", res.Status, ErrInvalidTransition)
	}

	if newTableID != "" && newTableID != res.TableID {
		table, err := s.tables.Get(newTableID)
		if err != nil {
			return nil, err
		}
		if res.Pax > table.Capacity {
			return nil, fmt.Errorf("party of %d exceeds table capacity %d: %w",
				res.Pax, table.Capacity, ErrValidation)
		}

		lock := s.slotLock(newTableID, res.Date)
		lock.Lock()
		defer lock.Unlock()

		available, err := s.checker.IsAvailableClock(newTableID, res.Date, res.StartTime, res.EndTime, res.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, fmt.Errorf("table %s is booked for %s-%s on %s: %w",
				table.Name, res.StartTime, res.EndTime, res.Date, ErrConflict)
		}
		res.TableID = newTableID
		res.Table = *table
	}

	res.Status = models.StatusApproved
	if adminNote != "" {
		res.AdminNote = adminNote
	}
	if err := s.store.Update(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Reject declines a pending reservation.
func (s *ReservationService) Reject(id, adminNote string) (*models.Reservation, error) {
	return s.transition(id, models.StatusRejected, adminNote)
}

// Cancel withdraws a pending or approved reservation.
func (s *ReservationService) Cancel(id string) (*models.Reservation, error) {
	return s.transition(id, models.StatusCancelled, "")
}

// Complete marks an approved reservation as served, intended to be
// called after its time window has passed.
func (s *ReservationService) Complete(id string) (*models.Reservation, error) {
	return s.transition(id, models.StatusCompleted, "")
}

func (s *ReservationService) transition(id string, next models.ReservationStatus, adminNote string) (*models.Reservation, error) {
	res, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if !res.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move a %s reservation to %s: %w", res.Status, next, ErrInvalidTransition)
	}
	res.Status = next
	if adminNote != "" {
		res.AdminNote = adminNote
	}
	if err := s.store.Update(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Delete removes a reservation record. Without force only pending and
// terminal records may be removed; force is the administrative
// override for approved bookings.
func (s *ReservationService) Delete(id string, force bool) error {
	res, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if res.Status == models.StatusApproved && !force {
		return fmt.Errorf("approved reservation must be cancelled first: %w", ErrConflict)
	}
	return s.store.Delete(id)
}
