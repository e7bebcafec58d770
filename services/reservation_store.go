package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// ReservationFilter narrows a store query. Zero-valued fields are
// ignored. Floor filtering joins against the tables catalog.
type ReservationFilter struct {
	TableID string
	Date    string
	Floor   string
	Status  models.ReservationStatus
}

// ReservationStore is the authoritative collection of reservation
// records. It performs field-level validation only; overlap checking is
// the AvailabilityChecker's job.
type ReservationStore interface {
	Insert(res *models.Reservation) error
	Get(id string) (*models.Reservation, error)
	Update(res *models.Reservation) error
	Delete(id string) error
	Query(filter ReservationFilter) ([]models.Reservation, error)
	// ForTableDate returns all reservations for one table on one day,
	// ordered by start time. This is the hot path of the availability
	// scan and is backed by the (table_id, date) composite index.
	ForTableDate(tableID, date string) ([]models.Reservation, error)
}

type GormReservationStore struct {
	DB *gorm.DB
}

func NewReservationStore(db *gorm.DB) *GormReservationStore {
	return &GormReservationStore{DB: db}
}

func (s *GormReservationStore) Insert(res *models.Reservation) error {
	if err := validateReservation(res); err != nil {
		return err
	}
	now := time.Now()
	if res.CreatedAt.IsZero() {
		res.CreatedAt = now
	}
	res.UpdatedAt = now
	// Omit the association so a populated Table struct never writes
	// back into the catalog.
	return s.DB.Omit("Table").Create(res).Error
}

func (s *GormReservationStore) Get(id string) (*models.Reservation, error) {
	var res models.Reservation
	if err := s.DB.Preload("Table").First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &res, nil
}

func (s *GormReservationStore) Update(res *models.Reservation) error {
	if err := validateReservation(res); err != nil {
		return err
	}
	res.UpdatedAt = time.Now()
	return s.DB.Omit("Table").Save(res).Error
}

func (s *GormReservationStore) Delete(id string) error {
	result := s.DB.Delete(&models.Reservation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *GormReservationStore) Query(filter ReservationFilter) ([]models.Reservation, error) {
	tx := s.DB.Model(&models.Reservation{}).Preload("Table")

	if filter.TableID != "" {
		tx = tx.Where("reservations.table_id = ?", filter.TableID)
	}
	if filter.Date != "" {
		tx = tx.Where("reservations.date = ?", filter.Date)
	}
	if filter.Status != "" {
		tx = tx.Where("reservations.status = ?", filter.Status)
	}
	if filter.Floor != "" {
		tx = tx.Joins("JOIN tables ON tables.id = reservations.table_id").
			Where("tables.floor = ?", filter.Floor)
	}

	// Start times are zero-padded HH:MM, so string order is time order.
	var out []models.Reservation
	if err := tx.Order("reservations.table_id, reservations.start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormReservationStore) ForTableDate(tableID, date string) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.DB.Where("table_id = ? AND date = ?", tableID, date).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateReservation(res *models.Reservation) error {
	if res.ID == "" || res.TableID == "" || res.GuestName == "" || res.GuestPhone == "" {
		return fmt.Errorf("missing required field: %w", ErrValidation)
	}
	if res.Pax <= 0 {
		return fmt.Errorf("party size must be positive: %w", ErrValidation)
	}
	if !res.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", res.Status, ErrValidation)
	}
	if _, err := utils.ParseDate(res.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", res.Date, ErrValidation)
	}
	start, err := utils.ParseClock(res.StartTime)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	end, err := utils.ParseClock(res.EndTime)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	if start >= end {
		return fmt.Errorf("start time must be before end time: %w", ErrValidation)
	}
	return nil
}
