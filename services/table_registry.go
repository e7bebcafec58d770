package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
)

// TableRegistry is the static catalog of physical tables. Read-mostly;
// administrative writes must preserve referential integrity against the
// reservation store.
type TableRegistry struct {
	DB *gorm.DB
}

func NewTableRegistry(db *gorm.DB) *TableRegistry {
	return &TableRegistry{DB: db}
}

func (r *TableRegistry) Get(id string) (*models.Table, error) {
	var table models.Table
	if err := r.DB.First(&table, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("table %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &table, nil
}

// ListByFloor returns tables on one floor ordered by name; an empty
// floor returns the whole catalog ordered by floor then name.
func (r *TableRegistry) ListByFloor(floor string) ([]models.Table, error) {
	tx := r.DB.Model(&models.Table{})
	if floor != "" {
		tx = tx.Where("floor = ?", floor).Order("name ASC")
	} else {
		tx = tx.Order("floor ASC, name ASC")
	}
	var tables []models.Table
	if err := tx.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *TableRegistry) Create(table *models.Table) error {
	if table.Name == "" || table.Floor == "" {
		return fmt.Errorf("table name and floor are required: %w", ErrValidation)
	}
	if table.Capacity <= 0 {
		return fmt.Errorf("table capacity must be positive: %w", ErrValidation)
	}
	if table.ID == "" {
		table.ID = uuid.NewString()
	}
	now := time.Now()
	table.CreatedAt = now
	table.UpdatedAt = now
	return r.DB.Create(table).Error
}

// Delete removes a table from the catalog. A table still referenced by
// a non-terminal reservation cannot be deleted.
func (r *TableRegistry) Delete(id string) error {
	if _, err := r.Get(id); err != nil {
		return err
	}

	var blocking int64
	err := r.DB.Model(&models.Reservation{}).
		Where("table_id = ? AND status IN ?", id,
			[]models.ReservationStatus{models.StatusPending, models.StatusApproved}).
		Count(&blocking).Error
	if err != nil {
		return err
	}
	if blocking > 0 {
		return fmt.Errorf("table %s has active reservations: %w", id, ErrConflict)
	}

	return r.DB.Delete(&models.Table{}, "id = ?", id).Error
}
