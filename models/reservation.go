package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocking reports whether a reservation in this status occupies its
// table's time slot. A pending reservation provisionally holds the slot
// so two guests cannot double-book the same window.
func (s ReservationStatus) Blocking() bool {
	return s == StatusPending || s == StatusApproved
}

// Terminal reports whether no further transition is permitted from s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo reports whether the transition s -> next is legal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusCompleted || next == StatusCancelled
	case StatusRejected, StatusCancelled, StatusCompleted:
		return false
	}
	return false
}

type Reservation struct {
	ID             string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	TableID        string            `gorm:"type:varchar(36);not null;index:idx_reservations_table_date" json:"table_id"`
	Table          Table             `gorm:"foreignKey:TableID" json:"table"`
	GuestName      string            `gorm:"type:varchar(100);not null" json:"guest_name"`
	GuestPhone     string            `gorm:"type:varchar(30);not null" json:"guest_phone"`
	Pax            int               `gorm:"not null" json:"pax"`
	Date           string            `gorm:"type:varchar(10);not null;index:idx_reservations_table_date" json:"date"`
	StartTime      string            `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime        string            `gorm:"type:varchar(5);not null" json:"end_time"`
	DurationMin    int               `gorm:"not null" json:"duration_min"`
	Status         ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod  string            `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	SpecialRequest string            `gorm:"type:text" json:"special_request,omitempty"`
	AdminNote      string            `gorm:"type:text" json:"admin_note,omitempty"`
	CreatedAt      time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null" json:"updated_at"`
}
