package models

import "time"

type Table struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Floor     string    `gorm:"type:varchar(20);not null;index" json:"floor"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	PosX      int       `gorm:"not null;default:0" json:"pos_x"`
	PosY      int       `gorm:"not null;default:0" json:"pos_y"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
