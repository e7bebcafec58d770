package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
)

// setupTestDB opens an in-memory SQLite database with the reservation
// schema migrated.
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	// Every connection to :memory: is its own database; pin the pool to
	// one connection so all queries see the same schema.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Table{}, &models.Reservation{}); err != nil {
		panic(err)
	}
	return db
}

func seedTable(db *gorm.DB, name, floor string, capacity int) models.Table {
	table := models.Table{
		ID:        uuid.NewString(),
		Name:      name,
		Floor:     floor,
		Capacity:  capacity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&table).Error; err != nil {
		panic(err)
	}
	return table
}

func seedReservation(db *gorm.DB, tableID, date, start, end string, status models.ReservationStatus) models.Reservation {
	res := models.Reservation{
		ID:         uuid.NewString(),
		TableID:    tableID,
		GuestName:  "Guest",
		GuestPhone: "0812000000",
		Pax:        2,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.Create(&res).Error; err != nil {
		panic(err)
	}
	return res
}

func testHours() OperatingHours {
	return OperatingHours{OpenMin: 10 * 60, CloseMin: 22 * 60, SlotMin: 30}
}
