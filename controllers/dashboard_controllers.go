package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboardStats -> headline numbers for the admin dashboard
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format(utils.DateLayout)

	var stats struct {
		TotalReservations int64 `json:"total_reservations"`
		TodayReservations int64 `json:"today_reservations"`
		TotalTables       int64 `json:"total_tables"`
		ReservationStats  struct {
			Pending   int64 `json:"pending"`
			Approved  int64 `json:"approved"`
			Rejected  int64 `json:"rejected"`
			Cancelled int64 `json:"cancelled"`
			Completed int64 `json:"completed"`
		} `json:"reservation_stats"`
	}

	dc.DB.Model(&models.Reservation{}).Count(&stats.TotalReservations)
	dc.DB.Model(&models.Reservation{}).Where("date = ?", today).Count(&stats.TodayReservations)
	dc.DB.Model(&models.Table{}).Count(&stats.TotalTables)

	dc.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusPending).Count(&stats.ReservationStats.Pending)
	dc.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusApproved).Count(&stats.ReservationStats.Approved)
	dc.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusRejected).Count(&stats.ReservationStats.Rejected)
	dc.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusCancelled).Count(&stats.ReservationStats.Cancelled)
	dc.DB.Model(&models.Reservation{}).Where("status = ?", models.StatusCompleted).Count(&stats.ReservationStats.Completed)

	events.BroadcastDashboardUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", gin.H{
		"data": stats,
	})
}

// GetReservationSeries -> daily reservation counts rolled up by the
// requested granularity. ?weeks=iso switches weekly bucketing from the
// calendar (day-of-month div 7) scheme to ISO weeks.
func (dc *DashboardController) GetReservationSeries(c *gin.Context) {
	granularity := services.Granularity(c.DefaultQuery("granularity", string(services.GranularityDaily)))

	aggregator := services.NewStatsAggregator()
	if c.Query("weeks") == string(services.WeeklyISO) {
		aggregator.WeeklyMode = services.WeeklyISO
	}

	var series []services.StatPoint
	err := dc.DB.Model(&models.Reservation{}).
		Select("date, COUNT(*) AS count, COALESCE(SUM(pax), 0) AS total").
		Where("status IN ?", []models.ReservationStatus{
			models.StatusPending, models.StatusApproved, models.StatusCompleted,
		}).
		Group("date").
		Order("date ASC").
		Scan(&series).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	buckets, err := aggregator.Aggregate(series, granularity)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation series", gin.H{
		"granularity": granularity,
		"buckets":     buckets,
	})
}
