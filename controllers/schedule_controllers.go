package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

type ScheduleController struct {
	DB   *gorm.DB
	grid *services.ScheduleGrid
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{
		DB: db,
		grid: services.NewScheduleGrid(
			services.NewReservationStore(db),
			services.NewTableRegistry(db),
			services.DefaultOperatingHours(),
		),
	}
}

// GetScheduleGrid -> time-slot grid for one floor and date. Defaults to
// today when no date is given.
func (sc *ScheduleController) GetScheduleGrid(c *gin.Context) {
	floor := c.Query("floor")
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(utils.DateLayout)
	}
	if _, err := utils.ParseDate(date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	layout, err := sc.grid.Layout(floor, date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Schedule grid", layout)
}
