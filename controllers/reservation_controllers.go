package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

type ReservationController struct {
	DB      *gorm.DB
	store   services.ReservationStore
	service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	store := services.NewReservationStore(db)
	registry := services.NewTableRegistry(db)
	return &ReservationController{
		DB:      db,
		store:   store,
		service: services.NewReservationService(store, registry, services.DefaultOperatingHours()),
	}
}

// CreateReservation -> guest books a table (status='pending')
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var input services.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := rc.service.Create(input)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationCreate, *res)

	utils.InfoLogger.Printf("Reservation %s created for table %s on %s %s-%s",
		res.ID, res.TableID, res.Date, res.StartTime, res.EndTime)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", res)
}

// GetAllReservations -> list with optional table/date/floor/status filters
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	filter := services.ReservationFilter{
		TableID: c.Query("table_id"),
		Date:    c.Query("date"),
		Floor:   c.Query("floor"),
		Status:  models.ReservationStatus(c.Query("status")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, services.ErrValidation)
		return
	}

	reservations, err := rc.store.Query(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail of one reservation
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	res, err := rc.store.Get(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", res)
}

// CheckAvailability -> is [start,end) free on this table and date?
func (rc *ReservationController) CheckAvailability(c *gin.Context) {
	tableID := c.Query("table_id")
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if tableID == "" || date == "" || start == "" || end == "" {
		utils.RespondError(c, http.StatusBadRequest, services.ErrValidation)
		return
	}

	available, err := rc.service.Checker().IsAvailableClock(tableID, date, start, end, c.Query("exclude_id"))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability checked", gin.H{
		"table_id":  tableID,
		"date":      date,
		"start":     start,
		"end":       end,
		"available": available,
	})
}

// ApproveReservation -> confirm a pending booking, optionally moving it
// to another table
func (rc *ReservationController) ApproveReservation(c *gin.Context) {
	var req struct {
		TableID   string `json:"table_id"`
		AdminNote string `json:"admin_note"`
	}
	// Body is optional; approval without reassignment needs no payload.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	res, err := rc.service.Approve(c.Param("reservation_id"), req.TableID, req.AdminNote)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationApprove, *res)

	utils.InfoLogger.Printf("Reservation %s approved (table=%s)", res.ID, res.TableID)
	utils.RespondJSON(c, http.StatusOK, "Reservation approved", res)
}

// RejectReservation -> decline a pending booking
func (rc *ReservationController) RejectReservation(c *gin.Context) {
	var req struct {
		AdminNote string `json:"admin_note"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	res, err := rc.service.Reject(c.Param("reservation_id"), req.AdminNote)
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationReject, *res)

	utils.InfoLogger.Printf("Reservation %s rejected", res.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation rejected", res)
}

// CancelReservation -> withdraw a pending or approved booking
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	res, err := rc.service.Cancel(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationCancel, *res)

	utils.InfoLogger.Printf("Reservation %s cancelled", res.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", res)
}

// CompleteReservation -> mark an approved booking as served
func (rc *ReservationController) CompleteReservation(c *gin.Context) {
	res, err := rc.service.Complete(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastReservation(events.EventReservationComplete, *res)

	utils.InfoLogger.Printf("Reservation %s completed", res.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation completed", res)
}

// DeleteReservation -> admin removes a record; ?force=true overrides
// the guard on approved bookings
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id := c.Param("reservation_id")
	force := c.Query("force") == "true"

	if err := rc.service.Delete(id, force); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Reservation %s deleted (force=%v)", id, force)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{
		"id": id,
	})
}
