package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	resCtrl := controllers.NewReservationController(db)
	router.POST("/reservations", resCtrl.CreateReservation)
	router.GET("/reservations", resCtrl.GetAllReservations)
	router.GET("/reservations/availability", resCtrl.CheckAvailability)
	router.GET("/reservations/:reservation_id", resCtrl.GetReservationByID)
	router.PATCH("/reservations/:reservation_id/approve", resCtrl.ApproveReservation)
	router.PATCH("/reservations/:reservation_id/reject", resCtrl.RejectReservation)
	router.PATCH("/reservations/:reservation_id/cancel", resCtrl.CancelReservation)
	return router
}

func postReservation(t *testing.T, router *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/reservations", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func reservationPayload(tableID string) map[string]interface{} {
	return map[string]interface{}{
		"guest_name":  "Alice",
		"guest_phone": "0812111222",
		"pax":         2,
		"table_id":    tableID,
		"date":        "2025-01-10",
		"start_time":  "12:00",
		"end_time":    "14:00",
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	table := seedTestTable(db, "A1", "1st", 2)
	router := setupReservationRouter(db)

	w := postReservation(t, router, reservationPayload(table.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Reservation created successfully", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(120), data["duration_min"])
}

func TestCreateReservationConflictEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	table := seedTestTable(db, "A1", "1st", 2)
	router := setupReservationRouter(db)

	w := postReservation(t, router, reservationPayload(table.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	overlap := reservationPayload(table.ID)
	overlap["start_time"] = "13:00"
	overlap["end_time"] = "15:00"
	w = postReservation(t, router, overlap)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservationCapacityEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	table := seedTestTable(db, "A1", "1st", 2)
	router := setupReservationRouter(db)

	payload := reservationPayload(table.ID)
	payload["pax"] = 3
	w := postReservation(t, router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing was stored for that table and date.
	var count int64
	db.Model(&models.Reservation{}).
		Where("table_id = ? AND date = ?", table.ID, "2025-01-10").
		Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	table := seedTestTable(db, "A1", "1st", 2)
	router := setupReservationRouter(db)

	w := postReservation(t, router, reservationPayload(table.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	url := fmt.Sprintf("/reservations/availability?table_id=%s&date=2025-01-10&start=13:00&end=15:00", table.ID)
	req, err := http.NewRequest("GET", url, nil)
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["available"])

	// The adjacent slot starting at the end boundary is free.
	url = fmt.Sprintf("/reservations/availability?table_id=%s&date=2025-01-10&start=14:00&end=16:00", table.ID)
	req, err = http.NewRequest("GET", url, nil)
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data = response["data"].(map[string]interface{})
	assert.Equal(t, true, data["available"])
}

func TestApproveAndCancelEndpoints(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	table := seedTestTable(db, "A1", "1st", 2)
	router := setupReservationRouter(db)

	w := postReservation(t, router, reservationPayload(table.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	id := response["data"].(map[string]interface{})["id"].(string)

	req, err := http.NewRequest("PATCH", "/reservations/"+id+"/approve", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "approved", response["data"].(map[string]interface{})["status"])

	// Second approval hits the state machine guard.
	req, err = http.NewRequest("PATCH", "/reservations/"+id+"/approve", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Cancel frees the slot for a fresh booking.
	req, err = http.NewRequest("PATCH", "/reservations/"+id+"/cancel", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postReservation(t, router, reservationPayload(table.ID))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRejectUnknownReservation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupReservationRouter(db)

	req, err := http.NewRequest("PATCH", "/reservations/no-such-id/reject", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReservationsOrderedByStart(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	table := seedTestTable(db, "A1", "1st", 2)
	router := setupReservationRouter(db)

	late := reservationPayload(table.ID)
	late["start_time"] = "18:00"
	late["end_time"] = "20:00"
	w := postReservation(t, router, late)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postReservation(t, router, reservationPayload(table.ID))
	assert.Equal(t, http.StatusCreated, w.Code)

	req, err := http.NewRequest("GET", "/reservations?table_id="+table.ID+"&date=2025-01-10", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	assert.Equal(t, "12:00", data[0].(map[string]interface{})["start_time"])
	assert.Equal(t, "18:00", data[1].(map[string]interface{})["start_time"])
}
