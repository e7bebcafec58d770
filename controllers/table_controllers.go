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

type TableController struct {
	DB       *gorm.DB
	registry *services.TableRegistry
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:       db,
		registry: services.NewTableRegistry(db),
	}
}

// CreateTable -> add a table to the floor catalog
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Floor    string `json:"floor" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
		PosX     int    `json:"pos_x"`
		PosY     int    `json:"pos_y"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Name:     req.Name,
		Floor:    req.Floor,
		Capacity: req.Capacity,
		PosX:     req.PosX,
		PosY:     req.PosY,
	}
	if err := tc.registry.Create(&table); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %s (floor=%s capacity=%d)", table.Name, table.Floor, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list tables, optionally scoped to one floor
func (tc *TableController) GetAllTables(c *gin.Context) {
	floor := c.Query("floor")
	tables, err := tc.registry.ListByFloor(floor)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table
func (tc *TableController) GetTableByID(c *gin.Context) {
	table, err := tc.registry.Get(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// DeleteTable -> remove a table; refused while active reservations
// still reference it
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	if err := tc.registry.Delete(tableID); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	events.BroadcastTableDelete(tableID)

	utils.InfoLogger.Printf("Table %s deleted", tableID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": tableID,
	})
}
