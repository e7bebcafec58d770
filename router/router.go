package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db)
	scheduleCtrl := controllers.NewScheduleController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Guests browse tables and the schedule without logging in
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/schedule/grid", scheduleCtrl.GetScheduleGrid)

	r.GET("/reservations", reservationCtrl.GetAllReservations)
	r.GET("/reservations/availability", reservationCtrl.CheckAvailability)
	r.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)

	// Booking form is rate limited per client
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/reservations", reservationCtrl.CreateReservation)
		public.PATCH("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
	}

	// Dashboard websocket feed
	wsGroup := r.Group("/ws")
	{
		wsGroup.GET("/:role", events.Handler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// RESERVATIONS
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.PATCH("/reservations/:reservation_id/approve", reservationCtrl.ApproveReservation)
	auth.PATCH("/reservations/:reservation_id/reject", reservationCtrl.RejectReservation)
	auth.PATCH("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
	auth.PATCH("/reservations/:reservation_id/complete", reservationCtrl.CompleteReservation)
	auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

	// DASHBOARD
	auth.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
	auth.GET("/dashboard/series", dashboardCtrl.GetReservationSeries)

	return r
}
