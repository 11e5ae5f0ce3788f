package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/config"
	"github.com/yeremiapane/restaurant-floorplan/controllers"
	"github.com/yeremiapane/restaurant-floorplan/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	if cfg.RateLimitRPS > 0 {
		r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())
	}

	// Inisialisasi controller
	tableCtrl := controllers.NewTableController(db)
	layoutCtrl := controllers.NewLayoutController(db)
	reservationCtrl := controllers.NewReservationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// KATALOG MEJA (read-only)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)

	// LAYOUT PER TANGGAL
	r.GET("/layouts", layoutCtrl.GetAllLayouts)
	layouts := r.Group("/layouts/:date")
	{
		layouts.POST("", layoutCtrl.OpenLayout)
		layouts.GET("", layoutCtrl.GetLayout)

		layouts.PATCH("/tables/:table_id", layoutCtrl.UpdateTablePosition)
		layouts.DELETE("/tables/:table_id/group", layoutCtrl.DetachTable)

		layouts.POST("/groups", layoutCtrl.CreateGroup)
		layouts.DELETE("/groups/:group_id", layoutCtrl.DeleteGroup)

		layouts.GET("/reservations", reservationCtrl.GetReservations)
		layouts.POST("/reservations", reservationCtrl.SaveReservation)
		layouts.PUT("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
		layouts.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)
	}

	return r
}
