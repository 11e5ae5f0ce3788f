package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-floorplan/config"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/router"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.LoadConfig()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		utils.SetDebug(true)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)
	seedCatalog(db, cfg)

	r := router.SetupRouter(db, cfg)
	r.SetTrustedProxies([]string{"127.0.0.1"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(models.All()...); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedCatalog memuat katalog meja dari CATALOG_FILE jika diset
func seedCatalog(db *gorm.DB, cfg *config.Config) {
	if cfg.CatalogFile == "" {
		utils.InfoLogger.Println("CATALOG_FILE not set, using existing table catalog")
		return
	}

	entries, err := services.LoadCatalogFile(cfg.CatalogFile)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load catalog %s: %v", cfg.CatalogFile, err)
	}
	if _, _, err := services.NewCatalogService(db).SeedCatalog(entries); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed catalog: %v", err)
	}
}
