package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
)

// TableController membaca katalog meja (read-only)
type TableController struct {
	Catalog *services.CatalogService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{Catalog: services.NewCatalogService(db)}
}

// GetAllTables -> menampilkan seluruh meja katalog
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Catalog.ListTables()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID, ok := parseIDParam(c, "table_id")
	if !ok {
		return
	}
	table, err := tc.Catalog.GetTable(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}
