package Controllers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-floorplan/controllers"
	"github.com/yeremiapane/restaurant-floorplan/models"
)

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	return router
}

func TestGetAllTables(t *testing.T) {
	db := setupTestDB(t)
	seedTables(t, db, 2)
	router := setupTableRouter(db)

	w, resp := doJSON(t, router, http.MethodGet, "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "List of tables", resp.Message)

	var tables []models.Table
	require.NoError(t, json.Unmarshal(resp.Data, &tables))
	require.Len(t, tables, 2)
	assert.Equal(t, "T1", tables[0].Name)
	assert.Equal(t, 50, tables[0].DefaultX)
}

func TestGetTableByID(t *testing.T) {
	db := setupTestDB(t)
	tables := seedTables(t, db, 1)
	router := setupTableRouter(db)

	w, resp := doJSON(t, router, http.MethodGet, "/tables/"+strconv.Itoa(int(tables[0].ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Table detail", resp.Message)

	w, _ = doJSON(t, router, http.MethodGet, "/tables/404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, router, http.MethodGet, "/tables/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
