package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testDate = "2024-01-01"

// setupTestDB membuka SQLite in-memory dengan foreign key aktif.
// Satu koneksi saja supaya seluruh query melihat database yang sama.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// seedTables membuat katalog T1..Tn dengan posisi default berbeda
func seedTables(t *testing.T, db *gorm.DB, n int) []models.Table {
	t.Helper()

	tables := make([]models.Table, 0, n)
	for i := 1; i <= n; i++ {
		capacity := 2 * i
		table := models.Table{
			Name:     fmt.Sprintf("T%d", i),
			DefaultX: 100 * i,
			DefaultY: 50,
			Width:    80,
			Height:   60,
			Capacity: &capacity,
		}
		require.NoError(t, db.Create(&table).Error)
		tables = append(tables, table)
	}
	return tables
}

// openLayout membuat katalog n meja lalu membuka layout testDate
func openLayout(t *testing.T, db *gorm.DB, n int) (*models.LayoutInstance, []models.Table) {
	t.Helper()

	tables := seedTables(t, db, n)
	instance, created, err := NewLayoutService(db).EnsureInstance(testDate)
	require.NoError(t, err)
	require.True(t, created)
	return instance, tables
}

func statesByTable(t *testing.T, db *gorm.DB, instanceID uint) map[uint]models.TableState {
	t.Helper()

	var states []models.TableState
	require.NoError(t, db.Where("layout_instance_id = ?", instanceID).Find(&states).Error)
	out := make(map[uint]models.TableState, len(states))
	for _, st := range states {
		out[st.TableID] = st
	}
	return out
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// requireGroupInvariants memastikan setiap grup punya anggota dan setiap
// group_id di TableState menunjuk grup yang ada di layout yang sama
func requireGroupInvariants(t *testing.T, db *gorm.DB) {
	t.Helper()

	var groups []models.TableGroup
	require.NoError(t, db.Find(&groups).Error)
	byID := make(map[uint]models.TableGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
		var members int64
		require.NoError(t, db.Model(&models.TableState{}).Where("group_id = ?", g.ID).Count(&members).Error)
		require.NotZero(t, members, "group %d has no members", g.ID)
	}

	var states []models.TableState
	require.NoError(t, db.Where("group_id IS NOT NULL").Find(&states).Error)
	for _, st := range states {
		g, ok := byID[*st.GroupID]
		require.True(t, ok, "table %d references missing group %d", st.TableID, *st.GroupID)
		require.Equal(t, st.LayoutInstanceID, g.LayoutInstanceID)
	}
}

func ptrFloat(f float64) *float64 {
	return &f
}

func ptrString(s string) *string {
	return &s
}
