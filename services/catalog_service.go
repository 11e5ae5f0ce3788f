package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CatalogEntry adalah satu baris file katalog meja (YAML)
type CatalogEntry struct {
	Name     string `yaml:"name"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Capacity *int   `yaml:"capacity"`
}

type catalogFile struct {
	Tables []CatalogEntry `yaml:"tables"`
}

// CatalogService membaca katalog meja. Katalog hanya ditulis saat startup
// lewat SeedCatalog.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListTables mengembalikan semua meja katalog urut ID
func (s *CatalogService) ListTables() ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Order("id ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// GetTable mengembalikan satu meja katalog
func (s *CatalogService) GetTable(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("table %d", id)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return &table, nil
}

// LoadCatalogFile mem-parse file YAML berisi daftar meja
func LoadCatalogFile(path string) ([]CatalogEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog mem-parse dan memvalidasi isi katalog
func ParseCatalog(raw []byte) ([]CatalogEntry, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Tables))
	for i, e := range f.Tables {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, validationf("catalog entry %d has no name", i)
		}
		if seen[name] {
			return nil, validationf("duplicate catalog table %q", name)
		}
		if e.Width <= 0 || e.Height <= 0 {
			return nil, validationf("table %q must have positive width and height", name)
		}
		if e.X < 0 || e.Y < 0 {
			return nil, validationf("table %q has a negative default position", name)
		}
		if e.Capacity != nil && *e.Capacity <= 0 {
			return nil, validationf("table %q capacity must be positive", name)
		}
		seen[name] = true
		f.Tables[i].Name = name
	}
	return f.Tables, nil
}

// SeedCatalog meng-upsert katalog berdasarkan nama meja. Meja yang tidak ada
// di file dibiarkan, karena TableState lama masih mereferensikannya.
func (s *CatalogService) SeedCatalog(entries []CatalogEntry) (created, updated int, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			var table models.Table
			findErr := tx.Where("name = ?", e.Name).First(&table).Error
			switch {
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				table = models.Table{
					Name:     e.Name,
					DefaultX: e.X,
					DefaultY: e.Y,
					Width:    e.Width,
					Height:   e.Height,
					Capacity: e.Capacity,
				}
				if err := tx.Create(&table).Error; err != nil {
					return fmt.Errorf("failed to create table %q: %w", e.Name, err)
				}
				created++
			case findErr != nil:
				return fmt.Errorf("failed to look up table %q: %w", e.Name, findErr)
			default:
				if err := tx.Model(&table).Updates(map[string]interface{}{
					"default_x": e.X,
					"default_y": e.Y,
					"width":     e.Width,
					"height":    e.Height,
					"capacity":  e.Capacity,
				}).Error; err != nil {
					return fmt.Errorf("failed to update table %q: %w", e.Name, err)
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	utils.InfoLogger.Printf("Catalog seeded: %d created, %d updated", created, updated)
	return created, updated, nil
}
