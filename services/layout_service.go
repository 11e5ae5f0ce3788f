package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// batch insert TableState saat instansiasi layout
const seedBatchSize = 100

// PositionUpdate adalah perubahan posisi meja. Minimal satu field harus diisi.
// ClearGroup melepas meja dari grupnya dalam transaksi yang sama.
type PositionUpdate struct {
	X          *float64
	Y          *float64
	ClearGroup bool
}

// LayoutService mengelola LayoutInstance per tanggal dan posisi meja di dalamnya
type LayoutService struct {
	db       *gorm.DB
	snapshot *SnapshotService
}

func NewLayoutService(db *gorm.DB) *LayoutService {
	return &LayoutService{
		db:       db,
		snapshot: NewSnapshotService(db),
	}
}

// EnsureInstance mengembalikan layout untuk tanggal tersebut, membuatnya dari
// katalog jika belum ada. Instance dan seluruh TableState dibuat dalam satu
// transaksi sehingga layout setengah jadi tidak pernah terlihat.
func (s *LayoutService) EnsureInstance(date string) (*models.LayoutInstance, bool, error) {
	day, err := utils.ParseLayoutDate(date)
	if err != nil {
		return nil, false, validationf("%v", err)
	}

	var instance models.LayoutInstance
	var seeded int
	created := false

	err = s.db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("date = ?", day).First(&instance).Error
		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up layout: %w", findErr)
		}

		instance = models.LayoutInstance{Date: day}
		if err := tx.Create(&instance).Error; err != nil {
			return fmt.Errorf("failed to create layout: %w", err)
		}

		var tables []models.Table
		if err := tx.Order("id ASC").Find(&tables).Error; err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}

		// katalog kosong tetap valid, layout tanpa meja
		if len(tables) > 0 {
			states := make([]models.TableState, 0, len(tables))
			for _, t := range tables {
				states = append(states, models.TableState{
					LayoutInstanceID: instance.ID,
					TableID:          t.ID,
					X:                t.DefaultX,
					Y:                t.DefaultY,
				})
			}
			if err := tx.Omit(clause.Associations).CreateInBatches(&states, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to seed table states: %w", err)
			}
		}

		seeded = len(tables)
		created = true
		return nil
	})
	if err != nil {
		// request lain mungkin sudah membuat layout yang sama (unique index date)
		var existing models.LayoutInstance
		if findErr := s.db.Where("date = ?", day).First(&existing).Error; findErr == nil {
			return &existing, false, nil
		}
		utils.ErrorLogger.Printf("Failed to ensure layout %s: %v", day, err)
		return nil, false, err
	}

	if created {
		utils.InfoLogger.WithFields(logrus.Fields{
			"date":        day,
			"instance_id": instance.ID,
			"tables":      seeded,
		}).Info("Layout instance created from catalog")
	}
	return &instance, created, nil
}

// LoadInstance mengembalikan snapshot layout tanpa membuat instance baru
func (s *LayoutService) LoadInstance(date string) (*LayoutSnapshot, error) {
	instance, err := findInstance(s.db, date)
	if err != nil {
		return nil, err
	}
	return s.snapshot.Snapshot(instance)
}

// ListInstances mengembalikan semua tanggal yang sudah pernah dibuka
func (s *LayoutService) ListInstances() ([]models.LayoutInstance, error) {
	var instances []models.LayoutInstance
	if err := s.db.Order("date ASC").Find(&instances).Error; err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	return instances, nil
}

// UpdatePosition mengubah koordinat satu meja pada layout tanggal tersebut
func (s *LayoutService) UpdatePosition(date string, tableID uint, upd PositionUpdate) (*models.TableState, error) {
	if upd.X == nil && upd.Y == nil && !upd.ClearGroup {
		return nil, validationf("nothing to update: supply x, y or clear_group")
	}

	fields := map[string]interface{}{}
	if upd.X != nil {
		x, err := normalizeCoordinate("x", *upd.X)
		if err != nil {
			return nil, err
		}
		fields["x"] = x
	}
	if upd.Y != nil {
		y, err := normalizeCoordinate("y", *upd.Y)
		if err != nil {
			return nil, err
		}
		fields["y"] = y
	}

	var state models.TableState
	err := s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := findInstance(tx, date)
		if err != nil {
			return err
		}

		st, err := findTableState(tx, instance, tableID)
		if err != nil {
			return err
		}

		if upd.ClearGroup {
			if _, err := detachState(tx, instance, st); err != nil {
				return err
			}
		}

		if len(fields) > 0 {
			if err := tx.Model(&models.TableState{}).
				Where("layout_instance_id = ? AND table_id = ?", instance.ID, tableID).
				Updates(fields).Error; err != nil {
				return fmt.Errorf("failed to update position: %w", err)
			}
		}

		return tx.Where("layout_instance_id = ? AND table_id = ?", instance.ID, tableID).
			First(&state).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Debugf("Table %d moved to (%d,%d) on %s", tableID, state.X, state.Y, date)
	return &state, nil
}

// normalizeCoordinate membulatkan ke integer dan clamp nilai negatif ke 0
// (origin canvas di kiri atas)
func normalizeCoordinate(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validationf("%s must be a finite number", field)
	}
	if v > math.MaxInt32 {
		return 0, validationf("%s is out of range", field)
	}
	r := math.Round(v)
	if r < 0 {
		return 0, nil
	}
	return int(r), nil
}

// findInstance mencari layout berdasarkan tanggal tanpa membuatnya
func findInstance(db *gorm.DB, date string) (*models.LayoutInstance, error) {
	day, err := utils.ParseLayoutDate(date)
	if err != nil {
		return nil, validationf("%v", err)
	}

	var instance models.LayoutInstance
	if err := db.Where("date = ?", day).First(&instance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("layout for %s has not been opened", day)
		}
		return nil, fmt.Errorf("failed to look up layout: %w", err)
	}
	return &instance, nil
}

func findTableState(db *gorm.DB, instance *models.LayoutInstance, tableID uint) (*models.TableState, error) {
	var state models.TableState
	err := db.Where("layout_instance_id = ? AND table_id = ?", instance.ID, tableID).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("table %d is not part of layout %s", tableID, instance.Date)
		}
		return nil, fmt.Errorf("failed to look up table state: %w", err)
	}
	return &state, nil
}
