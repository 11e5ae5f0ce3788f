package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupTransition menjelaskan perubahan struktur grup akibat satu operasi.
// Grup lama tidak pernah dimutasi menjadi grup baru: Dissolved berisi grup
// yang terhapus karena kosong, Reduced berisi grup yang kehilangan anggota
// namun masih hidup, Created adalah grup baru (0 jika tidak ada).
type GroupTransition struct {
	Created   uint   `json:"group_id,omitempty"`
	Dissolved []uint `json:"dissolved"`
	Reduced   []uint `json:"reduced"`
}

// GroupingService membuat, menggabungkan dan membubarkan grup meja
type GroupingService struct {
	db *gorm.DB
}

func NewGroupingService(db *gorm.DB) *GroupingService {
	return &GroupingService{db: db}
}

// Group membuat grup baru berisi tepat tableIDs. Grup lama yang tersentuh
// dilepas dulu, dan gagal total (Conflict) jika salah satunya punya reservasi.
func (s *GroupingService) Group(date string, tableIDs []uint) (*GroupTransition, error) {
	ids := uniqueIDs(tableIDs)
	if len(ids) == 0 {
		return nil, validationf("table_ids must contain at least one table")
	}

	transition := &GroupTransition{Dissolved: []uint{}, Reduced: []uint{}}
	var instance *models.LayoutInstance

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		instance, err = findInstance(tx, date)
		if err != nil {
			return err
		}

		var states []models.TableState
		if err := tx.Where("layout_instance_id = ? AND table_id IN ?", instance.ID, ids).
			Find(&states).Error; err != nil {
			return fmt.Errorf("failed to load table states: %w", err)
		}
		if len(states) != len(ids) {
			return notFoundf("tables %v are not part of layout %s", missingTables(ids, states), instance.Date)
		}

		implicated := groupIDsOf(states)
		if len(implicated) > 0 {
			// semua grup dicek dulu sebelum ada penulisan
			reserved, err := reservedGroups(tx, implicated)
			if err != nil {
				return err
			}
			if len(reserved) > 0 {
				return conflictf("reservations exist on groups %v; remove them before regrouping", reserved)
			}

			if err := tx.Model(&models.TableState{}).
				Where("layout_instance_id = ? AND table_id IN ? AND group_id IN ?", instance.ID, ids, implicated).
				Update("group_id", nil).Error; err != nil {
				return fmt.Errorf("failed to release tables: %w", err)
			}

			dissolved, reduced, err := pruneGroups(tx, implicated)
			if err != nil {
				return err
			}
			transition.Dissolved = dissolved
			transition.Reduced = reduced
		}

		group := models.TableGroup{LayoutInstanceID: instance.ID}
		if err := tx.Omit(clause.Associations).Create(&group).Error; err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}

		if err := tx.Model(&models.TableState{}).
			Where("layout_instance_id = ? AND table_id IN ?", instance.ID, ids).
			Update("group_id", group.ID).Error; err != nil {
			return fmt.Errorf("failed to assign group: %w", err)
		}

		transition.Created = group.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"date":      instance.Date,
		"group_id":  transition.Created,
		"tables":    ids,
		"dissolved": transition.Dissolved,
		"reduced":   transition.Reduced,
	}).Info("Tables grouped")
	return transition, nil
}

// Ungroup membubarkan grup. Ditolak jika grup masih punya reservasi.
func (s *GroupingService) Ungroup(date string, groupID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := findInstance(tx, date)
		if err != nil {
			return err
		}

		var group models.TableGroup
		if err := tx.Where("id = ? AND layout_instance_id = ?", groupID, instance.ID).
			First(&group).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("group %d does not exist in layout %s", groupID, instance.Date)
			}
			return fmt.Errorf("failed to look up group: %w", err)
		}

		reserved, err := reservedGroups(tx, []uint{group.ID})
		if err != nil {
			return err
		}
		if len(reserved) > 0 {
			return conflictf("group %d has a reservation; delete it before ungrouping", group.ID)
		}

		if err := tx.Model(&models.TableState{}).
			Where("layout_instance_id = ? AND group_id = ?", instance.ID, group.ID).
			Update("group_id", nil).Error; err != nil {
			return fmt.Errorf("failed to release tables: %w", err)
		}

		if err := tx.Delete(&models.TableGroup{}, group.ID).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Group %d dissolved on %s", groupID, date)
	return nil
}

// DetachTable melepas satu meja dari grupnya. Grup yang menjadi kosong dihapus.
func (s *GroupingService) DetachTable(date string, tableID uint) (*GroupTransition, error) {
	var transition *GroupTransition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := findInstance(tx, date)
		if err != nil {
			return err
		}
		state, err := findTableState(tx, instance, tableID)
		if err != nil {
			return err
		}
		transition, err = detachState(tx, instance, state)
		return err
	})
	if err != nil {
		return nil, err
	}
	return transition, nil
}

// detachState dipakai juga oleh UpdatePosition (clear_group)
func detachState(tx *gorm.DB, instance *models.LayoutInstance, state *models.TableState) (*GroupTransition, error) {
	transition := &GroupTransition{Dissolved: []uint{}, Reduced: []uint{}}
	if state.GroupID == nil {
		return transition, nil
	}
	groupID := *state.GroupID

	reserved, err := reservedGroups(tx, []uint{groupID})
	if err != nil {
		return nil, err
	}
	if len(reserved) > 0 {
		return nil, conflictf("group %d has a reservation; delete it before removing table %d", groupID, state.TableID)
	}

	if err := tx.Model(&models.TableState{}).
		Where("layout_instance_id = ? AND table_id = ?", instance.ID, state.TableID).
		Update("group_id", nil).Error; err != nil {
		return nil, fmt.Errorf("failed to release table: %w", err)
	}

	transition.Dissolved, transition.Reduced, err = pruneGroups(tx, []uint{groupID})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"date":      instance.Date,
		"table_id":  state.TableID,
		"group_id":  groupID,
		"dissolved": len(transition.Dissolved) > 0,
	}).Info("Table detached from group")
	return transition, nil
}

// reservedGroups mengembalikan grup (dari groupIDs) yang punya reservasi
func reservedGroups(tx *gorm.DB, groupIDs []uint) ([]uint, error) {
	var reserved []uint
	if err := tx.Model(&models.Reservation{}).
		Where("group_id IN ?", groupIDs).
		Order("group_id ASC").
		Pluck("group_id", &reserved).Error; err != nil {
		return nil, fmt.Errorf("failed to check reservations: %w", err)
	}
	return reserved, nil
}

// pruneGroups menghapus grup yang tidak punya anggota lagi
func pruneGroups(tx *gorm.DB, groupIDs []uint) (dissolved, reduced []uint, err error) {
	dissolved, reduced = []uint{}, []uint{}
	for _, id := range groupIDs {
		var members int64
		if err := tx.Model(&models.TableState{}).Where("group_id = ?", id).Count(&members).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to count group members: %w", err)
		}
		if members > 0 {
			reduced = append(reduced, id)
			continue
		}
		if err := tx.Delete(&models.TableGroup{}, id).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to delete empty group %d: %w", id, err)
		}
		dissolved = append(dissolved, id)
	}
	return dissolved, reduced, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func groupIDsOf(states []models.TableState) []uint {
	var ids []uint
	for _, st := range states {
		if st.GroupID != nil {
			ids = append(ids, *st.GroupID)
		}
	}
	return uniqueIDs(ids)
}

func missingTables(ids []uint, states []models.TableState) []uint {
	found := make(map[uint]bool, len(states))
	for _, st := range states {
		found[st.TableID] = true
	}
	var missing []uint
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
