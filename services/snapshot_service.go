package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-floorplan/models"
	"gorm.io/gorm"
)

// TablePlacement adalah TableState yang digabung dengan metadata katalog
type TablePlacement struct {
	TableID  uint   `json:"table_id"`
	Name     string `json:"name"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Capacity *int   `json:"capacity,omitempty"`
	DefaultX int    `json:"default_x"`
	DefaultY int    `json:"default_y"`
	GroupID  *uint  `json:"group_id"`
}

type GroupView struct {
	GroupID       uint   `json:"group_id"`
	TableIDs      []uint `json:"table_ids"`
	ReservationID *uint  `json:"reservation_id,omitempty"`
}

// LayoutSnapshot adalah read-model lengkap satu layout
type LayoutSnapshot struct {
	InstanceID   uint                 `json:"instance_id"`
	Date         string               `json:"date"`
	Tables       []TablePlacement     `json:"tables"`
	Groups       []GroupView          `json:"groups"`
	Reservations []models.Reservation `json:"reservations"`
}

// SnapshotService menyusun LayoutSnapshot. Murni baca, tidak memakai transaksi.
type SnapshotService struct {
	db *gorm.DB
}

func NewSnapshotService(db *gorm.DB) *SnapshotService {
	return &SnapshotService{db: db}
}

func (s *SnapshotService) Snapshot(instance *models.LayoutInstance) (*LayoutSnapshot, error) {
	placements := []TablePlacement{}
	if err := s.db.Table("table_states AS ts").
		Select("ts.table_id, t.name, ts.x, ts.y, t.width, t.height, t.capacity, t.default_x, t.default_y, ts.group_id").
		Joins("JOIN tables AS t ON t.id = ts.table_id").
		Where("ts.layout_instance_id = ?", instance.ID).
		Order("ts.table_id ASC").
		Scan(&placements).Error; err != nil {
		return nil, fmt.Errorf("failed to load table placements: %w", err)
	}

	reservations, err := listReservations(s.db, instance.ID)
	if err != nil {
		return nil, err
	}

	return &LayoutSnapshot{
		InstanceID:   instance.ID,
		Date:         instance.Date,
		Tables:       placements,
		Groups:       aggregateGroups(placements, reservations),
		Reservations: reservations,
	}, nil
}

// aggregateGroups mengelompokkan meja per group_id, urut group_id
func aggregateGroups(placements []TablePlacement, reservations []models.Reservation) []GroupView {
	byGroup := make(map[uint]*GroupView)
	var order []uint
	for _, p := range placements {
		if p.GroupID == nil {
			continue
		}
		gv, ok := byGroup[*p.GroupID]
		if !ok {
			gv = &GroupView{GroupID: *p.GroupID}
			byGroup[*p.GroupID] = gv
			order = append(order, *p.GroupID)
		}
		gv.TableIDs = append(gv.TableIDs, p.TableID)
	}

	for i := range reservations {
		if gv, ok := byGroup[reservations[i].GroupID]; ok {
			id := reservations[i].ID
			gv.ReservationID = &id
		}
	}

	order = uniqueIDs(order)
	groups := make([]GroupView, 0, len(order))
	for _, id := range order {
		groups = append(groups, *byGroup[id])
	}
	return groups
}
