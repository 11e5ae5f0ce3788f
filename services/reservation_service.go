package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-floorplan/models"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationInput adalah field reservasi yang bisa diisi pemanggil
type ReservationInput struct {
	Time      string
	Name      string
	PartySize int
	Notes     *string
}

// ReservationTarget membedakan create dan update secara eksplisit:
// CreateReservation atau UpdateReservation{ID}.
type ReservationTarget interface {
	reservationTarget()
}

type CreateReservation struct{}

type UpdateReservation struct {
	ID uint
}

func (CreateReservation) reservationTarget() {}
func (UpdateReservation) reservationTarget() {}

// ReservationService mengelola reservasi (maksimal satu) pada sebuah grup
type ReservationService struct {
	db *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// Upsert membuat atau mengubah reservasi pada grup sesuai target
func (s *ReservationService) Upsert(date string, groupID uint, in ReservationInput, target ReservationTarget) (*models.Reservation, error) {
	switch t := target.(type) {
	case CreateReservation:
		return s.Create(date, groupID, in)
	case UpdateReservation:
		return s.Update(date, groupID, t.ID, in)
	default:
		return nil, validationf("unknown reservation target %T", target)
	}
}

// Create mengikat reservasi baru ke grup. Ditolak jika grup sudah punya reservasi.
func (s *ReservationService) Create(date string, groupID uint, in ReservationInput) (*models.Reservation, error) {
	in, err := normalizeReservationInput(in)
	if err != nil {
		return nil, err
	}

	var reservation models.Reservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := findInstance(tx, date)
		if err != nil {
			return err
		}
		if err := ensureGroup(tx, instance, groupID); err != nil {
			return err
		}

		var existing models.Reservation
		findErr := tx.Where("group_id = ?", groupID).First(&existing).Error
		if findErr == nil {
			return conflictf("group %d already has reservation %d", groupID, existing.ID)
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing reservation: %w", findErr)
		}

		reservation = models.Reservation{
			LayoutInstanceID: instance.ID,
			GroupID:          groupID,
			Time:             in.Time,
			Name:             in.Name,
			PartySize:        in.PartySize,
			Notes:            in.Notes,
		}
		if err := tx.Omit(clause.Associations).Create(&reservation).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"date":           date,
		"group_id":       groupID,
		"reservation_id": reservation.ID,
		"time":           reservation.Time,
		"party_size":     reservation.PartySize,
	}).Info("Reservation created")
	return &reservation, nil
}

// Update mengubah reservasi yang sudah ada. Grupnya tidak bisa dipindah;
// memindah reservasi berarti delete lalu create.
func (s *ReservationService) Update(date string, groupID, reservationID uint, in ReservationInput) (*models.Reservation, error) {
	in, err := normalizeReservationInput(in)
	if err != nil {
		return nil, err
	}

	var reservation models.Reservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		instance, err := findInstance(tx, date)
		if err != nil {
			return err
		}
		if err := ensureGroup(tx, instance, groupID); err != nil {
			return err
		}

		if err := tx.Where("id = ? AND layout_instance_id = ?", reservationID, instance.ID).
			First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("reservation %d does not exist in layout %s", reservationID, instance.Date)
			}
			return fmt.Errorf("failed to look up reservation: %w", err)
		}
		if reservation.GroupID != groupID {
			return validationf("reservation %d is bound to group %d and cannot move to group %d",
				reservation.ID, reservation.GroupID, groupID)
		}

		if err := tx.Model(&reservation).Omit(clause.Associations).Updates(map[string]interface{}{
			"time":       in.Time,
			"name":       in.Name,
			"party_size": in.PartySize,
			"notes":      in.Notes,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("failed to update reservation: %w", err)
		}

		return tx.First(&reservation, reservation.ID).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Reservation %d updated (group=%d, time=%s)", reservation.ID, groupID, reservation.Time)
	return &reservation, nil
}

// Delete menghapus reservasi. Idempoten: id yang tidak ada bukan error.
func (s *ReservationService) Delete(date string, reservationID uint) error {
	instance, err := findInstance(s.db, date)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	res := s.db.Where("id = ? AND layout_instance_id = ?", reservationID, instance.ID).
		Delete(&models.Reservation{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("Reservation %d deleted from %s", reservationID, instance.Date)
	}
	return nil
}

// ListForDate mengembalikan reservasi satu tanggal urut jam
func (s *ReservationService) ListForDate(date string) ([]models.Reservation, error) {
	instance, err := findInstance(s.db, date)
	if err != nil {
		return nil, err
	}
	return listReservations(s.db, instance.ID)
}

func listReservations(db *gorm.DB, instanceID uint) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	if err := db.Where("layout_instance_id = ?", instanceID).
		Order("time ASC, id ASC").
		Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func ensureGroup(tx *gorm.DB, instance *models.LayoutInstance, groupID uint) error {
	var count int64
	if err := tx.Model(&models.TableGroup{}).
		Where("id = ? AND layout_instance_id = ?", groupID, instance.ID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up group: %w", err)
	}
	if count == 0 {
		return notFoundf("group %d does not exist in layout %s", groupID, instance.Date)
	}
	return nil
}

func normalizeReservationInput(in ReservationInput) (ReservationInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, validationf("name is required")
	}
	if in.PartySize <= 0 {
		return in, validationf("party_size must be a positive integer")
	}

	t, err := utils.ParseClockTime(strings.TrimSpace(in.Time))
	if err != nil {
		return in, validationf("%v", err)
	}
	in.Time = t

	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		if notes == "" {
			in.Notes = nil
		} else {
			in.Notes = &notes
		}
	}
	return in, nil
}
