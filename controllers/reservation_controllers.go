package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Reservations: services.NewReservationService(db)}
}

type reservationRequest struct {
	GroupID       uint    `json:"group_id" binding:"required"`
	ReservationID *uint   `json:"reservation_id"`
	Time          string  `json:"time" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	PartySize     int     `json:"party_size" binding:"required"`
	Notes         *string `json:"notes"`
}

func (r reservationRequest) input() services.ReservationInput {
	return services.ReservationInput{
		Time:      r.Time,
		Name:      r.Name,
		PartySize: r.PartySize,
		Notes:     r.Notes,
	}
}

// GetReservations -> semua reservasi pada tanggal tersebut
func (rc *ReservationController) GetReservations(c *gin.Context) {
	reservations, err := rc.Reservations.ListForDate(c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// SaveReservation -> create, atau update jika reservation_id dikirim
func (rc *ReservationController) SaveReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var target services.ReservationTarget = services.CreateReservation{}
	if req.ReservationID != nil {
		target = services.UpdateReservation{ID: *req.ReservationID}
	}
	rc.upsert(c, req, target)
}

// UpdateReservation -> update reservasi berdasarkan path param
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "reservation_id")
	if !ok {
		return
	}

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	rc.upsert(c, req, services.UpdateReservation{ID: reservationID})
}

func (rc *ReservationController) upsert(c *gin.Context, req reservationRequest, target services.ReservationTarget) {
	reservation, err := rc.Reservations.Upsert(c.Param("date"), req.GroupID, req.input(), target)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if _, isCreate := target.(services.CreateReservation); isCreate {
		utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// DeleteReservation -> hapus reservasi (idempoten)
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "reservation_id")
	if !ok {
		return
	}
	if err := rc.Reservations.Delete(c.Param("date"), reservationID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"id": reservationID})
}
