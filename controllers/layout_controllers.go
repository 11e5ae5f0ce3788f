package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floorplan/services"
	"github.com/yeremiapane/restaurant-floorplan/utils"
	"gorm.io/gorm"
)

type LayoutController struct {
	Layouts  *services.LayoutService
	Grouping *services.GroupingService
}

func NewLayoutController(db *gorm.DB) *LayoutController {
	return &LayoutController{
		Layouts:  services.NewLayoutService(db),
		Grouping: services.NewGroupingService(db),
	}
}

// GetAllLayouts -> daftar tanggal yang sudah dibuka
func (lc *LayoutController) GetAllLayouts(c *gin.Context) {
	instances, err := lc.Layouts.ListInstances()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of layouts", instances)
}

// OpenLayout -> memastikan layout untuk tanggal tersebut ada
func (lc *LayoutController) OpenLayout(c *gin.Context) {
	instance, created, err := lc.Layouts.EnsureInstance(c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	code := http.StatusOK
	message := "Layout already open"
	if created {
		code = http.StatusCreated
		message = "Layout created"
	}
	utils.RespondJSON(c, code, message, gin.H{
		"instance_id": instance.ID,
		"date":        instance.Date,
		"existed":     !created,
	})
}

// GetLayout -> snapshot layout tanpa membuat instance baru
func (lc *LayoutController) GetLayout(c *gin.Context) {
	snapshot, err := lc.Layouts.LoadInstance(c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Layout snapshot", snapshot)
}

// UpdateTablePosition -> pindah posisi meja (dan/atau lepas dari grup)
func (lc *LayoutController) UpdateTablePosition(c *gin.Context) {
	tableID, ok := parseIDParam(c, "table_id")
	if !ok {
		return
	}

	var body struct {
		X          *float64 `json:"x"`
		Y          *float64 `json:"y"`
		ClearGroup bool     `json:"clear_group"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	state, err := lc.Layouts.UpdatePosition(c.Param("date"), tableID, services.PositionUpdate{
		X:          body.X,
		Y:          body.Y,
		ClearGroup: body.ClearGroup,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table position updated", state)
}

// DetachTable -> keluarkan satu meja dari grupnya
func (lc *LayoutController) DetachTable(c *gin.Context) {
	tableID, ok := parseIDParam(c, "table_id")
	if !ok {
		return
	}
	transition, err := lc.Grouping.DetachTable(c.Param("date"), tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detached", transition)
}

// CreateGroup -> gabungkan meja menjadi grup baru
func (lc *LayoutController) CreateGroup(c *gin.Context) {
	var body struct {
		TableIDs []uint `json:"table_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	transition, err := lc.Grouping.Group(c.Param("date"), body.TableIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Group created", transition)
}

// DeleteGroup -> bubarkan grup
func (lc *LayoutController) DeleteGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "group_id")
	if !ok {
		return
	}
	if err := lc.Grouping.Ungroup(c.Param("date"), groupID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Group dissolved", gin.H{"group_id": groupID})
}
