package models

import "time"

type Reservation struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	LayoutInstanceID uint           `gorm:"not null;index" json:"layout_instance_id"`
	LayoutInstance   LayoutInstance `gorm:"foreignKey:LayoutInstanceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// satu grup maksimal satu reservasi
	GroupID   uint       `gorm:"not null;uniqueIndex" json:"group_id"`
	Group     TableGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Time      string     `gorm:"type:varchar(5);not null" json:"time"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	PartySize int        `gorm:"not null" json:"party_size"`
	Notes     *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}
