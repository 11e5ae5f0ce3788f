package models

import "time"

// TableGroup menggabungkan satu atau lebih meja menjadi satu unit yang bisa
// direservasi. Nama tabel bukan "groups" karena reserved word di MySQL 8.
type TableGroup struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	LayoutInstanceID uint           `gorm:"not null;index" json:"layout_instance_id"`
	LayoutInstance   LayoutInstance `gorm:"foreignKey:LayoutInstanceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
}
