package models

import "time"

// LayoutInstance adalah snapshot denah untuk satu tanggal kalender
type LayoutInstance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"date"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
