package models

import "time"

// Table adalah definisi meja fisik di katalog. Tidak diubah saat runtime;
// posisi per tanggal disimpan di TableState.
type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"name"`
	DefaultX  int       `gorm:"not null;default:0" json:"default_x"`
	DefaultY  int       `gorm:"not null;default:0" json:"default_y"`
	Width     int       `gorm:"not null" json:"width"`
	Height    int       `gorm:"not null" json:"height"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
