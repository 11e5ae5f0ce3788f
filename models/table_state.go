package models

// TableState menyimpan posisi dan grup sebuah meja dalam satu LayoutInstance.
// Identitasnya adalah pasangan (LayoutInstanceID, TableID).
type TableState struct {
	LayoutInstanceID uint           `gorm:"primaryKey;autoIncrement:false" json:"layout_instance_id"`
	LayoutInstance   LayoutInstance `gorm:"foreignKey:LayoutInstanceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TableID          uint           `gorm:"primaryKey;autoIncrement:false" json:"table_id"`
	Table            Table          `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	X                int            `gorm:"not null;default:0" json:"x"`
	Y                int            `gorm:"not null;default:0" json:"y"`
	GroupID          *uint          `gorm:"index" json:"group_id"`
	Group            *TableGroup    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}
