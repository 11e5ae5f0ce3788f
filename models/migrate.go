package models

// All mengembalikan seluruh model dalam urutan migrasi
func All() []interface{} {
	return []interface{}{
		&Table{},
		&LayoutInstance{},
		&TableGroup{},
		&TableState{},
		&Reservation{},
	}
}
