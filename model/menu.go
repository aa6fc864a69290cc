package model

// MenuItem is a catalog entry, read-only for the order engine. There is no
// authoring surface; the catalog is seeded.
type MenuItem struct {
	DTO
	Name      string  `gorm:"not null" json:"name"`
	Slug      string  `gorm:"unique;not null" json:"slug"`
	Price     float64 `gorm:"not null" json:"price"`
	Category  string  `json:"category"`
	Available bool    `gorm:"default:true" json:"available"`
}

type MenuItems []MenuItem
