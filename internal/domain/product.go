package domain

import "time"

// DefaultProductImage is stored when a product is saved without images,
// so every product always renders with at least one picture.
const DefaultProductImage = "images/default-card.png"

// Product is a sellable NFC card model.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id,string"`
	Title       string    `gorm:"index" json:"title" form:"title"`
	Description string    `gorm:"size:4096" json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"` // price in main currency units
	Colors      []string  `gorm:"serializer:json" json:"colors" form:"colors"`
	Images      []string  `gorm:"serializer:json" json:"images" form:"images"` // public-relative paths, at least one after save
	OwnerID     int64     `gorm:"index" json:"owner_id,string"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "crm_product"
}
