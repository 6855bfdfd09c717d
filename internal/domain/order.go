package domain

import "time"

// PersonalInfo is the card holder contact block of an order.
type PersonalInfo struct {
	Name         string   `json:"name" form:"name"`
	Email        string   `json:"email" form:"email"`
	Phone        string   `json:"phone" form:"phone"`
	PhoneNumbers []string `gorm:"serializer:json" json:"phoneNumbers,omitempty"`
}

// CardDesign describes the customization of the printed NFC card.
type CardDesign struct {
	Color              string `json:"color" form:"color"`
	IncludePrintedLogo bool   `json:"includePrintedLogo" form:"includePrintedLogo"`
	CompanyLogo        string `gorm:"size:1024" json:"companyLogo,omitempty"` // public-relative upload path
}

// DeliveryInfo is the shipping destination of an order.
type DeliveryInfo struct {
	Country        string `gorm:"size:8" json:"country" form:"country"`
	City           string `gorm:"size:64" json:"city" form:"city"`
	Address        string `gorm:"size:1024" json:"address" form:"address"`
	UseSameContact bool   `json:"useSameContact" form:"useSameContact"`
}

type Order struct {
	ID                int64        `gorm:"primaryKey" json:"id,string"`
	CustomerID        int64        `gorm:"index" json:"customer_id,string"`
	ProductID         int64        `gorm:"index" json:"product_id,string"`
	PersonalInfo      PersonalInfo `gorm:"embedded;embeddedPrefix:personal_" json:"personalInfo"`
	CardDesign        CardDesign   `gorm:"embedded;embeddedPrefix:design_" json:"cardDesign"`
	DeliveryInfo      DeliveryInfo `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryInfo"`
	ProductPrice      float64      `json:"productPrice"`
	LogoSurcharge     float64      `json:"logoSurcharge"`
	Total             float64      `json:"total"` // always ProductPrice + LogoSurcharge
	Status            string       `gorm:"size:32;index" json:"status"`
	Notes             string       `gorm:"size:4096" json:"notes"`
	EstimatedDelivery time.Time    `json:"estimatedDelivery"`
	CreatedByID       int64        `gorm:"index" json:"created_by_id,string"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`

	Customer  *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (Order) TableName() string {
	return "crm_order"
}
