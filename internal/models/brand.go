package models

// BrandModel is one brand/client logo shown on the home page.
type BrandModel struct {
	Base
	Name       string   `json:"name"       gorm:"not null"`
	WebsiteURL string   `json:"websiteUrl"`
	Logo       MediaRef `json:"logo"       gorm:"embedded;embeddedPrefix:logo_"`
	SortOrder  int      `json:"sortOrder"  gorm:"default:0"`
}

func (BrandModel) TableName() string { return "brands" }
