package models

// ServiceModel is one offered service card.
type ServiceModel struct {
	Base
	Name        string   `json:"name"        gorm:"not null"`
	Description string   `json:"description" gorm:"type:text"`
	Icon        MediaRef `json:"icon"        gorm:"embedded;embeddedPrefix:icon_"`
	SortOrder   int      `json:"sortOrder"   gorm:"default:0"`
}

func (ServiceModel) TableName() string { return "services" }
