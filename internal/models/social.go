package models

// SocialLinkModel is one social profile link shown in the site footer.
type SocialLinkModel struct {
	Base
	Platform  string `json:"platform"  gorm:"not null"`
	URL       string `json:"url"       gorm:"not null"`
	SortOrder int    `json:"sortOrder" gorm:"default:0"`
}

func (SocialLinkModel) TableName() string { return "social_links" }
