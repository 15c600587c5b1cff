package models

// FAQModel is one frequently-asked-question entry.
type FAQModel struct {
	Base
	Question  string `json:"question"  gorm:"not null"`
	Answer    string `json:"answer"    gorm:"type:text;not null"`
	Published bool   `json:"published" gorm:"default:false;index"`
	SortOrder int    `json:"sortOrder" gorm:"default:0"`
}

func (FAQModel) TableName() string { return "faqs" }
