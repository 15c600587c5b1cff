package models

// CompetencyModel is one core-expertise card.
type CompetencyModel struct {
	Base
	Name        string `json:"name"        gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	SortOrder   int    `json:"sortOrder"   gorm:"default:0"`
}

func (CompetencyModel) TableName() string { return "competencies" }
