package models

// JourneyKind separates academic from professional entries.
type JourneyKind string

const (
	JourneyAcademic     JourneyKind = "academic"
	JourneyProfessional JourneyKind = "professional"
)

// JourneyModel is one academic or professional journey entry.
type JourneyModel struct {
	Base
	Kind        JourneyKind `json:"kind"        gorm:"type:varchar(16);index;not null"`
	Institution string      `json:"institution" gorm:"not null"`
	Role        string      `json:"role"`
	Description string      `json:"description" gorm:"type:text"`
	StartYear   string      `json:"startYear"`
	EndYear     string      `json:"endYear"`
	Current     bool        `json:"current"     gorm:"default:false"`
	SortOrder   int         `json:"sortOrder"   gorm:"default:0"`
}

func (JourneyModel) TableName() string { return "journey_entries" }
