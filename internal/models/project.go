package models

// ProjectModel stores portfolio projects.
type ProjectModel struct {
	Base
	Title       string      `json:"title"       gorm:"not null"`
	Slug        string      `json:"slug"        gorm:"uniqueIndex;not null"`
	Description string      `json:"description" gorm:"type:text"`
	TechStack   StringSlice `json:"techStack"   gorm:"type:json;serializer:json"`
	Image       MediaRef    `json:"image"       gorm:"embedded;embeddedPrefix:image_"`
	RepoURL     string      `json:"repoUrl"`
	LiveURL     string      `json:"liveUrl"`
	Published   bool        `json:"published"   gorm:"default:false;index"`
	Featured    bool        `json:"featured"    gorm:"default:false"`
	SortOrder   int         `json:"sortOrder"   gorm:"default:0"`
}

func (ProjectModel) TableName() string { return "projects" }
