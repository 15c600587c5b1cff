package models

// PostModel is a blog post.
type PostModel struct {
	Base
	Title     string      `json:"title"     gorm:"not null"`
	Slug      string      `json:"slug"      gorm:"uniqueIndex;not null"`
	Body      string      `json:"body"      gorm:"type:longtext"`
	Excerpt   string      `json:"excerpt"   gorm:"type:text"`
	Category  string      `json:"category"  gorm:"index"`
	Tags      StringSlice `json:"tags"      gorm:"type:json;serializer:json"`
	Cover     MediaRef    `json:"cover"     gorm:"embedded;embeddedPrefix:cover_"`
	Published bool        `json:"published" gorm:"default:false;index"`
	Featured  bool        `json:"featured"  gorm:"default:false"`
	SortOrder int         `json:"sortOrder" gorm:"default:0"`
}

func (PostModel) TableName() string { return "posts" }
