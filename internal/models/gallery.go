package models

// GalleryItemModel is one image in the public gallery.
type GalleryItemModel struct {
	Base
	Title     string   `json:"title"     gorm:"not null"`
	Caption   string   `json:"caption"   gorm:"type:text"`
	Category  string   `json:"category"  gorm:"index"`
	Image     MediaRef `json:"image"     gorm:"embedded;embeddedPrefix:image_"`
	Published bool     `json:"published" gorm:"default:false;index"`
	SortOrder int      `json:"sortOrder" gorm:"default:0"`
}

func (GalleryItemModel) TableName() string { return "gallery_items" }
