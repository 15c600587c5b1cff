package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
// ID is a UUID string, keeping API compatibility with the document-database
// ObjectID format of the original system.
type Base struct {
	ID        string    `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// MediaRef points at an uploaded remote asset. The two fields are present
// together or absent together; PublicID is the authoritative key for deleting
// the remote asset, never the URL.
type MediaRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Present reports whether the reference carries an asset.
func (m MediaRef) Present() bool { return m.URL != "" || m.PublicID != "" }
