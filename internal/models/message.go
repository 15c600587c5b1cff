package models

// MessageModel is a contact-form submission. Created by unauthenticated
// visitors; read, marked and deleted only by administrators.
type MessageModel struct {
	Base
	Name    string `json:"name"    gorm:"not null"`
	Email   string `json:"email"   gorm:"not null"`
	Subject string `json:"subject"`
	Body    string `json:"body"    gorm:"type:text;not null"`
	Read    bool   `json:"read"    gorm:"default:false;index"`
}

func (MessageModel) TableName() string { return "messages" }
