package models

import "time"

// WantToRead marks reading intent. Row presence is the flag; there is
// no separate boolean field. AddedAt doubles as an audit timestamp.
type WantToRead struct {
	UserID  string    `gorm:"type:uuid;not null;primaryKey" json:"user_id"`
	BookID  int64     `gorm:"not null;primaryKey" json:"book_id"`
	AddedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (WantToRead) TableName() string {
	return "want_to_read"
}
