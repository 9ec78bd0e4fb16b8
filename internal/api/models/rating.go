package models

import "time"

// Rating is a half-star rating in [0.5, 5], one row per (user, book).
type Rating struct {
	UserID    string    `gorm:"type:uuid;not null;primaryKey;index:idx_user_book_rating" json:"user_id"`
	BookID    int64     `gorm:"not null;primaryKey;index:idx_user_book_rating" json:"book_id"`
	Value     float64   `gorm:"not null;check:value >= 0.5 AND value <= 5" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"book,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}
