package models

import "time"

// ClubBook is the club's reading history. A row with a non-null
// FinishedAt in the past is a "past read"; a null FinishedAt means the
// club has not closed the book out yet.
type ClubBook struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID     int64      `gorm:"not null;index" json:"club_id"`
	BookID     int64      `gorm:"not null;index" json:"book_id"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (ClubBook) TableName() string {
	return "club_books"
}
