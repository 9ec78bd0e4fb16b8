package models

import "time"

// Progress is one reader's completion percentage for one book.
// The composite primary key makes the (user, book) pair unique at the
// store level, so upserts are conditional puts rather than check-then-act.
type Progress struct {
	UserID    string    `gorm:"type:uuid;not null;primaryKey;index:idx_user_book_progress" json:"user_id"`
	BookID    int64     `gorm:"not null;primaryKey;index:idx_user_book_progress" json:"book_id"`
	Percent   float64   `gorm:"not null;default:0;check:percent >= 0 AND percent <= 100" json:"percent"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Progress) TableName() string {
	return "progress"
}
