package models

import "time"

type Club struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	CreatorID     string    `gorm:"type:uuid;not null" json:"creator_id"`
	CurrentBookID *int64    `json:"current_book_id,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Next meeting info, flattened onto the club row like the
	// nextMeeting sub-document it replaces.
	NextMeetingDate     *time.Time `json:"next_meeting_date,omitempty"`
	NextMeetingTime     *string    `json:"next_meeting_time,omitempty"`
	NextMeetingLocation *string    `json:"next_meeting_location,omitempty"`
	NextMeetingBookID   *int64     `json:"next_meeting_book_id,omitempty"`

	// Associations
	Creator     *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	CurrentBook *Book `gorm:"foreignKey:CurrentBookID" json:"current_book,omitempty"`
}

func (Club) TableName() string {
	return "clubs"
}
