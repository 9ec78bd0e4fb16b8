package models

import "time"

type Book struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Author    *string    `json:"author,omitempty"`
	ImageURL  *string    `json:"image_url,omitempty"`
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
}

func (Book) TableName() string {
	return "books"
}
