package models

type ClubLocation struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Address string `gorm:"not null" json:"address"`
}

func (ClubLocation) TableName() string {
	return "club_locations"
}
