package dto

type CreateClubRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type JoinClubRequest struct {
	ClubID int64 `json:"club_id" binding:"required,gt=0"`
}

type ScheduleMeetingRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	Time     string `json:"time" binding:"required"`
	Location string `json:"location" binding:"required"`
	BookID   int64  `json:"book_id" binding:"required,gt=0"`
}

type SelectBookRequest struct {
	BookID int64 `json:"book_id" binding:"required,gt=0"`
}
