package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/dto"
	"github.com/JEerdekens/bookclub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ClubHandler struct {
	clubService service.ClubService
	membership  service.MembershipService
	stats       service.ClubStatsService
}

func NewClubHandler(clubService service.ClubService, membership service.MembershipService, stats service.ClubStatsService) *ClubHandler {
	return &ClubHandler{
		clubService: clubService,
		membership:  membership,
		stats:       stats,
	}
}

// RegisterRoutes registers club-related routes
func (h *ClubHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.POST("/join", h.Join)
	rg.GET("/home", h.Home)
	rg.GET("/members", h.Members)
	rg.GET("/want-to-read", h.WantToRead)
	rg.GET("/picks", h.Picks)
	rg.GET("/past-reads", h.PastReads)
	rg.GET("/locations", h.Locations)
	rg.POST("/schedule", h.Schedule)
	rg.POST("/current-book", h.SelectCurrentBook)
}

func (h *ClubHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), req.Name, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) Join(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.JoinClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.clubService.Join(c.Request.Context(), userID.(string), req.ClubID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined club"})
}

// Home returns the "currently reading" view. An empty body section
// means the caller has no club, which the frontend renders as its own
// state rather than an error.
func (h *ClubHandler) Home(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	view, err := h.clubService.Home(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ClubHandler) Members(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	membership, err := h.membership.Resolve(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"club_id": membership.ClubID, "members": membership.Members})
}

func (h *ClubHandler) WantToRead(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	membership, err := h.membership.Resolve(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	books, err := h.stats.WantToReadList(c.Request.Context(), membership.MemberIDs())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, books)
}

// Picks lists books wanted by at least one member that no member has
// finished, for the meeting scheduling dropdown.
func (h *ClubHandler) Picks(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	membership, err := h.membership.Resolve(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	books, err := h.stats.CandidatePicks(c.Request.Context(), membership.MemberIDs())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *ClubHandler) PastReads(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	membership, err := h.membership.Resolve(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if membership.Empty() {
		c.JSON(http.StatusOK, []any{})
		return
	}

	books, err := h.stats.PastReads(c.Request.Context(), *membership.ClubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *ClubHandler) Locations(c *gin.Context) {
	locations, err := h.clubService.Locations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (h *ClubHandler) Schedule(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	if err := h.clubService.ScheduleMeeting(c.Request.Context(), userID.(string), date, req.Time, req.Location, req.BookID); err != nil {
		if errors.Is(err, service.ErrNoClub) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "book club scheduled"})
}

func (h *ClubHandler) SelectCurrentBook(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SelectBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.clubService.SelectCurrentBook(c.Request.Context(), userID.(string), req.BookID); err != nil {
		if errors.Is(err, service.ErrNoClub) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "current book updated"})
}
