package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dailydigest/app/database"
)

func NewHandler(digestRepo database.DigestRepository, feedbackRepo database.FeedbackRepository,
	dispatcher DispatcherInterface, version string) *Handler {
	return &Handler{
		digestRepo:   digestRepo,
		feedbackRepo: feedbackRepo,
		dispatcher:   dispatcher,
		version:      version,
	}
}

func (h *Handler) GetDigest(c *gin.Context) {
	date := c.Param("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date parameter"})
		return
	}

	digest, err := h.digestRepo.GetDigest(c.Request.Context(), date)
	if err != nil {
		slog.Error("Database error", "operation", "get_digest", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if digest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No digest for this date"})
		return
	}

	c.JSON(http.StatusOK, digest)
}

func (h *Handler) PostFeedback(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Date == "" || req.ArticleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and articleId are required"})
		return
	}

	vote := database.Vote(req.Vote)
	if !vote.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vote must be \"up\" or \"down\""})
		return
	}

	record := database.FeedbackRecord{
		Date:       req.Date,
		ArticleID:  req.ArticleID,
		Title:      req.Title,
		SourceName: req.SourceName,
		Vote:       vote,
	}

	if err := h.feedbackRepo.StoreFeedback(c.Request.Context(), record); err != nil {
		slog.Error("Database error", "operation", "store_feedback", "date", req.Date,
			"article", req.ArticleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) PostTrigger(c *gin.Context) {
	if err := h.dispatcher.Dispatch(c.Request.Context()); err != nil {
		slog.Error("Workflow dispatch failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to trigger digest run",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Digest run triggered",
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	})
}
