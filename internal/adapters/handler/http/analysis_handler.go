package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habit-analysis-engine/internal/core/domain"
	"github.com/habitloop/habit-analysis-engine/internal/core/services"
)

type AnalysisHandler struct {
	svc *services.AnalysisService
}

func NewAnalysisHandler(svc *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

func (h *AnalysisHandler) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/habits/:id/streaks", h.GetStreaks)
		analytics.GET("/habits/:id/struggle", h.GetStruggle)
		analytics.GET("/struggles", h.RankStruggles)
		analytics.GET("/summary", h.GetSummary)
		analytics.GET("/longest-streak", h.GetLongestStreak)
	}
}

// asOf reads the optional as_of query parameter. Every analysis endpoint
// accepts one so results can be reproduced for any reference date.
func asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), true
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of format, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

func (h *AnalysisHandler) GetStreaks(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}

	result, err := h.svc.GetStreaks(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze streaks"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) GetStruggle(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}

	result, err := h.svc.GetStruggle(c.Request.Context(), c.Param("id"), at)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to score habit"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) RankStruggles(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}

	results, err := h.svc.RankStruggles(c.Request.Context(), at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank habits"})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *AnalysisHandler) GetSummary(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}

	report, err := h.svc.GetSummary(c.Request.Context(), at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalysisHandler) GetLongestStreak(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}

	name, length, err := h.svc.LongestStreak(c.Request.Context(), at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute longest streak"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habit_name":     name,
		"longest_streak": length,
	})
}
