package api

import (
	"errors"
	"net/http"
	"strconv"

	"ScoreSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RunHandler sync run ledger queries
type RunHandler struct {
	runs   repository.RunRepository // nil when database.dsn is empty
	logger *logrus.Logger
}

func NewRunHandler(runs repository.RunRepository, logger *logrus.Logger) *RunHandler {
	return &RunHandler{runs: runs, logger: logger}
}

// ListRuns newest first
// GET /api/runs?page=1&page_size=20
func (h *RunHandler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run ledger is not configured"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	runs, total, err := h.runs.ListRuns(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListRuns failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":      runs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetRun one ledger row
// GET /api/runs/:run_id
func (h *RunHandler) GetRun(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run ledger is not configured"})
		return
	}

	run, err := h.runs.GetRun(c.Request.Context(), c.Param("run_id"))
	if errors.Is(err, repository.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("GetRun failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, run)
}
