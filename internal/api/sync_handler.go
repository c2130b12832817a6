package api

import (
	"net/http"
	"strconv"

	"ScoreSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewSyncHandler(syncService *service.SyncService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// RunSync runs one sync and returns its report
// POST /sync/run?dry_run=true
func (h *SyncHandler) RunSync(c *gin.Context) {
	dryRun, err := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dry_run must be a boolean"})
		return
	}

	report, err := h.syncService.Run(c.Request.Context(), service.SyncOptions{DryRun: dryRun})
	if err != nil {
		h.logger.WithError(err).Error("RunSync failed")
		body := gin.H{"error": err.Error()}
		if report != nil {
			body["report"] = report
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}

	c.JSON(http.StatusOK, report)
}
