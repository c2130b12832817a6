package api

import (
	"ScoreSync/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter gin engine with every route and pprof
func NewRouter(syncService *service.SyncService, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	pprof.Register(r)

	syncHandler := NewSyncHandler(syncService, logger)
	r.POST("/sync/run", syncHandler.RunSync)

	rosterHandler := NewRosterHandler(syncService, logger)
	r.GET("/api/games", rosterHandler.ListGames)
	r.GET("/api/players", rosterHandler.ListPlayers)

	runHandler := NewRunHandler(syncService.Runs(), logger)
	r.GET("/api/runs", runHandler.ListRuns)
	r.GET("/api/runs/:run_id", runHandler.GetRun)

	return r
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		}).Debug("request")
	}
}
