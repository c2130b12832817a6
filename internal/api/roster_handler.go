package api

import (
	"net/http"

	"ScoreSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RosterHandler read-only views over a fresh ingest pass
type RosterHandler struct {
	syncService *service.SyncService
	logger      *logrus.Logger
}

func NewRosterHandler(syncService *service.SyncService, logger *logrus.Logger) *RosterHandler {
	return &RosterHandler{syncService: syncService, logger: logger}
}

// ListGames normalized games
// GET /api/games
func (h *RosterHandler) ListGames(c *gin.Context) {
	res, err := h.syncService.Ingest(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListGames failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"games":          res.Normalized,
		"total":          len(res.Normalized),
		"failed_sources": res.FailedSources(),
		"status":         res.GamesLoad.Status().String(),
	})
}

// ListPlayers identities seen in the games, with their aliases and alias conflicts
// GET /api/players
func (h *RosterHandler) ListPlayers(c *gin.Context) {
	res, err := h.syncService.Ingest(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListPlayers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	players := make([]gin.H, 0, len(res.Identities))
	for _, name := range res.Identities {
		aliases, known := res.Aliases[name]
		if aliases == nil {
			aliases = []string{}
		}
		players = append(players, gin.H{"name": name, "aliases": aliases, "is_sub": !known})
	}

	c.JSON(http.StatusOK, gin.H{
		"players":     players,
		"conflicts":   res.Conflicts,
		"overwritten": res.AliasesLoad.Overwritten,
	})
}
