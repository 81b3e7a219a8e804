package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/frontend/dto"
	"libraryhub/internal/frontend/service"
)

// SyncHandler receives replication instructions from the admin service. In a
// production deployment this route must only be reachable from the trusted
// admin network.
type SyncHandler struct {
	svc service.SyncService
}

func NewSyncHandler(svc service.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

func (h *SyncHandler) RegisterRoutes(r *gin.Engine, mw ...gin.HandlerFunc) {
	handlers := append(mw, h.Apply)
	r.POST("/sync/books", handlers...)
}

func (h *SyncHandler) Apply(c *gin.Context) {
	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sync payload"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Apply(ctx, req); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sync successful"})
}
