package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gadget-scout/server/internal/agent/contextgen"
	logx "github.com/gadget-scout/server/pkg/logger"
)

// Server exposes the context pipeline over HTTP for deployments that cannot
// speak MCP stdio.
type Server struct {
	assembler *contextgen.Assembler
}

func NewServer(assembler *contextgen.Assembler) *Server {
	return &Server{assembler: assembler}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(gin.Logger(), gin.Recovery(), cors.New(corsConfig))

	router.GET("/health", s.health)
	api := router.Group("/api")
	{
		api.POST("/context", s.buildContext)
		api.POST("/tool-usage", s.recordToolUsage)
		api.GET("/registry", s.registrySnapshot)
		api.GET("/analytics", s.analytics)
		api.GET("/sessions/:id/summary", s.sessionSummary)
	}
	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type buildContextRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query" binding:"required"`
}

func (s *Server) buildContext(c *gin.Context) {
	var req buildContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	payload, err := s.assembler.BuildContext(c.Request.Context(), req.SessionID, req.Query)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", req.SessionID).Msg("failed to build context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build context"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"context":    payload,
	})
}

type toolUsageRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Tools     []string `json:"tools" binding:"required"`
	Succeeded *bool    `json:"succeeded"`
}

func (s *Server) recordToolUsage(c *gin.Context) {
	var req toolUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	succeeded := true
	if req.Succeeded != nil {
		succeeded = *req.Succeeded
	}

	if err := s.assembler.RecordToolUsage(c.Request.Context(), req.SessionID, req.Tools, succeeded); err != nil {
		logx.Error().Err(err).Str("sessionID", req.SessionID).Msg("failed to record tool usage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record tool usage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": len(req.Tools)})
}

func (s *Server) registrySnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.assembler.Registry().Snapshot())
}

func (s *Server) analytics(c *gin.Context) {
	reg := s.assembler.Registry()
	c.JSON(http.StatusOK, gin.H{
		"most_used_tools":  reg.MostUsed(5),
		"common_sequences": reg.CommonSequences(),
	})
}

func (s *Server) sessionSummary(c *gin.Context) {
	sessionID := c.Param("id")
	summary, err := s.assembler.RenderConversationSummary(c.Request.Context(), sessionID)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to render conversation summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render summary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"summary":    summary,
	})
}
