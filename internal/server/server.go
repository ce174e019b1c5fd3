package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/m1kezera/ai-faq-widget/internal/config"
)

const siteKeyHeader = "x-site-key"

// New wires the API routes. The widget talks to /ask and /leads; /docs
// and /sites are for the customer dashboard.
func New(cfg *config.ServerConfig, h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = []string{"Content-Type", "Accept", "Authorization", siteKeyHeader}
	if len(cfg.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.POST("/sites", h.RegisterSite)
	r.POST("/ask", requireSiteKey(), h.AskQuestion)
	r.POST("/docs/upload", requireSiteKey(), h.UploadDocs)

	leads := r.Group("/leads", requireSiteKey())
	leads.POST("", h.CreateLead)
	leads.GET("", h.ListLeads)
	leads.GET("/export", h.ExportLeads)

	return r
}

// requireSiteKey resolves the tenant header once and hands the key to
// handlers through the request context.
func requireSiteKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(siteKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing x-site-key header"})
			return
		}
		c.Set("siteKey", key)
		c.Next()
	}
}

func siteKey(c *gin.Context) string {
	return c.GetString("siteKey")
}
