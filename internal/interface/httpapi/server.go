// Package httpapi は記事生成ジョブの受付・照会を行うHTTP APIを提供する。
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jinford/seo-writer/internal/core/article"
)

// Server はHTTP APIのハンドラ群を保持します
type Server struct {
	service  *article.Service
	logger   *slog.Logger
	apiToken string // 空文字なら認証なし
}

func NewServer(service *article.Service, logger *slog.Logger, apiToken string) *Server {
	return &Server{
		service:  service,
		logger:   logger,
		apiToken: apiToken,
	}
}

// Router はルーティング設定済みの gin.Engine を返します
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(requestMetrics())

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/")
	if s.apiToken != "" {
		api.Use(s.requireToken())
	}
	api.POST("/generate-article", s.handleGenerateArticle)
	api.GET("/job/:job_id", s.handleGetJob)

	return router
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "seo-writer",
		"endpoints": gin.H{
			"generate": "POST /generate-article",
			"status":   "GET /job/{job_id}",
			"health":   "GET /health",
			"metrics":  "GET /metrics",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
