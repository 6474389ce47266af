// Package server exposes the aggregation and classification pipeline over
// HTTP for the voice-assistant front end.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wiamouali-star/voice-acc-app/internal/cache"
	"github.com/wiamouali-star/voice-acc-app/internal/classify"
	"github.com/wiamouali-star/voice-acc-app/internal/config"
	"github.com/wiamouali-star/voice-acc-app/internal/feed"
)

// Fetcher produces a best-effort article snapshot.
type Fetcher interface {
	FetchArticles(ctx context.Context) []feed.Article
}

// Classifier resolves a query to a category, degrading internally instead of
// failing.
type Classifier interface {
	Classify(ctx context.Context, query string) classify.Result
}

// SearchSink records search queries.
type SearchSink interface {
	Log(ctx context.Context, query, category, method string)
}

// Server wires the components behind the HTTP routes. Collaborators are
// injected so handler tests can stub them out.
type Server struct {
	cfg        *config.Config
	fetcher    Fetcher
	classifier Classifier
	sink       SearchSink
	cache      *cache.Cache
}

func New(cfg *config.Config, fetcher Fetcher, classifier Classifier, sink SearchSink) *Server {
	return &Server{
		cfg:        cfg,
		fetcher:    fetcher,
		classifier: classifier,
		sink:       sink,
		cache:      cache.New(cfg.CacheTTL),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("panic in handler", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: "une erreur interne est survenue",
		})
	}))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", s.getHealth)
		api.GET("/news", s.getNews)
		api.GET("/sources", s.getSources)
		api.POST("/classify", s.postClassify)
		api.GET("/test", s.getTest)
	}

	// Serve the assistant front end when a static build is present.
	if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
		r.StaticFile("/", s.cfg.StaticDir+"/index.html")
		r.Static("/static", s.cfg.StaticDir)
	}

	return r
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	return s.Router().Run(fmt.Sprintf(":%d", s.cfg.Port))
}
