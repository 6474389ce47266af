package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wiamouali-star/voice-acc-app/internal/classify"
	"github.com/wiamouali-star/voice-acc-app/internal/feed"
)

const defaultNewsLimit = 20

// errorResponse is the envelope for every 4xx/5xx reply.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "healthy",
		"service":              "voice-assistant-api",
		"sources_configured":   len(s.cfg.Sources),
		"classifier_available": s.cfg.ClassifierEnabled(),
		"timestamp":            time.Now().Format(time.RFC3339),
	})
}

func (s *Server) getNews(c *gin.Context) {
	articles, ok := s.cache.Get()
	if !ok {
		slog.Info("refreshing articles")
		articles = s.fetcher.FetchArticles(c.Request.Context())
		s.cache.Put(articles)
	} else {
		slog.Debug("serving articles from cache")
	}

	topic := c.Query("topic")
	articles = feed.FilterByTopic(articles, topic)

	if source := strings.ToLower(strings.TrimSpace(c.Query("source"))); source != "" {
		kept := make([]feed.Article, 0, len(articles))
		for _, a := range articles {
			if strings.Contains(strings.ToLower(a.Source), source) {
				kept = append(kept, a)
			}
		}
		articles = kept
	}

	limit := defaultNewsLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if len(articles) > limit {
		articles = articles[:limit]
	}

	// Voice searches arrive here as topics; keep a trace of the meaningful
	// ones unless the front end logged the query through /api/classify first.
	if len(topic) > 2 && c.Query("logged") != "true" {
		s.sink.Log(c.Request.Context(), topic, string(classify.ByKeywords(topic)), "direct")
	}

	c.JSON(http.StatusOK, articles)
}

func (s *Server) getSources(c *gin.Context) {
	names := s.cfg.SourceNames()
	c.JSON(http.StatusOK, gin.H{
		"sources": names,
		"count":   len(names),
	})
}

type classifyRequest struct {
	Query string `json:"query" binding:"required,min=1,max=500"`
}

func (s *Server) postClassify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "invalid_request",
			Message: "le champ query est requis (1 à 500 caractères)",
		})
		return
	}

	result := s.classifier.Classify(c.Request.Context(), req.Query)
	if result.Degraded() {
		slog.Debug("classification degraded", "method", result.Method)
	}
	s.sink.Log(c.Request.Context(), req.Query, string(result.Category), "classify")

	c.JSON(http.StatusOK, gin.H{
		"category":  result.Category,
		"raw":       result.Raw,
		"query":     req.Query,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// getTest returns canned articles so the front end can be exercised without
// live feeds.
func (s *Server) getTest(c *gin.Context) {
	now := time.Now().Format(time.RFC3339)
	c.JSON(http.StatusOK, []feed.Article{
		{
			Title:     "Test réussi - le service répond",
			Summary:   "L'assistant vocal est opérationnel et l'API répond normalement.",
			Link:      "#",
			Published: now,
			Source:    "Système",
			Tags:      []string{},
		},
		{
			Title:     "Actualités en temps réel",
			Summary:   "L'application récupère les dernières actualités depuis plusieurs sources.",
			Link:      "#",
			Published: now,
			Source:    "Système",
			Tags:      []string{},
		},
	})
}
