// Package web is the presentation layer: the search page, its JSON API and
// the map navigation redirect.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logias/internal/metrics"
	"logias/internal/notify"
	"logias/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// Server serves one directory session.
type Server struct {
	dir     *session.Directory
	notices *notify.Recorder
	log     *zap.Logger
}

func NewServer(dir *session.Directory, notices *notify.Recorder, log *zap.Logger) *Server {
	return &Server{dir: dir, notices: notices, log: log}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.loggingMiddleware())
	router.Use(metricsMiddleware())

	router.SetHTMLTemplate(template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")))

	router.GET("/", s.index)
	router.GET("/ir/:numero", s.openMap)
	router.GET("/healthz", s.healthz)
	router.GET("/readyz", s.readyz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	api.GET("/logias", s.listLogias)
	api.GET("/dimensiones", s.dimensions)
	api.GET("/avisos", s.listNotices)

	return router
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyz reports ready once the load has resolved, including when it failed:
// a failed load is a served state, not an outage.
func (s *Server) readyz(c *gin.Context) {
	status := s.dir.Status()
	if status == session.StatusLoading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": status.String()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status.String()})
}
