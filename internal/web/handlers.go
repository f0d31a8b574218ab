package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logias/internal/filter"
	"logias/internal/session"
)

type indexPage struct {
	View     session.View
	ResetURL string
}

func (s *Server) index(c *gin.Context) {
	criteria := filter.ParseCriteria(c.Request.URL.Query())
	if _, reset := c.GetQuery("limpiar"); reset {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	view := s.dir.View(criteria)
	c.HTML(http.StatusOK, "index.html", indexPage{View: view, ResetURL: "/?limpiar=1"})
}

func (s *Server) listLogias(c *gin.Context) {
	c.JSON(http.StatusOK, s.dir.View(filter.ParseCriteria(c.Request.URL.Query())))
}

func (s *Server) dimensions(c *gin.Context) {
	view := s.dir.View(filter.DefaultCriteria())
	c.JSON(http.StatusOK, gin.H{
		"estado":      view.State,
		"dimensiones": view.Dimensions,
	})
}

func (s *Server) listNotices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"avisos": s.notices.Notices()})
}

// redirectNavigator opens a URL by redirecting the request that asked for
// it; the page links to it with target=_blank, so this is a new context.
type redirectNavigator struct {
	c *gin.Context
}

func (n redirectNavigator) Open(_ context.Context, url string) error {
	if url == "" {
		return errors.New("lodge has no map URL")
	}
	n.c.Redirect(http.StatusFound, url)
	return nil
}

func (s *Server) openMap(c *gin.Context) {
	numero, err := strconv.Atoi(c.Param("numero"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid numero %q", c.Param("numero"))})
		return
	}

	_, err = s.dir.OpenMap(c.Request.Context(), redirectNavigator{c: c}, numero)
	switch {
	case err == nil:
	case errors.Is(err, session.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "el directorio aún no está disponible"})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no existe la logia %d", numero)})
	default:
		s.log.Warn("map navigation failed", zap.Int("numero", numero), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "la logia no tiene ubicación"})
	}
}
