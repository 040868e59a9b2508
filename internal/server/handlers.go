package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/goliatone/go-portfolio/internal/catalog"
)

func (s *Server) listPosts(c *gin.Context) {
	featured, ok := featuredParam(c)
	if !ok {
		return
	}
	posts, err := s.catalog.Posts(c.Request.Context(), catalog.PostFilter{
		Category: c.Query("category"),
		Featured: featured,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c *gin.Context) {
	post, err := s.catalog.Post(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Post not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (s *Server) listProjects(c *gin.Context) {
	featured, ok := featuredParam(c)
	if !ok {
		return
	}
	projects, err := s.catalog.Projects(c.Request.Context(), catalog.ProjectFilter{
		Kind:     c.Query("kind"),
		Featured: featured,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) getProject(c *gin.Context) {
	// /api/projects/<id>.json is a published document, not a lookup.
	if s.isDocumentRequest(c) {
		s.documents.ServeHTTP(c.Writer, c.Request)
		return
	}
	project, err := s.catalog.Project(c.Request.Context(), c.Param("id"))
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) getTimeline(c *gin.Context) {
	timeline, err := s.catalog.Timeline(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", timeline)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("server.request_failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

// featuredParam parses the optional featured query parameter. It writes a 422
// response and returns false when the value is not a boolean.
func featuredParam(c *gin.Context) (*bool, bool) {
	raw, present := c.GetQuery("featured")
	if !present || strings.TrimSpace(raw) == "" {
		return nil, true
	}
	value, err := cast.ToBoolE(strings.TrimSpace(raw))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "featured must be a boolean"})
		return nil, false
	}
	return &value, true
}
