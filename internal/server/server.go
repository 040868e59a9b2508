// Package server exposes the publish tree over HTTP for local development.
// It serves the JSON API the site used before it switched to static files,
// plus the static documents, media and resume binaries themselves.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"github.com/goliatone/go-portfolio/internal/catalog"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const shutdownTimeout = 5 * time.Second

// Config configures the dev server.
type Config struct {
	Address        string
	AllowedOrigins []string
	// APIDir is the JSON directory relative to the publish root.
	APIDir string
}

// Server serves a publish tree.
type Server struct {
	cfg     Config
	engine  *gin.Engine
	catalog *catalog.Catalog
	logger  interfaces.Logger
	// documents serves published JSON files below the API prefix.
	documents http.Handler
	apiPrefix string
}

// New builds a server over publish, an afero.Fs rooted at the publish directory.
func New(cfg Config, publish afero.Fs, logger interfaces.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:     cfg,
		catalog: catalog.New(publish, cfg.APIDir),
		logger:  logging.Ensure(logger),
	}
	s.engine = s.routes(publish)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server.listening", "address", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("server.shutdown")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) routes(publish afero.Fs) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	if len(s.cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/blog/posts", s.listPosts)
		api.GET("/blog/posts/:id", s.getPost)
		api.GET("/projects", s.listProjects)
		api.GET("/projects/:id", s.getProject)
		api.GET("/timeline", s.getTimeline)
	}

	files := afero.NewHttpFs(publish)
	router.StaticFS("/media", files.Dir("media"))
	router.StaticFS("/resume", files.Dir("resume"))

	// Published documents share the /api prefix with the routes above, so
	// they are served from NoRoute instead of a catch-all.
	s.apiPrefix = "/" + s.catalog.APIDir() + "/"
	s.documents = http.StripPrefix(s.apiPrefix, http.FileServer(files.Dir(s.catalog.APIDir())))
	router.NoRoute(func(c *gin.Context) {
		if s.isDocumentRequest(c) {
			s.documents.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	return router
}

func (s *Server) isDocumentRequest(c *gin.Context) bool {
	method := c.Request.Method
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	p := c.Request.URL.Path
	return strings.HasPrefix(p, s.apiPrefix) && strings.HasSuffix(p, ".json")
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("server.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
