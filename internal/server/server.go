package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"fomezero/internal/config"
	"fomezero/internal/pipeline"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	router  *gin.Engine
	handler http.Handler
	cfg     config.Config
	loader  *pipeline.Loader
}

func NewServer(cfg config.Config, loader *pipeline.Loader) *Server {
	if !cfg.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.DevMode {
		router.Use(gin.Logger())
	}

	s := &Server{router: router, cfg: cfg, loader: loader}
	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
	})
	s.handler = c.Handler(router)
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/status", s.getStatus)
		api.GET("/options", s.getOptions)
		api.POST("/refresh", s.refresh)

		api.GET("/overview", s.getOverview)
		api.GET("/map", s.getMap)
		api.GET("/map/clusters", s.getClusters)
		api.GET("/countries", s.getCountries)
		api.GET("/cities", s.getCities)
		api.GET("/cuisines", s.getCuisines)
	}

	s.router.GET("/download", s.download)
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.ServerPort),
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("server stopped")
	return nil
}
