package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server HTTP API поверх gin
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewRouter собирает gin с логированием запросов через zap
func NewRouter(controller *SlotController, logger *zap.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	controller.RegisterRoutes(router)

	return router
}

func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start слушает адрес в отдельной горутине
func (s *Server) Start() {
	go func() {
		s.logger.Info("HTTP server starting", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		logger.Debug("HTTP request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
