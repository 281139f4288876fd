// Package server exposes wizard sessions over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ob/internal/api"
	"hotel-ob/internal/orchestration"
	"hotel-ob/internal/wizard"
)

// Server is the HTTP host of the wizard.
type Server struct {
	orch    *orchestration.Orchestrator
	logger  *zap.SugaredLogger
	metrics http.Handler
	engine  *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New builds the router.
func New(orch *orchestration.Orchestrator, opts ...Option) *Server {
	s := &Server{orch: orch, logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(s)
	}

	r := gin.New()
	r.Use(requestLogger(s.logger))
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", s.handleHealth)
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}

	routes := r.Group("/api")
	{
		sessions := routes.Group("/sessions")
		{
			sessions.POST("", s.handleStart)
			sessions.GET("", s.handleList)
			sessions.GET("/:id", s.handleStatus)
			sessions.DELETE("/:id", s.handleDelete)
			sessions.POST("/:id/back", s.handleBack)
			sessions.POST("/:id/jump", s.handleJump)

			sessions.GET("/:id/steps/:step", s.handleStepData)
			sessions.POST("/:id/steps/:step", s.handleSubmit)
			sessions.PUT("/:id/steps/:step/live", s.handleLive)
			sessions.GET("/:id/steps/:step/plan", s.handlePlan)
		}
	}

	s.engine = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugw("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

// corsMiddleware adds CORS headers for cross-origin requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStart(c *gin.Context) {
	var req orchestration.StartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}
	sess, err := s.orch.StartSession(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orchestration.StatusOf(sess))
}

func (s *Server) handleList(c *gin.Context) {
	list, err := s.orch.ListSessions(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list})
}

func (s *Server) handleStatus(c *gin.Context) {
	status, err := s.orch.GetSessionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.orch.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleBack(c *gin.Context) {
	sess, err := s.orch.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orchestration.StatusOf(sess))
}

type jumpRequest struct {
	Step wizard.Step `json:"step" binding:"required"`
}

func (s *Server) handleJump(c *gin.Context) {
	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	sess, err := s.orch.JumpTo(c.Request.Context(), c.Param("id"), req.Step)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orchestration.StatusOf(sess))
}

func (s *Server) handleStepData(c *gin.Context) {
	data, err := s.orch.GetStepData(c.Request.Context(), c.Param("id"), wizard.Step(c.Param("step")))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleSubmit(c *gin.Context) {
	payload, ok := s.readPayload(c)
	if !ok {
		return
	}
	out, err := s.orch.Submit(c.Request.Context(), c.Param("id"), wizard.Step(c.Param("step")), payload)
	if err != nil {
		s.writeOutcomeError(c, out, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleLive(c *gin.Context) {
	payload, ok := s.readPayload(c)
	if !ok {
		return
	}
	step := wizard.Step(c.Param("step"))
	if _, err := s.orch.SetLive(c.Request.Context(), c.Param("id"), step, payload); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePlan(c *gin.Context) {
	step := wizard.Step(c.Param("step"))
	calls, err := s.orch.PlanStep(c.Request.Context(), c.Param("id"), step)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step, "calls": calls})
}

// readPayload reads the request body as JSON, converting YAML bodies first.
func (s *Server) readPayload(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request: " + err.Error()})
		return nil, false
	}
	payload, err := orchestration.NormalizePayload(raw, orchestration.FormatForContentType(c.ContentType()))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return payload, true
}

// writeOutcomeError reports a failed submission together with its outcome.
func (s *Server) writeOutcomeError(c *gin.Context, out *wizard.Outcome, err error) {
	if out == nil {
		s.writeError(c, err)
		return
	}
	c.JSON(statusFor(err), gin.H{"error": err.Error(), "outcome": out})
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var (
		stepErr *wizard.StepError
		apiErr  *api.Error
	)
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrMissingParent), errors.Is(err, wizard.ErrDispatchInFlight):
		return http.StatusConflict
	case errors.Is(err, wizard.ErrUnknownStep),
		errors.Is(err, orchestration.ErrInvalidPayload),
		errors.Is(err, orchestration.ErrHotelIDRequired),
		errors.Is(err, orchestration.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.As(err, &stepErr):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
