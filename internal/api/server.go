package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studybuddy/internal/logx"
	"studybuddy/internal/scheduler"
)

// QuoteSource yields a display line; it must not fail.
type QuoteSource interface {
	Line(ctx context.Context) string
}

type Server struct {
	Engine *scheduler.Engine
	Quotes QuoteSource // optional
	Log    logx.Logger
	NewID  func() string
}

func New(engine *scheduler.Engine, quotes QuoteSource, log logx.Logger) *Server {
	return &Server{
		Engine: engine,
		Quotes: quotes,
		Log:    log,
		NewID:  uuid.NewString,
	}
}

// Router registers every route on a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/healthz", s.health)

	api := r.Group("/api")
	{
		api.GET("/strategies", s.listStrategies)
		api.POST("/schedule", s.createSchedule)
		api.GET("/quote", s.quote)
	}

	r.GET("/download/:filetype", s.download)
	return r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Log.Info("http request",
			logx.String("method", c.Request.Method),
			logx.String("path", c.FullPath()),
			logx.Int("status", c.Writer.Status()),
			logx.Duration("took", time.Since(start)),
		)
	}
}
