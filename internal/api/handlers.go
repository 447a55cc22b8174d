package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/domain"
	"studybuddy/internal/export"
	"studybuddy/internal/logx"
	"studybuddy/internal/quotes"
	"studybuddy/internal/scheduler"
)

type scheduleRequest struct {
	Strategy string                 `json:"strategy"`
	Courses  []domain.CourseRequest `json:"courses"`
	Today    string                 `json:"today,omitempty"`
}

type scheduleResponse struct {
	RunID    string               `json:"run_id"`
	Strategy string               `json:"strategy"`
	Today    string               `json:"today"`
	Blocks   domain.Schedule      `json:"blocks"`
	Summary  []export.CourseTotal `json:"summary"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": scheduler.Strategies()})
}

func (s *Server) createSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	today := s.Engine.Today()
	if req.Today != "" {
		t, err := time.Parse(scheduler.DateLayout, strings.TrimSpace(req.Today))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid today %q, want YYYY-MM-DD", req.Today)})
			return
		}
		today = t
	}

	blocks, err := s.Engine.Generate(req.Strategy, req.Courses, today)
	if err != nil {
		var unknown *scheduler.UnknownStrategyError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.Log.Error("schedule failed", logx.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build schedule"})
		return
	}
	if blocks == nil {
		blocks = domain.Schedule{}
	}
	summary := export.Summarize(blocks)
	if summary == nil {
		summary = []export.CourseTotal{}
	}

	c.JSON(http.StatusOK, scheduleResponse{
		RunID:    s.NewID(),
		Strategy: req.Strategy,
		Today:    scheduler.FormatDate(today),
		Blocks:   blocks,
		Summary:  summary,
	})
}

func (s *Server) quote(c *gin.Context) {
	line := quotes.FallbackText
	if s.Quotes != nil {
		line = s.Quotes.Line(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"quote": line})
}

// download renders the schedule passed in ?data= as an attachment.
func (s *Server) download(c *gin.Context) {
	var blocks domain.Schedule
	if err := json.Unmarshal([]byte(c.Query("data")), &blocks); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}
	format, err := export.ParseFormat(c.Param("filetype"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="schedule.%s"`, format))
	c.Header("Vary", "Accept-Encoding")

	if acceptsBrotli(c.GetHeader("Accept-Encoding")) {
		c.Header("Content-Encoding", "br")
		c.Status(http.StatusOK)
		err = export.WriteCompressed(c.Writer, format, blocks)
	} else {
		c.Status(http.StatusOK)
		err = export.Write(c.Writer, format, blocks)
	}
	if err != nil {
		// headers are already out
		s.Log.Error("download failed", logx.String("format", string(format)), logx.Err(err))
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		enc, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(enc), "br") {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}
