package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trainer/internal/analysis"
	"trainer/internal/config"
	"trainer/internal/export"
	"trainer/internal/service"
	"trainer/internal/store"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListWorkouts(c *gin.Context) {
	workouts, err := s.workouts.List()
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(c *gin.Context) {
	w, err := s.workouts.Get(c.Param("id"))
	if errors.Is(err, store.ErrWorkoutNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) handleAddWorkout(c *gin.Context) {
	var in service.WorkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	w, err := s.workouts.Add(in)
	if errors.Is(err, service.ErrInvalidWorkout) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (s *Server) handleDeleteWorkout(c *gin.Context) {
	err := s.workouts.Delete(c.Param("id"))
	if errors.Is(err, store.ErrWorkoutNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "workout not found"})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAnalysis(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}
	report, err := s.analysis.Analyze(asOf)
	if errors.Is(err, analysis.ErrNoRecords) {
		c.JSON(http.StatusOK, gin.H{"no_data": true})
		return
	}
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleCoach(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}
	d, err := s.analysis.Dashboard(asOf)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"as_of":        d.AsOf.Format(config.DateLayout),
		"days_to_race": d.DaysToRace,
		"advice":       d.Advice,
		"warnings":     d.Warnings,
	})
}

func (s *Server) handleDashboard(c *gin.Context) {
	asOf, ok := asOfParam(c)
	if !ok {
		return
	}
	d, err := s.analysis.Dashboard(asOf)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type zoneBounds struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	MinBPM int    `json:"min_bpm"`
	MaxBPM int    `json:"max_bpm"`
}

func (s *Server) handleZones(c *gin.Context) {
	maxHR := s.analysis.Params().MaxHR
	zones := make([]zoneBounds, 0, len(analysis.HRZones))
	for _, z := range analysis.HRZones {
		low, high := analysis.ZoneBPM(z, maxHR)
		zones = append(zones, zoneBounds{Key: z.Key, Name: z.Name, MinBPM: low, MaxBPM: high})
	}
	c.JSON(http.StatusOK, gin.H{"max_hr": maxHR, "zones": zones})
}

func (s *Server) handleExport(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		workouts, err := s.workouts.List()
		if err != nil {
			s.internalError(c, err)
			return
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, format, workouts, s.analysis.Params()); err != nil {
			s.internalError(c, err)
			return
		}

		name := export.FileName(format, s.analysis.Today())
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
	}
}

// asOfParam parses the optional as_of query parameter. It writes a 400
// response and returns false when the value is malformed.
func asOfParam(c *gin.Context) (time.Time, bool) {
	v := c.Query("as_of")
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(config.DateLayout, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("as_of must be YYYY-MM-DD, got %q", v)})
		return time.Time{}, false
	}
	return t, true
}

func (s *Server) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
