package server

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/plot"
	"github.com/san-kum/nuosc/internal/sweep"
)

const maxPoints = 5000

type ProbabilityResponse struct {
	Energy      float64            `json:"energy_gev"`
	Distance    float64            `json:"distance_km"`
	Theta12     float64            `json:"theta12_deg"`
	From        string             `json:"from"`
	To          string             `json:"to"`
	Phase       float64            `json:"phase"`
	Amplitude   float64            `json:"amplitude"`
	Matrix      oscillation.Matrix `json:"matrix"`
	Probability float64            `json:"probability"`
	Display     string             `json:"display"`
}

// point holds the parsed and validated query parameters.
type point struct {
	energy   float64
	distance float64
	theta    float64
	from     oscillation.Flavor
	points   int
}

func (s *Server) parsePoint(c *gin.Context) (point, error) {
	p := point{
		energy:   s.cfg.Energy,
		distance: s.cfg.Distance,
		theta:    s.cfg.Theta12,
		points:   s.cfg.Points,
	}

	var err error
	if p.energy, err = floatQuery(c, "energy", p.energy); err != nil {
		return p, err
	}
	if p.distance, err = floatQuery(c, "distance", p.distance); err != nil {
		return p, err
	}
	if p.theta, err = floatQuery(c, "theta12", p.theta); err != nil {
		return p, err
	}
	if err := config.ValidatePoint(p.energy, p.distance, p.theta); err != nil {
		return p, err
	}

	if p.from, err = oscillation.ParseFlavor(c.DefaultQuery("flavor", s.cfg.Flavor)); err != nil {
		return p, err
	}

	if raw := c.Query("points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("points: %w", err)
		}
		p.points = n
	}
	if p.points < 2 || p.points > maxPoints {
		return p, fmt.Errorf("%w: %d not in [2, %d]", config.ErrPoints, p.points, maxPoints)
	}
	return p, nil
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) handleProbability(c *gin.Context) {
	p, err := s.parsePoint(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	m := oscillation.Compute(p.energy, p.distance, p.theta)
	s.metrics.evaluations.Inc()

	prob := m.Transition(p.from)
	c.JSON(http.StatusOK, ProbabilityResponse{
		Energy:      p.energy,
		Distance:    p.distance,
		Theta12:     p.theta,
		From:        p.from.String(),
		To:          p.from.Other().String(),
		Phase:       oscillation.Phase(p.energy, p.distance),
		Amplitude:   oscillation.Amplitude(p.theta),
		Matrix:      m,
		Probability: prob,
		Display:     fmt.Sprintf("%.4f", prob),
	})
}

func (s *Server) series(p point, axis string) (sweep.Series, bool, error) {
	var (
		out sweep.Series
		err error
	)
	switch axis {
	case "distance":
		r := sweep.Range{Min: s.cfg.DistanceRange.Min, Max: s.cfg.DistanceRange.Max}
		out, err = sweep.Distance(p.energy, p.theta, p.from, r, p.points)
	case "energy":
		r := sweep.Range{Min: s.cfg.EnergyRange.Min, Max: s.cfg.EnergyRange.Max}
		out, err = sweep.Energy(p.distance, p.theta, p.from, r, p.points)
	default:
		return out, false, nil
	}
	if err == nil {
		s.metrics.evaluations.Add(float64(p.points))
	}
	return out, true, err
}

func (s *Server) handleSweep(c *gin.Context) {
	p, err := s.parsePoint(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	out, ok, err := s.series(p, c.Param("axis"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown axis: " + c.Param("axis")})
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleChart(c *gin.Context) {
	file := c.Param("file")
	ext := path.Ext(file)
	axis := strings.TrimSuffix(file, ext)

	var format plot.Format
	switch ext {
	case ".png":
		format = plot.PNG
	case ".svg":
		format = plot.SVG
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unsupported chart format: " + ext})
		return
	}

	p, err := s.parsePoint(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	out, ok, err := s.series(p, axis)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown axis: " + axis})
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}

	im := plot.NewImage(0, 0, format)
	var buf bytes.Buffer
	if err := im.Render(&buf, out); err != nil {
		s.logger.Error("chart render failed", "axis", axis, "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "render failed"})
		return
	}
	c.Data(http.StatusOK, im.ContentType(), buf.Bytes())
}
