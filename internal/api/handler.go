package api

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/itgubeeva-pixel/carecloud/internal"
	"github.com/itgubeeva-pixel/carecloud/internal/response"
	"github.com/itgubeeva-pixel/carecloud/internal/service"
)

// Handler serves the read-only statistics API.
type Handler struct {
	svc    *service.Service
	logger internal.Logger
}

func NewHandler(svc *service.Service, logger internal.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// NewRouter wires middleware and routes into a gin engine.
func NewRouter(svc *service.Service, logger internal.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	h := NewHandler(svc, logger)
	r.GET("/healthz", h.Health)
	r.GET("/api/stats/:telegram_id", h.Stats)
	return r
}

func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

type statsEntry struct {
	Date    string   `json:"date"`
	Mood    int      `json:"mood"`
	Energy  int      `json:"energy"`
	Anxiety int      `json:"anxiety"`
	Sleep   float64  `json:"sleep"`
	Tags    []string `json:"tags"`
	Note    string   `json:"note,omitempty"`
}

type statsPayload struct {
	TotalEntries int          `json:"totalEntries"`
	AvgMood      float64      `json:"avgMood"`
	AvgEnergy    float64      `json:"avgEnergy"`
	AvgAnxiety   float64      `json:"avgAnxiety"`
	AvgSleep     float64      `json:"avgSleep"`
	Streak       int          `json:"streak"`
	Insights     string       `json:"insights"`
	Entries      []statsEntry `json:"entries"`
}

func (h *Handler) Stats(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "telegram_id must be an integer")
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), telegramID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		h.logger.Errorf("stats for %d: %v", telegramID, err)
		response.InternalError(c, "failed to load statistics")
		return
	}

	entries := make([]statsEntry, 0, len(stats.Recent))
	for _, e := range stats.Recent {
		tags := e.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, statsEntry{
			Date: e.Date, Mood: e.Mood, Energy: e.Energy, Anxiety: e.Anxiety,
			Sleep: e.SleepHours, Tags: tags, Note: e.Note,
		})
	}

	response.Success(c, statsPayload{
		TotalEntries: stats.TotalEntries,
		AvgMood:      round1(stats.Averages.Mood),
		AvgEnergy:    round1(stats.Averages.Energy),
		AvgAnxiety:   round1(stats.Averages.Anxiety),
		AvgSleep:     round1(stats.Averages.Sleep),
		Streak:       stats.Streak,
		Insights:     stats.Insights,
		Entries:      entries,
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
