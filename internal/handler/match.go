package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/domeballhq/match-engine/internal/model"
	"github.com/domeballhq/match-engine/internal/repository"
	"github.com/domeballhq/match-engine/internal/service"
	"github.com/domeballhq/match-engine/pkg/response"
)

type MatchHandler struct {
	svc service.MatchService
}

func NewMatchHandler(svc service.MatchService) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	m := r.Group("/matches")
	{
		m.POST("", h.simulate)
		m.GET("", h.list)
		m.GET(":id", h.getByID)
		m.GET(":id/result", h.getResult)
		m.GET(":id/stats", h.getStats)
		m.GET(":id/stream", h.stream)
		m.POST(":id/abort", h.abort)
	}
}

type simulateRequest struct {
	Config      model.MatchConfig `json:"config"`
	Pacing      string            `json:"pacing"`        // instant (default) or paced
	TickDelayMs int               `json:"tick_delay_ms"` // paced mode only
}

type simulateResponse struct {
	Match  model.MatchRecord  `json:"match"`
	Result *model.MatchResult `json:"result,omitempty"`
}

func (h *MatchHandler) simulate(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	rec, res, err := h.svc.SimulateMatch(c.Request.Context(), service.SimulationRequest{
		Config:    req.Config,
		Pacing:    req.Pacing,
		TickDelay: time.Duration(req.TickDelayMs) * time.Millisecond,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	status := http.StatusCreated
	if res == nil {
		// Paced simulation was accepted and runs in the background.
		status = http.StatusAccepted
	}
	response.WriteData(c, status, simulateResponse{Match: rec, Result: res})
}

func (h *MatchHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	rec, err := h.svc.GetMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, rec)
}

func (h *MatchHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	page := repository.Page{Limit: limit, Offset: offset}
	res, err := h.svc.ListMatches(c.Request.Context(), page)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *MatchHandler) getResult(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	res, err := h.svc.GetResult(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type statsResponse struct {
	PlayerStats []model.PlayerStatLine `json:"player_stats"`
	HomeStats   model.TeamStatLine     `json:"home_stats"`
	AwayStats   model.TeamStatLine     `json:"away_stats"`
}

func (h *MatchHandler) getStats(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	res, err := h.svc.GetResult(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, statsResponse{
		PlayerStats: res.PlayerStats,
		HomeStats:   res.HomeStats,
		AwayStats:   res.AwayStats,
	})
}

// stream pushes live updates of a paced match as server-sent events until
// the match ends or the viewer disconnects.
func (h *MatchHandler) stream(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	updates, unsubscribe, err := h.svc.Subscribe(id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case update, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("update", update)
			return !update.Final
		}
	})
}

func (h *MatchHandler) abort(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.Abort(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusAccepted, gin.H{"status": "aborting"})
}
