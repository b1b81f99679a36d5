package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xtding233/egg-gacha/internal/config"
	"github.com/xtding233/egg-gacha/internal/egg"
	"github.com/xtding233/egg-gacha/internal/service"
)

// EggService is the subset of service.EggService the HTTP layer needs.
type EggService interface {
	Generate(ctx context.Context, req service.GenerateRequest) (service.Result, error)
	Simulate(ctx context.Context, req service.GenerateRequest, trials int) (egg.SimReport, error)
	PresetNames() []string
	Preset(name string) (config.BatchParams, bool)
}

// EggsHandler exposes egg generation over HTTP.
type EggsHandler struct {
	svc    EggService
	logger *zap.Logger
}

// NewEggsHandler constructs the HTTP handler adapter.
func NewEggsHandler(svc EggService, logger *zap.Logger) *EggsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EggsHandler{svc: svc, logger: logger}
}

type generateResp struct {
	Tier      string        `json:"tier"`
	GachaType string        `json:"gachaType"`
	Count     int           `json:"count"`
	Eggs      []egg.Egg     `json:"eggs"`
	Cost      *service.Cost `json:"cost,omitempty"`
}

type simulateReq struct {
	service.GenerateRequest
	Trials int `json:"trials"`
}

// Generate builds a batch: POST /eggs.
func (h *EggsHandler) Generate(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "generate failed", err)
		return
	}

	c.JSON(http.StatusOK, generateResp{
		Tier:      res.Request.Tier.String(),
		GachaType: res.Request.GachaType.String(),
		Count:     len(res.Eggs),
		Eggs:      res.Eggs,
		Cost:      res.Cost,
	})
}

// Simulate runs a Monte Carlo over a batch: POST /simulate.
func (h *EggsHandler) Simulate(c *gin.Context) {
	var req simulateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid simulate payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rep, err := h.svc.Simulate(c.Request.Context(), req.GenerateRequest, req.Trials)
	if err != nil {
		h.fail(c, "simulate failed", err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// Presets lists configured presets: GET /presets.
func (h *EggsHandler) Presets(c *gin.Context) {
	out := make(map[string]config.BatchParams)
	for _, name := range h.svc.PresetNames() {
		if p, ok := h.svc.Preset(name); ok {
			out[name] = p
		}
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

func (h *EggsHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		h.logger.Warn(msg, zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn(msg, zap.Error(err))
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "request canceled"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate eggs"})
	}
}
