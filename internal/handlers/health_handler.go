package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store BenchmarkStore
}

func NewHealthHandler(store BenchmarkStore) *HealthHandler {
	return &HealthHandler{store: store}
}

type HealthResponse struct {
	Status     string         `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
	Benchmarks map[string]int `json:"benchmarks"`
}

// @Summary      Liveness
// @Tags         Health
// @Produce      json
// @Success      200  {object}  utils.SuccessResponse{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	respondOK(c, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Benchmarks: h.store.Counts(),
	})
}
