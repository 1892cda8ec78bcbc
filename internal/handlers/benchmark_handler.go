package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solarverify/internal/apperrors"
	"solarverify/internal/benchmark"
	"solarverify/internal/models"
	"solarverify/internal/utils"
)

// BenchmarkStore is the read API of *benchmark.Store used by the HTTP layer.
type BenchmarkStore interface {
	Components(t models.ComponentType) []models.Component
	FindComponents(t models.ComponentType, f benchmark.Filter) []models.Component
	PricingFor(region, sizeBand string) (bm models.PricingBenchmark, fallback bool, ok bool)
	PricingBenchmarks(region, sizeBand string) []models.PricingBenchmark
	Counts() map[string]int
}

type BenchmarkHandler struct {
	store BenchmarkStore
	log   *zap.Logger
}

func NewBenchmarkHandler(store BenchmarkStore, log *zap.Logger) *BenchmarkHandler {
	return &BenchmarkHandler{store: store, log: log}
}

// PricingBenchmarkView marks rows served from the national fallback instead
// of the requested region.
type PricingBenchmarkView struct {
	models.PricingBenchmark
	Fallback bool `json:"fallback"`
}

func pricingViews(rows []models.PricingBenchmark, fallback bool) []PricingBenchmarkView {
	out := make([]PricingBenchmarkView, 0, len(rows))
	for _, p := range rows {
		out = append(out, PricingBenchmarkView{PricingBenchmark: p, Fallback: fallback})
	}
	return out
}

type BatteryOption struct {
	Brand    string  `json:"brand"`
	Capacity float64 `json:"capacity"`
}

// @Summary      List solar panels
// @Tags         Components
// @Produce      json
// @Param        manufacturer    query     string  false  "Manufacturer (substring)"
// @Param        tier            query     string  false  "Premium, Excellent, Good or Standard"
// @Param        wattage         query     number  false  "Wattage, matched within 50 W"
// @Param        min_efficiency  query     number  false  "Minimum efficiency in percent"
// @Success      200  {object}  utils.SuccessResponse{data=[]models.Component}
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /components/panels [get]
func (h *BenchmarkHandler) ListPanels(c *gin.Context) {
	h.listComponents(c, models.ComponentPanel)
}

// @Summary      List batteries
// @Tags         Components
// @Produce      json
// @Param        manufacturer    query     string  false  "Manufacturer (substring)"
// @Param        tier            query     string  false  "Premium, Excellent, Good or Standard"
// @Param        capacity        query     number  false  "Capacity in kWh, matched within 2 kWh"
// @Param        min_efficiency  query     number  false  "Minimum round-trip efficiency in percent"
// @Success      200  {object}  utils.SuccessResponse{data=[]models.Component}
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /components/batteries [get]
func (h *BenchmarkHandler) ListBatteries(c *gin.Context) {
	h.listComponents(c, models.ComponentBattery)
}

// @Summary      List inverters
// @Tags         Components
// @Produce      json
// @Param        manufacturer    query     string  false  "Manufacturer (substring)"
// @Param        tier            query     string  false  "Premium, Excellent, Good or Standard"
// @Param        min_efficiency  query     number  false  "Minimum efficiency in percent"
// @Success      200  {object}  utils.SuccessResponse{data=[]models.Component}
// @Failure      400  {object}  utils.ErrorResponse
// @Router       /components/inverters [get]
func (h *BenchmarkHandler) ListInverters(c *gin.Context) {
	h.listComponents(c, models.ComponentInverter)
}

func (h *BenchmarkHandler) listComponents(c *gin.Context, t models.ComponentType) {
	f, err := parseFilter(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondOK(c, h.store.FindComponents(t, f))
}

func parseFilter(c *gin.Context) (benchmark.Filter, error) {
	f := benchmark.Filter{Manufacturer: strings.TrimSpace(c.Query("manufacturer"))}
	if raw := strings.TrimSpace(c.Query("tier")); raw != "" {
		tier, ok := models.ParseQualityTier(raw)
		if !ok {
			return f, apperrors.Invalid("tier", "unknown quality tier %q", raw)
		}
		f.Tier = tier
	}
	var err error
	for name, dst := range map[string]*float64{
		"wattage":        &f.Wattage,
		"capacity":       &f.Capacity,
		"min_efficiency": &f.MinEfficiency,
	} {
		if *dst, err = utils.GetQueryParamAsFloat(c, name, 0); err != nil {
			return f, apperrors.Invalid(name, "must be a non-negative number")
		}
	}
	return f, nil
}

// @Summary      Pricing benchmarks
// @Description  Typical installed price ranges. With both region and a size the single best benchmark is returned; unknown regions fall back to the national UK rows and the nearest band, flagged with fallback.
// @Tags         Benchmarks
// @Produce      json
// @Param        region       query     string  false  "Region, e.g. UK-South"
// @Param        size_band    query     string  false  "Size band, e.g. 4kW"
// @Param        system_size  query     number  false  "System size in kW; used when size_band is absent"
// @Success      200  {object}  utils.SuccessResponse{data=[]PricingBenchmarkView}
// @Failure      400  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /pricing-benchmarks [get]
func (h *BenchmarkHandler) PricingBenchmarks(c *gin.Context) {
	region := strings.TrimSpace(c.Query("region"))
	band := strings.TrimSpace(c.Query("size_band"))
	if band != "" {
		b, ok := benchmark.LookupBand(band)
		if !ok {
			respondError(c, h.log, apperrors.Invalid("size_band", "unknown size band %q", band))
			return
		}
		band = b.Label
	} else {
		kw, err := utils.GetQueryParamAsFloat(c, "system_size", 0)
		if err != nil {
			respondError(c, h.log, apperrors.Invalid("system_size", "must be a non-negative number"))
			return
		}
		if kw > 0 {
			band = benchmark.SizeBand(kw)
		}
	}

	if region != "" && band != "" {
		bm, fallback, ok := h.store.PricingFor(region, band)
		if !ok {
			respondError(c, h.log, fmt.Errorf("%w: no %s benchmark for %s", apperrors.ErrNotFound, band, region))
			return
		}
		respondOK(c, []PricingBenchmarkView{{PricingBenchmark: bm, Fallback: fallback}})
		return
	}

	rows := h.store.PricingBenchmarks(region, band)
	if len(rows) == 0 && region != "" && benchmark.NormalizeRegion(region) != benchmark.NormalizeRegion(benchmark.NationalRegion) {
		respondOK(c, pricingViews(h.store.PricingBenchmarks(benchmark.NationalRegion, band), true))
		return
	}
	respondOK(c, pricingViews(rows, false))
}

// @Summary      Battery picker options
// @Tags         Components
// @Produce      json
// @Success      200  {object}  utils.SuccessResponse{data=[]BatteryOption}
// @Router       /battery-options [get]
func (h *BenchmarkHandler) BatteryOptions(c *gin.Context) {
	batteries := h.store.Components(models.ComponentBattery)
	opts := make([]BatteryOption, 0, len(batteries)+1)
	for _, b := range batteries {
		capacity := b.Rating()
		opts = append(opts, BatteryOption{
			Brand:    fmt.Sprintf("%s (%gkWh)", b.DisplayName(), capacity),
			Capacity: capacity,
		})
	}
	opts = append(opts, BatteryOption{Brand: "Other (specify capacity)"})
	respondOK(c, opts)
}
