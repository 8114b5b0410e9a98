package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/dto"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// defaultPriceTTL bounds staleness of the cached price inquiry. Tariff
// upserts are rare relative to lookups from the daily entry screens.
const defaultPriceTTL = 5 * time.Minute

type TariffsHandler struct {
	svc      service.TariffService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewTariffsHandler(svc service.TariffService, rdb *redis.Client, cacheTTL time.Duration) *TariffsHandler {
	if cacheTTL <= 0 {
		cacheTTL = defaultPriceTTL
	}
	return &TariffsHandler{svc: svc, rdb: rdb, cacheTTL: cacheTTL}
}

func (h *TariffsHandler) Upsert(c *gin.Context) {
	var req dto.UpsertTariffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	routeID, _ := uuid.Parse(req.RouteID)
	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("effective_from must be YYYY-MM-DD"))
		return
	}

	err = h.svc.UpsertTariff(c.Request.Context(), service.UpsertTariffInput{
		ContractID:         contractID,
		RouteID:            routeID,
		ServiceCategory:    req.ServiceCategory,
		PricingCategory:    req.PricingCategory,
		EffectiveFrom:      effectiveFrom,
		Price:              req.Price,
		SubcontractorPrice: req.SubcontractorPrice,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TariffsHandler) ListHistory(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	routeID := uuid.Nil
	if r := c.Query("route_id"); r != "" {
		if routeID, err = uuid.Parse(r); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("route_id is invalid"))
			return
		}
	}

	rows, err := h.svc.ListHistory(c.Request.Context(), contractID, routeID, c.Query("service_category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list tariffs"))
		return
	}

	out := make([]dto.TariffResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, dto.TariffResponse{
			ID:                 t.ID.String(),
			RouteID:            t.RouteID.String(),
			ServiceCategory:    t.ServiceCategory,
			PricingCategory:    string(t.PricingCategory),
			EffectiveFrom:      t.EffectiveFrom,
			Price:              t.Price,
			SubcontractorPrice: t.SubcontractorPrice,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Resolve answers "what does this trip cost" for the entry screens.
// Responses are cached in redis keyed by the full lookup tuple; the
// cache is best-effort — a redis outage degrades to direct lookups.
func (h *TariffsHandler) Resolve(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	routeID, err := uuid.Parse(c.Query("route_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("route_id is required"))
		return
	}
	tripDate, err := time.Parse("2006-01-02", c.Query("trip_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("trip_date must be YYYY-MM-DD"))
		return
	}
	serviceCategory := c.Query("service_category")
	category := model.NormalizePricingCategory(c.Query("pricing_category"))

	cacheKey := fmt.Sprintf("tariff:%s:%s:%s:%s:%s",
		contractID, routeID, serviceCategory, category, tripDate.Format("2006-01-02"))
	if h.rdb != nil {
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	resolved, err := h.svc.ResolvePrice(c.Request.Context(), contractID, serviceCategory, routeID, category, tripDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("price resolution failed"))
		return
	}

	resp := dto.ResolvedPriceResponse{}
	if resolved != nil {
		resp.Defined = true
		resp.Price = resolved.Price
		resp.SubcontractorPrice = resolved.SubcontractorPrice
		resp.EffectiveFrom = resolved.EffectiveFrom
		resp.Source = resolved.Source
	}

	if h.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, h.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("tariff cache write failed")
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TariffsHandler) PricingModel(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	tripDate, err := time.Parse("2006-01-02", c.Query("trip_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("trip_date must be YYYY-MM-DD"))
		return
	}

	pricingModel, err := h.svc.ResolvePricingModel(c.Request.Context(), contractID, tripDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("pricing model resolution failed"))
		return
	}
	c.JSON(http.StatusOK, dto.PricingModelResponse{Model: pricingModel})
}
