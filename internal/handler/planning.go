package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/dto"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanningHandler struct {
	svc      service.PlanningService
	template service.TemplateService
}

func NewPlanningHandler(svc service.PlanningService, template service.TemplateService) *PlanningHandler {
	return &PlanningHandler{svc: svc, template: template}
}

func planningError(c *gin.Context, err error) {
	var locked service.ErrPeriodLocked
	if errors.As(err, &locked) {
		c.JSON(http.StatusLocked, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}

func (h *PlanningHandler) UpsertSlot(c *gin.Context) {
	var req dto.UpsertSlotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	routeID, _ := uuid.Parse(req.RouteID)

	slot := &model.PlannedSlot{
		ContractID:      contractID,
		RouteID:         routeID,
		Month:           req.Month,
		ServiceCategory: req.ServiceCategory,
		TimeBlock:       req.TimeBlock,
	}
	if err := h.svc.UpsertSlot(c.Request.Context(), slot); err != nil {
		planningError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanningHandler) DeleteSlot(c *gin.Context) {
	var req dto.DeleteSlotRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	routeID, _ := uuid.Parse(req.RouteID)

	if err := h.svc.DeleteSlot(c.Request.Context(), contractID, routeID, req.Month, req.ServiceCategory, req.TimeBlock); err != nil {
		planningError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanningHandler) ListSlots(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	slots, err := h.svc.ListSlots(c.Request.Context(), contractID, c.Query("month"), c.Query("service_category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list planned slots"))
		return
	}
	out := make([]dto.SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, dto.SlotResponse{
			ID:              s.ID.String(),
			ContractID:      s.ContractID.String(),
			RouteID:         s.RouteID.String(),
			RouteName:       s.Route.Name,
			Month:           s.Month,
			ServiceCategory: s.ServiceCategory,
			TimeBlock:       s.TimeBlock,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlanningHandler) UpsertPlannedTariff(c *gin.Context) {
	var req dto.UpsertPlannedTariffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	routeID, _ := uuid.Parse(req.RouteID)

	t := &model.PlannedTariff{
		ContractID:      contractID,
		RouteID:         routeID,
		Month:           req.Month,
		ServiceCategory: req.ServiceCategory,
		TimeBlock:       req.TimeBlock,
		UnitPrice:       req.UnitPrice,
	}
	if err := h.svc.UpsertPlannedTariff(c.Request.Context(), t); err != nil {
		planningError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanningHandler) ListPlannedTariffs(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	tariffs, err := h.svc.ListPlannedTariffs(c.Request.Context(), contractID, c.Query("month"), c.Query("service_category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list planned tariffs"))
		return
	}
	out := make([]dto.PlannedTariffResponse, 0, len(tariffs))
	for _, t := range tariffs {
		out = append(out, dto.PlannedTariffResponse{
			ID:              t.ID.String(),
			RouteID:         t.RouteID.String(),
			Month:           t.Month,
			ServiceCategory: t.ServiceCategory,
			TimeBlock:       t.TimeBlock,
			UnitPrice:       t.UnitPrice,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlanningHandler) UpsertCustomBlock(c *gin.Context) {
	var req dto.UpsertCustomBlockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)

	b := &model.CustomTimeBlock{
		ContractID:      contractID,
		Month:           req.Month,
		ServiceCategory: req.ServiceCategory,
		Code:            req.Code,
		TimeText:        req.TimeText,
	}
	if err := h.svc.UpsertCustomBlock(c.Request.Context(), b); err != nil {
		planningError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanningHandler) ListCustomBlocks(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	blocks, err := h.svc.ListCustomBlocks(c.Request.Context(), contractID, c.Query("month"), c.Query("service_category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list custom blocks"))
		return
	}
	out := make([]dto.CustomBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, dto.CustomBlockResponse{
			ID:              b.ID.String(),
			Month:           b.Month,
			ServiceCategory: b.ServiceCategory,
			Code:            b.Code,
			TimeText:        b.TimeText,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlanningHandler) CopyMonth(c *gin.Context) {
	var req dto.CopyMonthRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)

	if err := h.template.CopyMonth(c.Request.Context(), contractID, req.FromMonth, req.ToMonth); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanningHandler) SyncRange(c *gin.Context) {
	var req dto.SyncRangeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	if err := h.template.SyncAcrossDateRange(c.Request.Context(), contractID, start, end); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrNoSeedMonth) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
