package handler

import (
	"net/http"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/dto"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/middleware"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PeriodsHandler struct{ svc service.PeriodLockService }

func NewPeriodsHandler(svc service.PeriodLockService) *PeriodsHandler {
	return &PeriodsHandler{svc: svc}
}

func (h *PeriodsHandler) Status(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	scope := service.PeriodScope{
		ContractID:      contractID,
		Month:           c.Query("month"),
		ServiceCategory: c.Query("service_category"),
	}
	lock, err := h.svc.Status(c.Request.Context(), scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to read lock status"))
		return
	}
	c.JSON(http.StatusOK, dto.LockStatusResponse{
		ContractID:      lock.ContractID.String(),
		Month:           lock.Month,
		ServiceCategory: lock.ServiceCategory,
		Locked:          lock.Locked,
		LockedAt:        lock.LockedAt,
		LockedBy:        lock.LockedBy,
		UnlockedAt:      lock.UnlockedAt,
		UnlockedBy:      lock.UnlockedBy,
		UnlockReason:    lock.UnlockReason,
	})
}

// Lock runs the completeness check and freezes the scope. A declined
// attempt returns 409 with the missing slot-days (capped list).
func (h *PeriodsHandler) Lock(c *gin.Context) {
	var req dto.LockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	claims := middleware.GetClaims(c)

	result, err := h.svc.Lock(c.Request.Context(), service.PeriodScope{
		ContractID:      contractID,
		Month:           req.Month,
		ServiceCategory: req.ServiceCategory,
	}, claims.Username)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	resp := dto.LockAttemptResponse{Locked: result.Locked}
	for _, m := range result.Missing {
		resp.Missing = append(resp.Missing, dto.MissingSlotResponse{
			RouteID:   m.RouteID.String(),
			RouteName: m.RouteName,
			TimeBlock: m.TimeBlock,
			Date:      m.Date,
		})
	}
	if !result.Locked {
		c.JSON(http.StatusConflict, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PeriodsHandler) Unlock(c *gin.Context) {
	var req dto.UnlockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	claims := middleware.GetClaims(c)

	err := h.svc.Unlock(c.Request.Context(), service.PeriodScope{
		ContractID:      contractID,
		Month:           req.Month,
		ServiceCategory: req.ServiceCategory,
	}, claims.Username, req.Reason)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
