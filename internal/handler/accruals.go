package handler

import (
	"net/http"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/dto"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccrualHandler struct {
	svc service.AccrualService
}

func NewAccrualHandler(svc service.AccrualService) *AccrualHandler {
	return &AccrualHandler{svc: svc}
}

func (h *AccrualHandler) Calculate(c *gin.Context) {
	var req dto.CalculateAccrualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)

	var routeFilter *uuid.UUID
	if req.RouteID != nil {
		id, err := uuid.Parse(*req.RouteID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("route_id is invalid"))
			return
		}
		routeFilter = &id
	}

	accrualID, err := h.svc.Calculate(c.Request.Context(), contractID, req.Period, req.ServiceCategory, routeFilter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	accrual, err := h.svc.Get(c.Request.Context(), accrualID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("accrual calculated but could not be loaded"))
		return
	}
	c.JSON(http.StatusOK, accrualToResponse(accrual, true))
}

func (h *AccrualHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	accrual, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("accrual not found"))
		return
	}
	c.JSON(http.StatusOK, accrualToResponse(accrual, true))
}

func (h *AccrualHandler) List(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	accruals, err := h.svc.List(c.Request.Context(), contractID, c.Query("period"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list accruals"))
		return
	}
	out := make([]dto.AccrualResponse, 0, len(accruals))
	for i := range accruals {
		out = append(out, accrualToResponse(&accruals[i], false))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AccrualHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	var req dto.SetStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccrualHandler) Recalculate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	if err := h.svc.RecomputeTotals(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccrualHandler) AddDeduction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	var req dto.AddDeductionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddDeduction(c.Request.Context(), id, req.Type, req.Amount, req.Description); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccrualHandler) RemoveDeduction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	deductionID, err := uuid.Parse(c.Param("deduction_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("deduction id is invalid"))
		return
	}
	if err := h.svc.RemoveDeduction(c.Request.Context(), id, deductionID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccrualHandler) AddDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	var req dto.AddDocumentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddDocument(c.Request.Context(), id, req.Type, req.FilePath, req.Description); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccrualHandler) RemoveDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("accrual id is invalid"))
		return
	}
	documentID, err := uuid.Parse(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("document id is invalid"))
		return
	}
	if err := h.svc.RemoveDocument(c.Request.Context(), id, documentID); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func accrualToResponse(a *model.Accrual, withChildren bool) dto.AccrualResponse {
	resp := dto.AccrualResponse{
		ID:              a.ID.String(),
		ContractID:      a.ContractID.String(),
		Period:          a.Period,
		ServiceCategory: a.ServiceCategory,
		Status:          a.Status,
		TotalAmount:     a.TotalAmount,
		DeductionAmount: a.DeductionAmount,
		NetAmount:       a.NetAmount,
		ApprovedAt:      a.ApprovedAt,
		InvoicedAt:      a.InvoicedAt,
	}
	if a.RouteFilterID != uuid.Nil {
		s := a.RouteFilterID.String()
		resp.RouteFilterID = &s
	}
	if !withChildren {
		return resp
	}
	for _, li := range a.LineItems {
		item := dto.LineItemResponse{
			ID:                 li.ID.String(),
			TripDate:           li.TripDate,
			RouteID:            li.RouteID.String(),
			WorkType:           li.WorkType,
			Quantity:           li.Quantity,
			UnitPrice:          li.UnitPrice,
			Amount:             li.Amount,
			Description:        li.Description,
			SourceAllocationID: li.SourceAllocationID.String(),
		}
		if li.VehicleID != nil {
			s := li.VehicleID.String()
			item.VehicleID = &s
		}
		if li.DriverID != nil {
			s := li.DriverID.String()
			item.DriverID = &s
		}
		resp.LineItems = append(resp.LineItems, item)
	}
	for _, d := range a.Deductions {
		resp.Deductions = append(resp.Deductions, dto.DeductionResponse{
			ID:          d.ID.String(),
			Type:        d.Type,
			Amount:      d.Amount,
			Description: d.Description,
		})
	}
	for _, doc := range a.Documents {
		resp.Documents = append(resp.Documents, dto.DocumentResponse{
			ID:          doc.ID.String(),
			Type:        doc.Type,
			FilePath:    doc.FilePath,
			Description: doc.Description,
			UploadedAt:  doc.UploadedAt,
		})
	}
	return resp
}
