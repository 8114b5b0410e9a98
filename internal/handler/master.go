package handler

import (
	"net/http"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/dto"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MasterDataHandler serves the read-only lookups the entry screens
// need: contracts, routes, vehicle and driver pickers.
type MasterDataHandler struct {
	contracts repository.ContractRepository
	master    repository.MasterDataRepository
}

func NewMasterDataHandler(contracts repository.ContractRepository, master repository.MasterDataRepository) *MasterDataHandler {
	return &MasterDataHandler{contracts: contracts, master: master}
}

func (h *MasterDataHandler) ListContracts(c *gin.Context) {
	contracts, err := h.contracts.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list contracts"))
		return
	}
	out := make([]dto.ContractResponse, 0, len(contracts))
	for _, ct := range contracts {
		out = append(out, dto.ContractResponse{
			ID:                ct.ID.String(),
			CustomerID:        ct.CustomerID.String(),
			CustomerName:      ct.Customer.Name,
			Number:            ct.Number,
			StartDate:         ct.StartDate.Format("2006-01-02"),
			EndDate:           ct.EndDate.Format("2006-01-02"),
			ServiceCategories: ct.ServiceCategories,
			Active:            ct.Active,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *MasterDataHandler) GetContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract id is invalid"))
		return
	}
	ct, err := h.contracts.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("contract not found"))
		return
	}
	c.JSON(http.StatusOK, dto.ContractResponse{
		ID:                ct.ID.String(),
		CustomerID:        ct.CustomerID.String(),
		CustomerName:      ct.Customer.Name,
		Number:            ct.Number,
		StartDate:         ct.StartDate.Format("2006-01-02"),
		EndDate:           ct.EndDate.Format("2006-01-02"),
		ServiceCategories: ct.ServiceCategories,
		Active:            ct.Active,
	})
}

func (h *MasterDataHandler) ListRoutes(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	routes, err := h.contracts.ListRoutes(c.Request.Context(), contractID, c.Query("service_category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list routes"))
		return
	}
	out := make([]dto.RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, dto.RouteResponse{
			ID:              r.ID.String(),
			ContractID:      r.ContractID.String(),
			ServiceCategory: r.ServiceCategory,
			Name:            r.Name,
			MovementType:    string(r.MovementType),
			DistanceKM:      r.DistanceKM,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *MasterDataHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.master.ListActiveVehicles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list vehicles"))
		return
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, dto.VehicleResponse{
			ID:        v.ID.String(),
			Plate:     v.Plate,
			Capacity:  v.Capacity,
			OwnerType: v.OwnerType,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *MasterDataHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.master.ListActiveDrivers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list drivers"))
		return
	}
	out := make([]dto.DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, dto.DriverResponse{
			ID:            d.ID.String(),
			FullName:      d.FullName,
			LicenseNumber: d.LicenseNumber,
			Phone:         d.Phone,
		})
	}
	c.JSON(http.StatusOK, out)
}
