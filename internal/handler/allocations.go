package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/AyhanErcan70/SATTUP-sub000/internal/apierror"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/dto"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/model"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/repository"
	"github.com/AyhanErcan70/SATTUP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AllocationsHandler struct {
	svc       service.AllocationService
	conflicts service.ConflictService
}

func NewAllocationsHandler(svc service.AllocationService, conflicts service.ConflictService) *AllocationsHandler {
	return &AllocationsHandler{svc: svc, conflicts: conflicts}
}

// Upsert writes one daily-entry row. 409 with the conflicting
// allocation when the vehicle/driver is double-booked, 423 when the
// period is locked.
func (h *AllocationsHandler) Upsert(c *gin.Context) {
	var req dto.UpsertAllocationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	a, err := allocationFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	conflict, err := h.svc.Upsert(c.Request.Context(), a)
	if err != nil {
		var locked service.ErrPeriodLocked
		if errors.As(err, &locked) {
			c.JSON(http.StatusLocked, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if conflict != nil {
		c.JSON(http.StatusConflict, conflictToResponse(conflict))
		return
	}
	c.JSON(http.StatusOK, allocationToResponse(*a))
}

func (h *AllocationsHandler) Delete(c *gin.Context) {
	var req dto.DeleteAllocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	contractID, _ := uuid.Parse(req.ContractID)
	routeID, _ := uuid.Parse(req.RouteID)
	tripDate, _ := time.Parse("2006-01-02", req.TripDate)

	err := h.svc.Delete(c.Request.Context(), contractID, routeID, tripDate,
		req.ServiceCategory, req.TimeBlock, req.LineNumber)
	if err != nil {
		var locked service.ErrPeriodLocked
		if errors.As(err, &locked) {
			c.JSON(http.StatusLocked, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AllocationsHandler) List(c *gin.Context) {
	contractID, err := uuid.Parse(c.Query("contract_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("contract_id is required"))
		return
	}
	serviceCategory := c.Query("service_category")
	if serviceCategory == "" {
		c.JSON(http.StatusBadRequest, apierror.New("service_category is required"))
		return
	}

	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	filter := repository.AllocationFilter{RealizedOnly: c.Query("realized") == "true"}
	if routeStr := c.Query("route_id"); routeStr != "" {
		routeID, err := uuid.Parse(routeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("route_id is invalid"))
			return
		}
		filter.RouteID = routeID
	}

	rows, err := h.svc.ListInRange(c.Request.Context(), contractID, serviceCategory, from, to, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list allocations"))
		return
	}

	out := make([]dto.AllocationResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, allocationToResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

// CheckConflict is the advisory variant of the upsert guard: same
// inputs via query string, no write. An empty 200 body means no
// conflict (or an unparseable window, which is exempt).
func (h *AllocationsHandler) CheckConflict(c *gin.Context) {
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

	q := service.ConflictQuery{
		ContractID:      contractID,
		TripDate:        tripDate,
		ServiceCategory: c.Query("service_category"),
		TimeBlock:       c.Query("time_block"),
		TimeText:        c.Query("time_text"),
	}
	if v := c.Query("vehicle_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("vehicle_id is invalid"))
			return
		}
		q.VehicleID = &id
	}
	if d := c.Query("driver_id"); d != "" {
		id, err := uuid.Parse(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("driver_id is invalid"))
			return
		}
		q.DriverID = &id
	}

	conflict, err := h.conflicts.FindConflict(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("conflict check failed"))
		return
	}
	if conflict == nil {
		c.JSON(http.StatusOK, gin.H{"conflict": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflict": conflictToResponse(conflict)})
}

// ── mapping helpers ──────────────────────────────────────────────────────────

func allocationFromRequest(req dto.UpsertAllocationRequest) (*model.Allocation, error) {
	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		return nil, errors.New("contract_id is invalid")
	}
	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		return nil, errors.New("route_id is invalid")
	}
	tripDate, err := time.Parse("2006-01-02", req.TripDate)
	if err != nil {
		return nil, errors.New("trip_date must be YYYY-MM-DD")
	}

	a := &model.Allocation{
		ContractID:      contractID,
		RouteID:         routeID,
		TripDate:        tripDate,
		ServiceCategory: req.ServiceCategory,
		TimeBlock:       req.TimeBlock,
		LineNumber:      req.LineNumber,
		Quantity:        req.Quantity,
		TimeText:        req.TimeText,
		Note:            req.Note,
	}
	if req.VehicleID != nil {
		id, err := uuid.Parse(*req.VehicleID)
		if err != nil {
			return nil, errors.New("vehicle_id is invalid")
		}
		a.VehicleID = &id
	}
	if req.DriverID != nil {
		id, err := uuid.Parse(*req.DriverID)
		if err != nil {
			return nil, errors.New("driver_id is invalid")
		}
		a.DriverID = &id
	}
	return a, nil
}

func allocationToResponse(a model.Allocation) dto.AllocationResponse {
	resp := dto.AllocationResponse{
		ID:              a.ID.String(),
		ContractID:      a.ContractID.String(),
		RouteID:         a.RouteID.String(),
		RouteName:       a.Route.Name,
		TripDate:        a.TripDate,
		ServiceCategory: a.ServiceCategory,
		TimeBlock:       a.TimeBlock,
		LineNumber:      a.LineNumber,
		Quantity:        a.Quantity,
		TimeText:        a.TimeText,
		Note:            a.Note,
	}
	if a.VehicleID != nil {
		s := a.VehicleID.String()
		resp.VehicleID = &s
	}
	if a.DriverID != nil {
		s := a.DriverID.String()
		resp.DriverID = &s
	}
	return resp
}

func conflictToResponse(c *service.ConflictInfo) dto.ConflictResponse {
	return dto.ConflictResponse{
		Resource:   c.Resource,
		Window:     c.Window.String(),
		Allocation: allocationToResponse(c.Allocation),
	}
}

func dateRangeFromQuery(c *gin.Context) (time.Time, time.Time, error) {
	// Either an explicit from/to pair or a whole month.
	if month := c.Query("month"); month != "" {
		return monthRangeOrError(month)
	}
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be YYYY-MM-DD (or pass month=YYYY-MM)")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be YYYY-MM-DD")
	}
	return from, to, nil
}

func monthRangeOrError(month string) (time.Time, time.Time, error) {
	first, last, err := model.MonthRange(month)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("month must be YYYY-MM")
	}
	return first, last, nil
}
