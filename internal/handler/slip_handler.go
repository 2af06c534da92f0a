package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/export"
	"github.com/SkhumbuzoT/prime-tools/internal/middleware"
	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/service"
	"github.com/SkhumbuzoT/prime-tools/pkg/pagination"
	"github.com/SkhumbuzoT/prime-tools/pkg/response"

	"github.com/gin-gonic/gin"
)

type FuelSlipHandler struct {
	slipService service.FuelSlipService
}

// NewFuelSlipHandler sets up the routing dependencies for fuel slip endpoints
func NewFuelSlipHandler(slipService service.FuelSlipService) *FuelSlipHandler {
	return &FuelSlipHandler{slipService: slipService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *FuelSlipHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RolePlanner, model.RoleDriver)

	slips := router.Group("/slips")
	{
		slips.POST("", anyRole, h.CreateSlip)
		slips.GET("", anyRole, h.ListSlips)
		slips.GET("/report", anyRole, h.Report)
		slips.GET("/:id", anyRole, h.GetSlip)
		slips.POST("/extract", anyRole, h.ExtractSlip)
	}
}

// CreateSlip handles POST /slips to record a fuel purchase
// @Summary      Create fuel slip
// @Description  Records a fuel purchase; the total is always recomputed as litres x price
// @Tags         slips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateFuelSlipRequest  true  "Fuel Slip"
// @Success      201      {object}  response.Response{data=model.FuelSlip}
// @Failure      400      {object}  response.Response
// @Router       /slips [post]
func (h *FuelSlipHandler) CreateSlip(c *gin.Context) {
	var req service.CreateFuelSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	slip, err := h.slipService.CreateSlip(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, slip))
}

// ListSlips handles GET /slips with pagination
// @Summary      List fuel slips
// @Description  Retrieves a paginated fuel slip ledger, newest first
// @Tags         slips
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /slips [get]
func (h *FuelSlipHandler) ListSlips(c *gin.Context) {
	params := pagination.Parse(c)

	slips, total, err := h.slipService.ListSlips(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch fuel slips"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, "slips", slips, total, params.Page, params.Limit))
}

// GetSlip handles GET /slips/:id
// @Summary      Get fuel slip
// @Description  Fetch one fuel slip by ID
// @Tags         slips
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Fuel Slip ID"
// @Success      200  {object}  response.Response{data=model.FuelSlip}
// @Failure      404  {object}  response.Response
// @Router       /slips/{id} [get]
func (h *FuelSlipHandler) GetSlip(c *gin.Context) {
	slip, err := h.slipService.GetSlip(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, slip))
}

// ExtractSlip handles POST /slips/extract to parse OCR text into slip fields
// @Summary      Extract slip fields from OCR text
// @Description  Parses free-form slip text into structured fields and a create prefill; nothing is persisted
// @Tags         slips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ExtractSlipRequest  true  "OCR Text"
// @Success      200      {object}  response.Response{data=service.ExtractSlipResponse}
// @Failure      400      {object}  response.Response
// @Router       /slips/extract [post]
func (h *FuelSlipHandler) ExtractSlip(c *gin.Context) {
	var req service.ExtractSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.slipService.ExtractSlip(req)))
}

// Report handles GET /slips/report?start_date=&end_date=&format=
// @Summary      Fuel slip report
// @Description  Totals and per-truck breakdown for a date range, as JSON, CSV or XLSX
// @Tags         slips
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  true   "Start date YYYY-MM-DD"
// @Param        end_date    query     string  true   "End date YYYY-MM-DD"
// @Param        format      query     string  false  "Report format: json (default), csv or xlsx"
// @Success      200         {object}  response.Response{data=service.FuelSlipReportResponse}
// @Failure      400         {object}  response.Response
// @Router       /slips/report [get]
func (h *FuelSlipHandler) Report(c *gin.Context) {
	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid start_date (expected YYYY-MM-DD)"))
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid end_date (expected YYYY-MM-DD)"))
		return
	}

	report, err := h.slipService.Report(c.Request.Context(), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	filename := fmt.Sprintf("fuel-slips-%s-%s", report.StartDate, report.EndDate)

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, response.Success(http.StatusOK, report))

	case "csv":
		var buf bytes.Buffer
		if err := export.WriteSlipReportCSV(&buf, report.Slips); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render CSV"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())

	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteSlipReportXLSX(&buf, report.Slips); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render XLSX"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unsupported format: use json, csv or xlsx"))
	}
}
