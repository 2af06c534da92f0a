package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/SkhumbuzoT/prime-tools/internal/export"
	"github.com/SkhumbuzoT/prime-tools/internal/middleware"
	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/service"
	"github.com/SkhumbuzoT/prime-tools/pkg/pagination"
	"github.com/SkhumbuzoT/prime-tools/pkg/response"

	"github.com/gin-gonic/gin"
)

type EstimateHandler struct {
	estimateService service.EstimateService
	pdfExporter     *export.PDFExporter
}

// NewEstimateHandler sets up the routing dependencies for estimate endpoints.
// pdfExporter may be nil when no Gotenberg endpoint is configured; PDF export
// then returns 503.
func NewEstimateHandler(estimateService service.EstimateService, pdfExporter *export.PDFExporter) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService, pdfExporter: pdfExporter}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *EstimateHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RolePlanner, model.RoleDriver)
	planRole := middleware.RequireRole(model.RoleAdmin, model.RolePlanner)

	router.POST("/loi", anyRole, h.ComputeLOI)

	estimates := router.Group("/estimates")
	{
		estimates.POST("", planRole, h.CreateEstimate)
		estimates.GET("", anyRole, h.ListEstimates)
		estimates.GET("/:id", anyRole, h.GetEstimate)
		estimates.POST("/:id/what-if", planRole, h.WhatIf)
		estimates.GET("/:id/export", anyRole, h.ExportEstimate)
	}
}

// CreateEstimate handles POST /estimates to run the full cost, profitability
// and cashflow-risk calculation and persist the snapshot
// @Summary      Create trip estimate
// @Description  Runs the route economics calculation and stores the result
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateEstimateRequest  true  "Trip Inputs"
// @Success      201      {object}  response.Response{data=model.TripEstimate}
// @Failure      400      {object}  response.Response
// @Router       /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var req service.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, estimate))
}

// ListEstimates handles GET /estimates with pagination
// @Summary      List trip estimates
// @Description  Retrieves a paginated list of stored estimates, newest first
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	params := pagination.Parse(c)

	estimates, total, err := h.estimateService.ListEstimates(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch estimates"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, "estimates", estimates, total, params.Page, params.Limit))
}

// GetEstimate handles GET /estimates/:id
// @Summary      Get trip estimate
// @Description  Fetch one stored estimate snapshot by ID
// @Tags         estimates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Estimate ID"
// @Success      200  {object}  response.Response{data=model.TripEstimate}
// @Failure      404  {object}  response.Response
// @Router       /estimates/{id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, estimate))
}

// WhatIf handles POST /estimates/:id/what-if to recompute a stored estimate
// with partial input overrides, without persisting anything
// @Summary      What-if scenario
// @Description  Recomputes a stored estimate with overridden inputs and returns baseline plus scenario
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Estimate ID"
// @Param        payload  body      service.WhatIfRequest  true  "Input Overrides"
// @Success      200      {object}  response.Response{data=service.WhatIfResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /estimates/{id}/what-if [post]
func (h *EstimateHandler) WhatIf(c *gin.Context) {
	var req service.WhatIfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.estimateService.WhatIf(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ComputeLOI handles POST /loi for the quick diesel-only profitability check
// @Summary      Load-over-income calculator
// @Description  Quick trip profitability estimate against diesel cost alone
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.LOIRequest  true  "LOI Inputs"
// @Success      200      {object}  response.Response{data=engine.LOIResult}
// @Failure      400      {object}  response.Response
// @Router       /loi [post]
func (h *EstimateHandler) ComputeLOI(c *gin.Context) {
	var req service.LOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.estimateService.ComputeLOI(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ExportEstimate handles GET /estimates/:id/export?format=csv|xlsx|pdf
// @Summary      Export trip estimate
// @Description  Downloads a stored estimate as CSV, XLSX or PDF
// @Tags         estimates
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id      path      string  true   "Estimate ID"
// @Param        format  query     string  false  "Export format: csv (default), xlsx or pdf"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /estimates/{id}/export [get]
func (h *EstimateHandler) ExportEstimate(c *gin.Context) {
	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	filename := "estimate-" + estimate.ID.String()

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		var buf bytes.Buffer
		if err := export.WriteEstimateCSV(&buf, estimate); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render CSV"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())

	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteEstimateXLSX(&buf, estimate); err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render XLSX"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	case "pdf":
		if h.pdfExporter == nil {
			c.JSON(http.StatusServiceUnavailable, response.Error(http.StatusServiceUnavailable, "PDF export not configured"))
			return
		}
		pdf, err := h.pdfExporter.RenderEstimate(c.Request.Context(), estimate)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render PDF: "+err.Error()))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".pdf"))
		c.Data(http.StatusOK, "application/pdf", pdf)

	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unsupported format: use csv, xlsx or pdf"))
	}
}
