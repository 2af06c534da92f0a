package handler

import (
	"net/http"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/middleware"
	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/service"
	"github.com/SkhumbuzoT/prime-tools/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

// NewStatisticsHandler sets up the routing dependencies for statistics endpoints
func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	planRole := middleware.RequireRole(model.RoleAdmin, model.RolePlanner)

	stats := router.Group("/statistics")
	{
		stats.GET("", planRole, h.GetFleetStatistics)
		stats.GET("/trend", planRole, h.GetFleetTrend)
	}
}

// GetFleetStatistics handles GET /statistics?start_date=&end_date=
// @Summary      Fleet statistics
// @Description  Aggregated estimate and fuel totals plus routes ranked by profit for a date range (default last 30 days)
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query     string  false  "Start date YYYY-MM-DD (default 30 days ago)"
// @Param        end_date    query     string  false  "End date YYYY-MM-DD (default today)"
// @Success      200         {object}  response.Response{data=model.FleetStatisticsResponse}
// @Failure      400         {object}  response.Response
// @Router       /statistics [get]
func (h *StatisticsHandler) GetFleetStatistics(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid start_date (expected YYYY-MM-DD)"))
			return
		}
		startDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid end_date (expected YYYY-MM-DD)"))
			return
		}
		// Include the whole end day
		endDate = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	stats, err := h.statisticsService.GetFleetStatistics(c.Request.Context(), startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetFleetTrend handles GET /statistics/trend?group_by=&start_date=&end_date=
// @Summary      Fleet trend
// @Description  Estimate totals and fuel spend bucketed by week, month, quarter or year
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        group_by    query     string  false  "Bucket: week, month (default), quarter or year"
// @Param        start_date  query     string  false  "Start date YYYY-MM-DD (default 1 year ago)"
// @Param        end_date    query     string  false  "End date YYYY-MM-DD (default today)"
// @Success      200         {object}  response.Response{data=[]service.FleetTrendPoint}
// @Failure      400         {object}  response.Response
// @Router       /statistics/trend [get]
func (h *StatisticsHandler) GetFleetTrend(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(-1, 0, 0)

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid start_date (expected YYYY-MM-DD)"))
			return
		}
		startDate = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid end_date (expected YYYY-MM-DD)"))
			return
		}
		endDate = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	trend, err := h.statisticsService.GetFleetTrend(c.Request.Context(), service.TrendFilter{
		GroupBy:   c.Query("group_by"),
		StartDate: startDate.Format(time.RFC3339),
		EndDate:   endDate.Format(time.RFC3339),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, trend))
}
