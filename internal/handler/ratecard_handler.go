package handler

import (
	"net/http"
	"time"

	"github.com/SkhumbuzoT/prime-tools/internal/middleware"
	"github.com/SkhumbuzoT/prime-tools/internal/model"
	"github.com/SkhumbuzoT/prime-tools/internal/service"
	"github.com/SkhumbuzoT/prime-tools/pkg/pagination"
	"github.com/SkhumbuzoT/prime-tools/pkg/response"

	"github.com/gin-gonic/gin"
)

type RateCardHandler struct {
	rateCardService service.RateCardService
}

// NewRateCardHandler sets up the routing dependencies for rate card endpoints
func NewRateCardHandler(rateCardService service.RateCardService) *RateCardHandler {
	return &RateCardHandler{rateCardService: rateCardService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *RateCardHandler) RegisterRoutes(router *gin.RouterGroup) {
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RolePlanner, model.RoleDriver)
	adminRole := middleware.RequireRole(model.RoleAdmin)

	cards := router.Group("/rate-cards")
	{
		cards.GET("", anyRole, h.ListRateCards)
		cards.GET("/active", anyRole, h.GetActiveRateCard)
		cards.GET("/:id", anyRole, h.GetRateCard)
		cards.POST("", adminRole, h.CreateRateCard)
		cards.PUT("/:id", adminRole, h.UpdateRateCard)
		cards.DELETE("/:id", adminRole, h.DeleteRateCard)
	}
}

// CreateRateCard handles POST /rate-cards
// @Summary      Create rate card
// @Description  Creates a named set of cost assumptions with temporal validity; overlapping date ranges are rejected
// @Tags         rate-cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateRateCardRequest  true  "Rate Card"
// @Success      201      {object}  response.Response{data=service.RateCardResponse}
// @Failure      400      {object}  response.Response
// @Router       /rate-cards [post]
func (h *RateCardHandler) CreateRateCard(c *gin.Context) {
	var req service.CreateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	card, err := h.rateCardService.CreateRateCard(c.Request.Context(), req, actorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, card))
}

// UpdateRateCard handles PUT /rate-cards/:id
// @Summary      Update rate card
// @Description  Replaces a rate card's assumptions and validity window
// @Tags         rate-cards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Rate Card ID"
// @Param        payload  body      service.UpdateRateCardRequest  true  "Rate Card"
// @Success      200      {object}  response.Response{data=service.RateCardResponse}
// @Failure      400      {object}  response.Response
// @Router       /rate-cards/{id} [put]
func (h *RateCardHandler) UpdateRateCard(c *gin.Context) {
	var req service.UpdateRateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	card, err := h.rateCardService.UpdateRateCard(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, card))
}

// DeleteRateCard handles DELETE /rate-cards/:id
// @Summary      Delete rate card
// @Description  Deletes a rate card; stored estimates keep their snapshot values
// @Tags         rate-cards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rate Card ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /rate-cards/{id} [delete]
func (h *RateCardHandler) DeleteRateCard(c *gin.Context) {
	if err := h.rateCardService.DeleteRateCard(c.Request.Context(), c.Param("id"), actorID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Rate card deleted successfully"))
}

// GetRateCard handles GET /rate-cards/:id
// @Summary      Get rate card
// @Tags         rate-cards
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rate Card ID"
// @Success      200  {object}  response.Response{data=service.RateCardResponse}
// @Failure      404  {object}  response.Response
// @Router       /rate-cards/{id} [get]
func (h *RateCardHandler) GetRateCard(c *gin.Context) {
	card, err := h.rateCardService.GetRateCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, card))
}

// ListRateCards handles GET /rate-cards with pagination
// @Summary      List rate cards
// @Tags         rate-cards
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /rate-cards [get]
func (h *RateCardHandler) ListRateCards(c *gin.Context) {
	params := pagination.Parse(c)

	cards, total, err := h.rateCardService.ListRateCards(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch rate cards"))
		return
	}

	c.JSON(http.StatusOK, response.Paginated(http.StatusOK, "rate_cards", cards, total, params.Page, params.Limit))
}

// GetActiveRateCard handles GET /rate-cards/active?date=YYYY-MM-DD
// @Summary      Get active rate card
// @Description  Returns the rate card in effect on a date (default today), or null when none is configured
// @Tags         rate-cards
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Target date YYYY-MM-DD (default today)"
// @Success      200   {object}  response.Response{data=service.RateCardResponse}
// @Failure      400   {object}  response.Response
// @Router       /rate-cards/active [get]
func (h *RateCardHandler) GetActiveRateCard(c *gin.Context) {
	targetDate := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)"))
			return
		}
		targetDate = parsed
	}

	card, err := h.rateCardService.GetActiveRateCard(c.Request.Context(), targetDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, card))
}
