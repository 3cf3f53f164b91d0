package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/bookings", h.CreateBookingHandler)
	router.GET("/v1/bookings/:id", h.GetBookingHandler)
}

// CreateBookingHandler godoc
// @Summary      Book a flight offer
// @Description  Re-resolves the offer, confirms the price and creates the booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Booking request"
// @Success      201 {object} Confirmation
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /v1/bookings [post]
func (h *Handler) CreateBookingHandler(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Send(c, apperr.Validation("invalid JSON body"))
		return
	}

	confirmation, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

func (h *Handler) GetBookingHandler(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
