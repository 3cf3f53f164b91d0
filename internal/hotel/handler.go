package hotel

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
	router.GET("/v1/hotels/search", h.SearchHotelsHandler)
}

// SearchHotelsHandler godoc
// @Summary      Search hotel offers in a city
// @Tags         hotels
// @Produce      json
// @Param        cityCode query string true "City IATA code"
// @Param        checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param        checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Param        adults query int false "Number of adults"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]string
// @Router       /v1/hotels/search [get]
func (h *Handler) SearchHotelsHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apperr.Send(c, apperr.Validation("invalid query parameters"))
		return
	}

	response, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
