package flight

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/apperr"
)

type FlightHandler struct {
	service *Service
}

func NewFlightHandler(s *Service) *FlightHandler {
	return &FlightHandler{
		service: s,
	}
}

func (h *FlightHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/flights/search", h.SearchFlightsHandler)
}

// SearchFlightsHandler godoc
// @Summary      Search flights between two locations
// @Description  Flight-offer search filtered to the destination city's airports, with display names attached
// @Tags         flights
// @Produce      json
// @Param        origin query string true "Origin airport IATA code"
// @Param        destination query string true "Destination airport or city IATA code"
// @Param        date query string true "Departure date (YYYY-MM-DD)"
// @Success      200 {object} SearchResponse
// @Failure      400 {object} map[string]string
// @Router       /v1/flights/search [get]
func (h *FlightHandler) SearchFlightsHandler(c *gin.Context) {
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
