package location

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/apperr"
	"tripdesk/pkg/travelapi"
)

type Handler struct {
	resolver *Resolver
}

func NewHandler(r *Resolver) *Handler {
	return &Handler{resolver: r}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/v1/locations/suggest", h.SuggestHandler)
}

// SuggestHandler godoc
// @Summary      Autocomplete airports and cities
// @Description  Keyword lookup returning matching airports and cities
// @Tags         locations
// @Produce      json
// @Param        keyword query string true "Search keyword"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Router       /v1/locations/suggest [get]
func (h *Handler) SuggestHandler(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		apperr.Send(c, apperr.Validation("keyword is required"))
		return
	}

	suggestions, err := h.resolver.Suggest(c.Request.Context(), keyword)
	if err != nil {
		if errors.Is(err, travelapi.ErrAuthUnavailable) {
			apperr.Send(c, apperr.Unavailable("travel provider unavailable", err))
			return
		}
		apperr.Send(c, apperr.Upstream("location search failed", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
