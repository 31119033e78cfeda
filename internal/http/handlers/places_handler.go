// README: Underrated places handler.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/modules/places"
)

type PlacesService interface {
	Random(ctx context.Context) ([]places.Place, error)
}

type PlacesHandler struct {
	places PlacesService
}

func NewPlacesHandler(svc PlacesService) *PlacesHandler {
	return &PlacesHandler{places: svc}
}

// Underrated handles GET /underrated_places.
func (h *PlacesHandler) Underrated(c *gin.Context) {
	picked, err := h.places.Random(c.Request.Context())
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, gin.H{"places": picked})
	case errors.Is(err, places.ErrNoPlaces):
		writeError(c, http.StatusNotFound, "No places found in the database")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "An error occurred while loading places")
	}
}
