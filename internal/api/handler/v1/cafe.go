package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafeandwifi/cafe-directory/internal/api/handler/v1/response"
	"github.com/cafeandwifi/cafe-directory/internal/domain"
	"github.com/cafeandwifi/cafe-directory/internal/service"
)

type CafeService interface {
	RandomCafe(ctx context.Context) (domain.Cafe, error)
	SearchByLocation(ctx context.Context, location string) (domain.Cafe, error)
}

type CafeHandler struct {
	svc CafeService
}

func NewCafeHandler(svc CafeService) *CafeHandler {
	return &CafeHandler{
		svc: svc,
	}
}

// HandleGetRandomCafe godoc
// @Summary      Get one cafe picked uniformly at random
// @Tags         cafes
// @Produce      json
// @Success      200      {object}   response.CafeEnvelope
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /random [get]
func (h *CafeHandler) HandleGetRandomCafe(ctx *gin.Context) {
	cafe, err := h.svc.RandomCafe(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCafes) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrNoCafes))

			return
		}

		err = fmt.Errorf("v1.HandleGetRandomCafe -> h.svc.RandomCafe -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewCafeEnvelope(cafe))
}

// HandleSearchCafes godoc
// @Summary      Find the first cafe at an exact location
// @Tags         cafes
// @Produce      json
// @Param        loc      query      string true "location to match exactly"
// @Success      200      {object}   response.CafeEnvelope
// @Failure      500      {object}   response.Err
// @Router       /search [get]
func (h *CafeHandler) HandleSearchCafes(ctx *gin.Context) {
	location := ctx.Query("loc")

	cafe, err := h.svc.SearchByLocation(ctx.Request.Context(), location)
	if err != nil {
		// A miss is part of the contract, rendered as a structured
		// payload with HTTP 200 rather than an error status.
		if errors.Is(err, service.ErrCafeNotFound) {
			ctx.JSON(http.StatusOK, response.NewSearchNotFound())

			return
		}

		err = fmt.Errorf("v1.HandleSearchCafes -> h.svc.SearchByLocation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewCafeEnvelope(cafe))
}
