package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/delivery"
)

// QuoteDelivery exposes the pricing engine to the checkout UI. An unresolved
// quote is a 200 with resolved=false — the client shows "fee to be
// determined", it is not an error.
func QuoteDelivery(cfg delivery.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /delivery/quote"

		req := delivery.Request{
			Type:     delivery.Type(strings.TrimSpace(c.Query("deliveryType"))),
			CityName: strings.TrimSpace(c.Query("city")),
		}

		latStr, lngStr := c.Query("lat"), c.Query("lng")
		if latStr != "" || lngStr != "" {
			lat, latErr := strconv.ParseFloat(latStr, 64)
			lng, lngErr := strconv.ParseFloat(lngStr, 64)
			if latErr != nil || lngErr != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid coordinates")
				return
			}
			req.Coords = &delivery.Point{Lat: lat, Lng: lng}
		}

		quote, err := cfg.Quote(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		c.JSON(http.StatusOK, quote)
	}
}
