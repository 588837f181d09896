package handlers

import (
	"net/http"

	"taxiapi/internal/domain"

	"github.com/gin-gonic/gin"
)

// GET /trips?driver_id=&date=&offset=&limit=
func (h API) ListTrips(c *gin.Context) {
	p, err := h.parsePage(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var f domain.TripFilter
	if f.DriverID, err = queryInt64(c, "driver_id"); err != nil {
		RespondDomainError(c, err)
		return
	}
	if f.Date, err = queryInt64(c, "date"); err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := h.Engine.Trips(f, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  res.Total,
		"offset": p.Offset,
		"limit":  p.Limit,
		"count":  len(res.Trips),
		"filters": gin.H{
			"driver_id": f.DriverID,
			"date":      f.Date,
		},
		"trips": res.Trips,
	})
}
