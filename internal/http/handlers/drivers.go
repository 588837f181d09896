package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /drivers?offset=&limit=
func (h API) ListDrivers(c *gin.Context) {
	p, err := h.parsePage(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := h.Engine.Drivers(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   res.Total,
		"offset":  p.Offset,
		"limit":   p.Limit,
		"count":   len(res.Drivers),
		"drivers": res.Drivers,
	})
}
