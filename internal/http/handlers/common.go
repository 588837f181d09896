package handlers

import (
	"net/http"
	"strconv"

	"taxiapi/internal/config"
	"taxiapi/internal/domain"
	"taxiapi/internal/http/middleware"
	"taxiapi/internal/query"
	"taxiapi/internal/store"

	"github.com/gin-gonic/gin"
)

// API bundles the handler dependencies: configuration, the query engine,
// and the snapshot (for the health payload).
type API struct {
	Env    config.Env
	Engine *query.Engine
	Snap   *store.Snapshot
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, "not_found", err.Error())
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// parsePage reads offset/limit query params, applying the configured default
// limit when the param is absent. Bounds are enforced by the query engine.
func (h API) parsePage(c *gin.Context) (domain.Page, error) {
	p := domain.Page{Offset: 0, Limit: h.Env.DefaultLimit}

	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, domain.ValidationError{Field: "offset", Msg: "must be an integer", Err: err}
		}
		p.Offset = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, domain.ValidationError{Field: "limit", Msg: "must be an integer", Err: err}
		}
		p.Limit = v
	}
	return p, nil
}

func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.ValidationError{Field: name, Msg: "must be an integer", Err: err}
	}
	return &v, nil
}
