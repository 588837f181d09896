package middleware

import (
	"errors"
	"net/http"

	"taxiapi/internal/auth"
	"taxiapi/internal/domain"

	"github.com/gin-gonic/gin"
)

// Header names for the credential pair. Required on every endpoint except
// /health and /metrics.
const (
	HeaderAPIKey    = "x-api-key"
	HeaderGroupName = "x-group-name"
)

// Auth rejects the request before the handler runs unless the credential
// headers validate. Missing credentials and a wrong key are 401; a known key
// with an unknown group is 403.
func Auth(a *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := a.Verify(GetRequestID(c), c.GetHeader(HeaderAPIKey), c.GetHeader(HeaderGroupName))
		if err == nil {
			c.Next()
			return
		}

		status := http.StatusUnauthorized
		code := "unauthorized"
		var authErr domain.AuthError
		if errors.As(err, &authErr) {
			code = string(authErr.Reason)
			if authErr.Reason == domain.AuthInvalidGroup {
				status = http.StatusForbidden
			}
		}

		c.AbortWithStatusJSON(status, gin.H{
			"error":      err.Error(),
			"code":       code,
			"request_id": GetRequestID(c),
		})
	}
}
