package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/smartinvest/internal/domain/dto"
	"github.com/guttosm/smartinvest/internal/service"
	"github.com/guttosm/smartinvest/internal/upstream"
)

// statusFor maps a service error to the HTTP status of the response.
//
// Mapping:
//   - malformed symbol: 400
//   - storage disabled or provider not configured: 503
//   - every analysis section unavailable: 502
//   - unknown symbol: 404
//   - upstream rate limited: 429
//   - deadline exceeded: 504
//   - any other upstream failure: 502
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMalformedSymbol):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrAllSectionsUnavailable):
		return http.StatusBadGateway
	}

	switch upstream.KindOf(err) {
	case upstream.ErrInvalidSymbol:
		return http.StatusNotFound
	case upstream.ErrRateLimited:
		return http.StatusTooManyRequests
	case upstream.ErrNotConfigured:
		return http.StatusServiceUnavailable
	}
	if upstream.IsTimeout(err) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// respondError writes an ErrorResponse with the mapped status and attaches
// err to the context for the request log.
func respondError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), dto.NewErrorResponse(message, err))
}
