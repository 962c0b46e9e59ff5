package restapi

import (
	"net/http"
	"time"

	"departures.lillekyla.ee/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with an initialized rate limiter.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, app.Config.TrustProxy),
	}
}

// Handler returns the fully wrapped HTTP handler: request logging outermost,
// then security headers, rate limiting and compression.
func (api *RestAPI) Handler() http.Handler {
	var handler http.Handler = api.Router()
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter.Handler(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	return handler
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	api.rateLimiter.Stop()
}
