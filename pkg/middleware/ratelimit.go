package middleware

import (
	"net/http"

	"crime-report/pkg/metrics"
	"crime-report/pkg/ratelimit"
	"crime-report/pkg/utils"

	"go.uber.org/zap"
)

// RateLimit rejects callers that exceed the limiter budget with 429. The
// bucket key is the route pattern plus the client IP resolved by RealIP. A
// limiter backend error lets the request through.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routePattern(r)
			if route == "unmatched" {
				route = r.URL.Path
			}
			key := route + "|" + ClientIP(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				logger.Info("rate limited", zap.String("route", route), zap.String("ip", ClientIP(r)))
				utils.ResponseTooManyRequests(w, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
