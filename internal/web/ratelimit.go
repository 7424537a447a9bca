package web

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimit throttles all requests through a single token bucket.
func rateLimit(perSecond float64, burst int, next http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", "1")
		apiError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, retry later")
	})
}
